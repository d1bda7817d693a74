package entity

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/movement"
	"github.com/milk9111/tilepath/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Grid       movement.Snapper
	Logger     *slog.Logger
}

// BuildOption configures BuildEntity.
type BuildOption func(*buildContext)

// WithGrid sets the snapper chase sources use to centre their goals.
func WithGrid(g movement.Snapper) BuildOption {
	return func(ctx *buildContext) { ctx.Grid = g }
}

func WithLogger(logger *slog.Logger) BuildOption {
	return func(ctx *buildContext) { ctx.Logger = logger }
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"agent_tag":    addAgentTag,
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"movement":     addMovement,
	"click_source": addClickSource,
	"chase_source": addChaseSource,
	"debug_color":  addDebugColor,
}

var componentBuildOrder = []string{
	"agent_tag",
	"transform",
	"physics_body",
	"movement",
	"click_source",
	"chase_source",
	"debug_color",
}

func BuildEntity(w *ecs.World, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath, opts...)
}

// BuildEntityFromSpec builds an already loaded prefab. Unknown component
// names fail the build and leave no entity behind.
func BuildEntityFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	ctx := &buildContext{PrefabPath: prefabPath}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	var unknown []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	ctx.Logger.Debug("entity built", "prefab", prefabPath, "entity", e, "components", len(spec.Components))
	return e, nil
}

// SetEntityTransform places e and records the spot as its respawn point.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind()); ok {
		safe.X, safe.Y = x, y
		safe.Initialized = true
	}
	return nil
}

type agentTagSpec = prefabs.AgentTagComponentSpec

func addAgentTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[agentTagSpec](raw)
	if err != nil {
		return fmt.Errorf("decode agent_tag spec: %w", err)
	}
	if err := ecs.Add(w, e, component.AgentTagComponent.Kind(), &component.AgentTag{Kind: spec.Kind}); err != nil {
		return err
	}
	switch spec.Kind {
	case "player":
		return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	case "skeleton":
		return ecs.Add(w, e, component.SkeletonTagComponent.Kind(), &component.SkeletonTag{})
	}
	return nil
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

// addPhysicsBody also gives the entity a transform when it has none and an
// uninitialised respawn point.
func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			return err
		}
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{})
}

type movementSpec = prefabs.MovementComponentSpec

func addMovement(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[movementSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement spec: %w", err)
	}
	logger := ctx.Logger.With("prefab", ctx.PrefabPath)
	return ecs.Add(w, e, component.PathFollowerComponent.Kind(), &component.PathFollower{
		Executor: movement.NewExecutor(spec.Tuning(), logger),
	})
}

func follower(w *ecs.World, e ecs.Entity, name string) (*component.PathFollower, error) {
	pf, ok := ecs.Get(w, e, component.PathFollowerComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("%s requires movement on the same entity", name)
	}
	if pf.Source != nil {
		return nil, fmt.Errorf("%s: entity already has a waypoint source", name)
	}
	return pf, nil
}

func addClickSource(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if _, err := prefabs.DecodeComponentSpec[prefabs.ClickSourceComponentSpec](raw); err != nil {
		return fmt.Errorf("decode click_source spec: %w", err)
	}
	pf, err := follower(w, e, "click_source")
	if err != nil {
		return err
	}
	pf.Source = &movement.ClickSource{}
	return nil
}

type chaseSourceSpec = prefabs.ChaseSourceComponentSpec

func addChaseSource(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[chaseSourceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode chase_source spec: %w", err)
	}
	if ctx.Grid == nil {
		return fmt.Errorf("chase_source needs a grid")
	}
	pf, err := follower(w, e, "chase_source")
	if err != nil {
		return err
	}
	src := &movement.ChaseSource{
		RepathFrames: spec.RepathFrames,
		Quarry:       agentPosition(w, e, spec.Quarry),
		Grid:         ctx.Grid,
	}
	if spec.StartActive {
		src.Start()
	}
	pf.Source = src
	return nil
}

// agentPosition finds the first other agent of the given kind at call time,
// so the quarry may be spawned after the chaser.
func agentPosition(w *ecs.World, self ecs.Entity, kind string) func() (common.Vec, bool) {
	return func() (common.Vec, bool) {
		for _, e := range w.Query(component.AgentTagComponent.Kind(), component.TransformComponent.Kind()) {
			if e == self {
				continue
			}
			tag, _ := ecs.Get(w, e, component.AgentTagComponent.Kind())
			if tag.Kind != kind {
				continue
			}
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			return t.Vec(), true
		}
		return common.Vec{}, false
	}
}

type debugColorSpec = prefabs.DebugColorComponentSpec

func addDebugColor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[debugColorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode debug_color spec: %w", err)
	}
	if spec.Color == nil {
		return fmt.Errorf("debug_color needs a color")
	}
	return ecs.Add(w, e, component.DebugColorComponent.Kind(), &component.DebugColor{Color: spec.Color.Color})
}
