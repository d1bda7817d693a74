// Package sim runs a level as a fixed-step simulation: the navigation graph is
// built once per level, then every tick the path request, path follow,
// physics and respawn systems run in that order on a single goroutine.
package sim

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/ecs/entity"
	"github.com/milk9111/tilepath/ecs/system"
	"github.com/milk9111/tilepath/levels"
	"github.com/milk9111/tilepath/metrics"
	"github.com/milk9111/tilepath/movement"
	"github.com/milk9111/tilepath/navgraph"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/milk9111/tilepath/physics"
	"github.com/milk9111/tilepath/prefabs"
	"github.com/milk9111/tilepath/tilemap"
)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	config  *pathfind.Config
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records graph builds, queries, jumps and ticks in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithConfig overrides prefabs/navigation.yaml.
func WithConfig(cfg pathfind.Config) Option {
	return func(o *options) { o.config = &cfg }
}

// Sim is not safe for concurrent use.
type Sim struct {
	opts options

	level  *levels.Level
	grid   *tilemap.TileMap
	finder *pathfind.PathFinder
	stats  pathfind.Stats
	phys   *physics.World
	world  *ecs.World
	sched  *ecs.Scheduler

	ticks int
}

func New(lvl *levels.Level, opts ...Option) (*Sim, error) {
	s := &Sim{}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if s.opts.logger == nil {
		s.opts.logger = slog.Default()
	}
	if err := s.Reload(lvl); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards all agents and rebuilds everything from lvl and the
// current prefab files. On error the previous state is kept.
func (s *Sim) Reload(lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("sim: reload: level is nil")
	}
	cfg, err := s.navigationConfig()
	if err != nil {
		return err
	}

	grid := tilemap.FromLevel(lvl)
	finder := pathfind.New(grid, navgraph.New(), cfg, pathfind.WithLogger(s.opts.logger))
	began := time.Now()
	stats, err := finder.BuildGraph()
	if err != nil {
		return fmt.Errorf("sim: build graph: %w", err)
	}
	s.opts.metrics.ObserveBuild(stats, time.Since(began))

	world := ecs.NewWorld()
	if _, err := entity.LoadLevelToWorld(world, lvl, grid, entity.WithLogger(s.opts.logger)); err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	phys := physics.NewWorld(grid)
	s.level = lvl
	s.grid = grid
	s.finder = finder
	s.stats = stats
	s.phys = phys
	s.world = world
	s.sched = ecs.NewScheduler(
		system.NewPathRequestSystem(s.opts.metrics.Pather(finder), s.opts.logger),
		system.NewPathFollowSystem(),
		system.NewPhysicsSystem(phys),
		system.NewRespawnSystem(phys),
	)
	s.ticks = 0
	s.opts.logger.Info("level loaded",
		"width", lvl.Width,
		"height", lvl.Height,
		"agents", len(lvl.Entities),
		"points", stats.Points,
		"edges", stats.Edges,
	)
	return nil
}

func (s *Sim) navigationConfig() (pathfind.Config, error) {
	if s.opts.config != nil {
		return *s.opts.config, nil
	}
	spec, err := prefabs.LoadNavigationSpec()
	if err != nil {
		return pathfind.Config{}, fmt.Errorf("sim: %w", err)
	}
	return spec.Config(), nil
}

// Step advances the simulation by one fixed tick.
func (s *Sim) Step() {
	s.sched.Update(s.world)
	s.ticks++
	s.opts.metrics.Tick()

	for _, evt := range s.world.Events().Drain() {
		kind := s.agentKind(evt.Entity)
		switch evt.Type {
		case ecs.EventRepath:
			s.opts.metrics.ObserveRepath(kind)
			s.opts.logger.Debug("repath", "agent", kind, "waypoints", evt.Data)
		case ecs.EventJump:
			if tier, ok := evt.Data.(movement.JumpTier); ok {
				s.opts.metrics.ObserveJump(kind, tier)
			}
		case ecs.EventArrived:
			s.opts.logger.Debug("arrived", "agent", kind, "tick", s.ticks)
		case ecs.EventRespawn:
			s.opts.logger.Info("agent respawned", "agent", kind, "at", evt.Data)
		}
	}
}

// Run steps n ticks.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

func (s *Sim) agentKind(e ecs.Entity) string {
	if tag, ok := ecs.Get(s.world, e, component.AgentTagComponent.Kind()); ok {
		return tag.Kind
	}
	return "unknown"
}

// Click sends every click-driven agent towards pos. It reports whether any
// agent took the click; an airborne agent still drops it on its next tick.
func (s *Sim) Click(pos common.Vec) bool {
	took := false
	ecs.ForEach(s.world, component.PathFollowerComponent.Kind(), func(_ ecs.Entity, pf *component.PathFollower) {
		if src, ok := pf.Source.(*movement.ClickSource); ok {
			src.Click(pos)
			took = true
		}
	})
	return took
}

// ToggleHunt starts or stops every chasing agent and reports whether the
// hunt is now on.
func (s *Sim) ToggleHunt() bool {
	active := false
	ecs.ForEach(s.world, component.PathFollowerComponent.Kind(), func(_ ecs.Entity, pf *component.PathFollower) {
		src, ok := pf.Source.(*movement.ChaseSource)
		if !ok {
			return
		}
		src.Toggle()
		if !src.Active() && pf.Executor != nil {
			pf.Executor.Clear()
		}
		active = active || src.Active()
	})
	return active
}

// Agent is a read-only view of one agent for rendering and reports.
type Agent struct {
	Entity   ecs.Entity
	Kind     string
	Position common.Vec
	Velocity common.Vec
	Grounded bool
	Width    float64
	Height   float64
	Color    color.Color
	Target   movement.Target
	Path     []pathfind.Point
}

// Agents lists agents in spawn order.
func (s *Sim) Agents() []Agent {
	var out []Agent
	ecs.ForEach3(s.world,
		component.AgentTagComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, tag *component.AgentTag, t *component.Transform, body *component.PhysicsBody) {
			a := Agent{
				Entity:   e,
				Kind:     tag.Kind,
				Position: t.Vec(),
				Velocity: body.Velocity,
				Grounded: body.Grounded,
				Width:    body.Width,
				Height:   body.Height,
			}
			if c, ok := ecs.Get(s.world, e, component.DebugColorComponent.Kind()); ok {
				a.Color = c.Color
			}
			if pf, ok := ecs.Get(s.world, e, component.PathFollowerComponent.Kind()); ok && pf.Executor != nil {
				a.Target = pf.Executor.Target()
				a.Path = pf.Executor.Path()
			}
			out = append(out, a)
		})
	return out
}

// Agent returns the first agent of the given kind.
func (s *Sim) Agent(kind string) (Agent, bool) {
	for _, a := range s.Agents() {
		if a.Kind == kind {
			return a, true
		}
	}
	return Agent{}, false
}

func (s *Sim) Level() *levels.Level             { return s.level }
func (s *Sim) Grid() *tilemap.TileMap           { return s.grid }
func (s *Sim) PathFinder() *pathfind.PathFinder { return s.finder }
func (s *Sim) Stats() pathfind.Stats            { return s.stats }
func (s *Sim) Snapshot() pathfind.Snapshot      { return s.finder.Snapshot() }
func (s *Sim) Ticks() int                       { return s.ticks }
func (s *Sim) Physics() *physics.World          { return s.phys }
