package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/ecs/component"
	"github.com/milk9111/tilepath/movement"
)

// agent adds the components the path and physics systems query for.
func agent(t *testing.T, w *World, x float64, withFollower bool) Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: 16}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 24, Height: 30}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if withFollower {
		pf := &component.PathFollower{Executor: movement.NewExecutor(movement.PlayerTuning(), nil)}
		if err := Add(w, e, component.PathFollowerComponent.Kind(), pf); err != nil {
			t.Fatalf("add follower: %v", err)
		}
	}
	return e
}

func TestQueriesMatchAgentComponents(t *testing.T) {
	w := NewWorld()
	walker := agent(t, w, 48, true)
	crate := agent(t, w, 96, false)
	marker := w.CreateEntity()
	if err := Add(w, marker, component.TransformComponent.Kind(), &component.Transform{X: 200}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		run  func() []Entity
		want []Entity
	}{
		{
			name: "transform",
			run: func() []Entity {
				var got []Entity
				ForEach(w, component.TransformComponent.Kind(), func(e Entity, _ *component.Transform) { got = append(got, e) })
				return got
			},
			want: []Entity{walker, crate, marker},
		},
		{
			name: "transform_and_body",
			run: func() []Entity {
				var got []Entity
				ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
					func(e Entity, _ *component.Transform, _ *component.PhysicsBody) { got = append(got, e) })
				return got
			},
			want: []Entity{walker, crate},
		},
		{
			name: "follower_transform_body",
			run: func() []Entity {
				var got []Entity
				ForEach3(w, component.PathFollowerComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
					func(e Entity, _ *component.PathFollower, _ *component.Transform, _ *component.PhysicsBody) { got = append(got, e) })
				return got
			},
			want: []Entity{walker},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.run()
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("got %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestForEachHandsOutStoredPointers(t *testing.T) {
	w := NewWorld()
	e := agent(t, w, 48, true)

	ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(_ Entity, tr *component.Transform, body *component.PhysicsBody) {
			body.Velocity = common.Vec{X: 300}
			tr.X += body.Velocity.X / common.TickRate
		})

	tr, _ := Get(w, e, component.TransformComponent.Kind())
	body, _ := Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Velocity.X != 300 || tr.X != 48+300.0/common.TickRate {
		t.Fatalf("writes inside ForEach2 were lost: %+v %+v", tr, body)
	}
}

func TestDestroyedAgentLeavesQueries(t *testing.T) {
	w := NewWorld()
	a := agent(t, w, 48, true)
	b := agent(t, w, 96, true)

	if !w.DestroyEntity(a) {
		t.Fatal("destroy failed")
	}
	if w.DestroyEntity(a) {
		t.Fatal("second destroy should report false")
	}

	var got []Entity
	ForEach3(w, component.PathFollowerComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e Entity, _ *component.PathFollower, _ *component.Transform, _ *component.PhysicsBody) { got = append(got, e) })
	if len(got) != 1 || got[0] != b {
		t.Fatalf("expected only %v, got %v", b, got)
	}

	reused := w.CreateEntity()
	if reused.id() != a.id() || reused == a {
		t.Fatalf("expected slot %d reused with a new generation, got %v", a.id(), reused)
	}
	if Has(w, reused, component.TransformComponent.Kind()) {
		t.Fatal("reused slot must not inherit components")
	}
	if err := Add(w, a, component.TransformComponent.Kind(), &component.Transform{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestRemoveRequestComponent(t *testing.T) {
	w := NewWorld()
	e := agent(t, w, 48, false)
	kind := component.RespawnRequestComponent.Kind()

	if err := Add(w, e, kind, &component.RespawnRequest{}); err != nil {
		t.Fatal(err)
	}
	if !Remove(w, e, kind) {
		t.Fatal("remove should report true")
	}
	if Remove(w, e, kind) || Has(w, e, kind) {
		t.Fatal("request should be gone")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, component.ComponentKind[component.Transform]{}, &component.Transform{}); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[component.Transform](w, e, component.TransformComponent.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestFirstAndEvents(t *testing.T) {
	w := NewWorld()
	kind := component.PlayerTagComponent.Kind()
	if _, ok := w.First(kind); ok {
		t.Fatal("empty world has no player")
	}
	skeleton := agent(t, w, 96, true)
	player := agent(t, w, 48, true)
	_ = Add(w, player, kind, &component.PlayerTag{})
	if first, ok := w.First(kind); !ok || first != player {
		t.Fatalf("First = %v, want %v", first, player)
	}

	w.Events().Push(Event{Type: EventRepath, Entity: player, Data: 3})
	w.Events().Push(Event{Type: EventJump, Entity: skeleton, Data: movement.SmallJump})
	if w.Events().Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Events().Len())
	}
	evts := w.Events().Drain()
	if len(evts) != 2 || evts[0].Type != EventRepath || evts[1].Data != movement.SmallJump {
		t.Fatalf("unexpected drain %v", evts)
	}
	if w.Events().Len() != 0 || w.Events().Drain() != nil {
		t.Fatal("queue should be empty after drain")
	}
}

type countSystem struct{ n *int }

func (c countSystem) Update(*World) { *c.n++ }

func TestSchedulerSkipsNilSystems(t *testing.T) {
	a, b := 0, 0
	s := NewScheduler(countSystem{&a}, nil, countSystem{&b})
	s.Update(NewWorld())
	s.Update(NewWorld())
	if len(s.Systems()) != 2 || a != 2 || b != 2 {
		t.Fatalf("systems=%d a=%d b=%d", len(s.Systems()), a, b)
	}
}
