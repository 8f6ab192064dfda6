package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-look/engine/game_object"
)

type countingBehavior struct {
	ticks  int
	onTick func()
}

func (b *countingBehavior) Tick() {
	b.ticks++
	if b.onTick != nil {
		b.onTick()
	}
}

func TestAddAssignsIDs(t *testing.T) {
	cases := []struct {
		name      string
		objects   []game_object.GameObject
		wantCount int
	}{
		{"single", []game_object.GameObject{game_object.NewGameObject()}, 1},
		{"preset_id", []game_object.GameObject{game_object.NewGameObject(game_object.WithID(10)), game_object.NewGameObject()}, 2},
		{"ephemeral", []game_object.GameObject{game_object.NewGameObject(game_object.WithEphemeral(true))}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScene(c.name)
			seen := make(map[uint64]bool)
			for _, obj := range c.objects {
				id := s.Add(obj)
				if id == 0 {
					t.Fatal("expected non-zero ID")
				}
				if seen[id] {
					t.Fatalf("duplicate ID %d", id)
				}
				seen[id] = true
			}
			if s.Count() != c.wantCount {
				t.Fatalf("expected %d registered objects, got %d", c.wantCount, s.Count())
			}
		})
	}
}

func TestGetAndRemove(t *testing.T) {
	obj := game_object.NewGameObject()
	s := NewScene("s", WithObjects(obj))

	if s.Get(obj.ID()) != obj {
		t.Fatal("expected registered object")
	}
	s.Remove(obj.ID())
	if s.Get(obj.ID()) != nil || s.Count() != 0 {
		t.Fatal("expected object removed")
	}
}

func TestTickRunsBehaviorsInOrder(t *testing.T) {
	var order []int
	a := &countingBehavior{onTick: func() { order = append(order, 1) }}
	b := &countingBehavior{onTick: func() { order = append(order, 2) }}
	s := NewScene("s", WithBehaviors(a, b))

	s.AddBehavior(a)
	s.Tick()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected tick order %v", order)
	}
	if s.Behaviors() != 2 {
		t.Fatalf("duplicate AddBehavior should be ignored, got %d behaviors", s.Behaviors())
	}
}

func TestRemoveBehaviorDuringTick(t *testing.T) {
	s := NewScene("s")
	second := &countingBehavior{}
	var first *countingBehavior
	first = &countingBehavior{onTick: func() { s.RemoveBehavior(first) }}
	s.AddBehavior(first)
	s.AddBehavior(second)

	s.Tick()
	s.Tick()

	if first.ticks != 1 {
		t.Fatalf("removed behavior should tick once, got %d", first.ticks)
	}
	if second.ticks != 2 {
		t.Fatalf("remaining behavior should tick every frame, got %d", second.ticks)
	}
	if s.Behaviors() != 1 {
		t.Fatalf("expected 1 behavior, got %d", s.Behaviors())
	}
}

func TestAddBehaviorDuringTickRunsNextFrame(t *testing.T) {
	s := NewScene("s")
	late := &countingBehavior{}
	added := false
	s.AddBehavior(&countingBehavior{onTick: func() {
		if !added {
			added = true
			s.AddBehavior(late)
		}
	}})

	s.Tick()
	if late.ticks != 0 {
		t.Fatal("behavior added mid-tick must wait for the next tick")
	}
	s.Tick()
	if late.ticks != 1 {
		t.Fatalf("expected late behavior to tick once, got %d", late.ticks)
	}
}

func TestClear(t *testing.T) {
	b := &countingBehavior{}
	s := NewScene("s", WithObjects(game_object.NewGameObject()), WithBehaviors(b))

	s.Clear()
	s.Tick()

	if s.Count() != 0 || s.Behaviors() != 0 || b.ticks != 0 {
		t.Fatal("expected empty scene after Clear")
	}
}
