package scene

import (
	"github.com/Carmen-Shannon/oxy-look/engine/game_object"
)

// Behavior is a per-frame hook attached to a scene, the host-side tick signal
// that entity components use to publish their state. Implementations must be
// comparable (typically pointers) so they can be detached again.
type Behavior interface {
	// Tick is called once per frame while the behavior is attached and the scene is active.
	Tick()
}

// Scene is the host for game objects and the behaviors that drive them.
// Scenes are owned by the engine loop and are not safe for concurrent use.
type Scene interface {
	// Name returns the name of the scene.
	Name() string

	// SetName sets the name of the scene.
	SetName(name string)

	// Active returns whether the scene is ticked by the engine.
	Active() bool

	// SetActive sets whether the scene is ticked by the engine.
	SetActive(active bool)

	// Count returns the number of registered (non-ephemeral) objects.
	//
	// Returns:
	//   - int: number of objects in the registry
	Count() int

	// Add registers an object with the scene and returns its ID.
	// Objects without an ID are assigned the next free one. Ephemeral objects get an ID
	// but are not kept in the registry.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the registered object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil if not found
	Get(id uint64) game_object.GameObject

	// Remove drops the object with the given ID from the registry.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Clear removes every object and behavior.
	Clear()

	// AddBehavior attaches a behavior. Adding the same behavior twice is a no-op.
	//
	// Parameters:
	//   - b: the behavior to attach
	AddBehavior(b Behavior)

	// RemoveBehavior detaches a behavior. Safe to call from inside a Tick.
	//
	// Parameters:
	//   - b: the behavior to detach
	RemoveBehavior(b Behavior)

	// Behaviors returns the number of attached behaviors.
	Behaviors() int

	// Tick runs every attached behavior once, in attachment order.
	// Behaviors added during a tick run from the next tick on.
	Tick()
}

type scene struct {
	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64

	// behaviors may hold nil holes while a tick is in progress; they are compacted afterwards.
	behaviors []Behavior
	ticking   bool
	dirty     bool
}

var _ Scene = &scene{}

// NewScene creates a new, inactive Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:     name,
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Count() int {
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		return 0
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	if !obj.Ephemeral() {
		s.registry[obj.ID()] = obj
	}
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.registry = make(map[uint64]game_object.GameObject)
	if s.ticking {
		for i := range s.behaviors {
			s.behaviors[i] = nil
		}
		s.dirty = true
		return
	}
	s.behaviors = nil
}

func (s *scene) AddBehavior(b Behavior) {
	if b == nil || s.indexOf(b) >= 0 {
		return
	}
	s.behaviors = append(s.behaviors, b)
}

func (s *scene) RemoveBehavior(b Behavior) {
	i := s.indexOf(b)
	if i < 0 {
		return
	}
	if s.ticking {
		s.behaviors[i] = nil
		s.dirty = true
		return
	}
	s.behaviors = append(s.behaviors[:i], s.behaviors[i+1:]...)
}

func (s *scene) Behaviors() int {
	n := 0
	for _, b := range s.behaviors {
		if b != nil {
			n++
		}
	}
	return n
}

func (s *scene) Tick() {
	s.ticking = true
	n := len(s.behaviors)
	for i := 0; i < n; i++ {
		if b := s.behaviors[i]; b != nil {
			b.Tick()
		}
	}
	s.ticking = false

	if s.dirty {
		s.compact()
	}
}

// indexOf returns the position of b in the behavior list, or -1.
func (s *scene) indexOf(b Behavior) int {
	for i, existing := range s.behaviors {
		if existing != nil && existing == b {
			return i
		}
	}
	return -1
}

// compact drops the nil holes left by removals during a tick.
func (s *scene) compact() {
	kept := s.behaviors[:0]
	for _, b := range s.behaviors {
		if b != nil {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(s.behaviors); i++ {
		s.behaviors[i] = nil
	}
	s.behaviors = kept
	s.dirty = false
}
