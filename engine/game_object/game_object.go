package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-look/common"
	"github.com/Carmen-Shannon/oxy-look/engine/orientation"
)

type gameObject struct {
	id        uint64
	name      string
	enabled   atomic.Bool
	ephemeral bool

	// transform state in world units and degrees
	position [3]float64
	rotation [3]float64
}

// GameObject defines the interface for a scene entity carrying a transform.
// Rotation is stored in degrees per axis (X pitch, Y yaw, Z roll) and is the
// attribute mouse look writes to.
type GameObject interface {
	orientation.Sink

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's display name.
	Name() string

	// Enabled returns whether this object is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are not persisted in the scene's registry when added.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Position returns the object's position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float64)

	// SetPosition sets the object's position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float64)

	// Rotation returns the object's rotation in degrees.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles in degrees
	Rotation() (rx, ry, rz float64)

	// SetRotation sets all three rotation angles in degrees.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles in degrees
	SetRotation(rx, ry, rz float64)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects are enabled unless WithEnabled(false) is passed.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Position() (x, y, z float64) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float64) {
	g.position = [3]float64{x, y, z}
}

func (g *gameObject) Rotation() (rx, ry, rz float64) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) SetRotation(rx, ry, rz float64) {
	g.rotation = [3]float64{rx, ry, rz}
}

// SetOrientation writes pitch and yaw, preserving roll.
func (g *gameObject) SetOrientation(o common.Orientation) {
	g.rotation[0] = o.X
	g.rotation[1] = o.Y
}
