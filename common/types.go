// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Orientation is the rotation record written to an entity each frame.
// Angles are in degrees. Z (roll) is intentionally absent: mouse look never models roll.
type Orientation struct {
	// X is the pitch in degrees, rotation about the lateral axis (looking up/down).
	X float64
	// Y is the yaw in degrees, rotation about the vertical axis (looking left/right).
	Y float64
}
