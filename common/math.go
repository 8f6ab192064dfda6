package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HalfPi is the pitch limit in radians.
const HalfPi = math.Pi / 2

// ClampPitch clamps a pitch angle into [-π/2, π/2].
// NaN collapses to 0.
//
// Parameters:
//   - pitch: the pitch angle in radians
//
// Returns:
//   - float64: the clamped pitch in radians
func ClampPitch(pitch float64) float64 {
	if math.IsNaN(pitch) {
		return 0
	}
	return mgl64.Clamp(pitch, -HalfPi, HalfPi)
}

// RadToDeg converts radians to degrees.
//
// Parameters:
//   - rad: angle in radians
//
// Returns:
//   - float64: angle in degrees
func RadToDeg(rad float64) float64 {
	return mgl64.RadToDeg(rad)
}

// DegToRad converts degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float64: angle in radians
func DegToRad(deg float64) float64 {
	return mgl64.DegToRad(deg)
}

// YawPitchQuat composes a yaw-then-pitch rotation (Y outer, X inner) with no roll.
//
// Parameters:
//   - yaw: rotation about Y in radians
//   - pitch: rotation about X in radians
//
// Returns:
//   - mgl64.Quat: the composed rotation
func YawPitchQuat(yaw, pitch float64) mgl64.Quat {
	return mgl64.AnglesToQuat(yaw, pitch, 0, mgl64.YXZ)
}

// ApproxEqual reports whether two floats are within tolerance of each other.
//
// Parameters:
//   - a, b: values to compare
//   - tolerance: maximum absolute difference
//
// Returns:
//   - bool: true if |a-b| <= tolerance
func ApproxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
