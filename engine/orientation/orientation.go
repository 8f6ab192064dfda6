package orientation

import (
	"github.com/Carmen-Shannon/oxy-look/common"
	"github.com/go-gl/mathgl/mgl64"
)

// MovementScale converts raw movement units to radians at sensitivity 1.
const MovementScale = 0.002

// Sink receives the orientation computed each tick.
// It is write-only; the accumulator never reads the value back.
type Sink interface {
	// SetOrientation writes pitch (X) and yaw (Y) in degrees. Roll is left untouched.
	//
	// Parameters:
	//   - o: the orientation record
	SetOrientation(o common.Orientation)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(o common.Orientation)

func (f SinkFunc) SetOrientation(o common.Orientation) {
	f(o)
}

// Accumulator integrates captured pointer movement into a pitch/yaw orientation.
// Pitch is clamped to [-π/2, π/2] after every update; yaw is unbounded.
// Rotation order is yaw then pitch (Y outer, X inner).
//
// An Accumulator is not safe for concurrent use; all calls must come from the host event loop.
type Accumulator interface {
	// ApplyMovementDelta rotates by a relative pointer movement scaled by sensitivity.
	// No-op while disabled. Never allocates.
	//
	// Parameters:
	//   - dx: horizontal movement, positive turns right (yaw decreases)
	//   - dy: vertical movement, positive looks down (pitch decreases)
	ApplyMovementDelta(dx, dy float64)

	// Tick writes the current orientation in degrees to the sink.
	// No-op while disabled, which freezes the last written value.
	Tick()

	// Pitch returns the current pitch.
	//
	// Returns:
	//   - float64: pitch in radians, within [-π/2, π/2]
	Pitch() float64

	// Yaw returns the current yaw.
	//
	// Returns:
	//   - float64: yaw in radians, unbounded
	Yaw() float64

	// Orientation returns the current angles in degrees, as Tick would write them.
	//
	// Returns:
	//   - common.Orientation: pitch (X) and yaw (Y) in degrees
	Orientation() common.Orientation

	// Quaternion returns the yaw-then-pitch rotation.
	//
	// Returns:
	//   - mgl64.Quat: the composed rotation
	Quaternion() mgl64.Quat

	// Forward returns the unit look direction, with -Z as forward at zero yaw and pitch.
	//
	// Returns:
	//   - mgl64.Vec3: the look direction
	Forward() mgl64.Vec3

	// Sensitivity returns the linear scale on angular rate.
	Sensitivity() float64

	// SetSensitivity sets the linear scale on angular rate. Zero freezes rotation.
	//
	// Parameters:
	//   - sensitivity: the new multiplier
	SetSensitivity(sensitivity float64)

	// Enabled reports whether movement and tick emission are active.
	Enabled() bool

	// SetEnabled enables or disables both movement processing and tick emission.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetSink replaces the orientation sink. Nil disables emission.
	//
	// Parameters:
	//   - sink: the destination for orientation writes
	SetSink(sink Sink)

	// SetAngles sets pitch and yaw directly. Pitch is clamped.
	//
	// Parameters:
	//   - pitch: pitch in radians
	//   - yaw: yaw in radians
	SetAngles(pitch, yaw float64)

	// Reset zeroes both angles.
	Reset()
}

type accumulator struct {
	pitch       float64
	yaw         float64
	sensitivity float64
	enabled     bool
	sink        Sink

	// out is reused for every tick so emission does not build a new record each frame.
	out common.Orientation
}

var _ Accumulator = &accumulator{}

// NewAccumulator creates an accumulator facing forward with sensitivity 1, enabled.
//
// Parameters:
//   - options: functional options to configure the accumulator
//
// Returns:
//   - Accumulator: the newly created accumulator
func NewAccumulator(options ...AccumulatorBuilderOption) Accumulator {
	a := &accumulator{
		sensitivity: 1,
		enabled:     true,
	}
	for _, option := range options {
		option(a)
	}
	a.pitch = common.ClampPitch(a.pitch)
	return a
}

func (a *accumulator) ApplyMovementDelta(dx, dy float64) {
	if !a.enabled {
		return
	}
	scale := MovementScale * a.sensitivity
	a.yaw -= dx * scale
	a.pitch = common.ClampPitch(a.pitch - dy*scale)
}

func (a *accumulator) Tick() {
	if !a.enabled || a.sink == nil {
		return
	}
	a.out.X = common.RadToDeg(a.pitch)
	a.out.Y = common.RadToDeg(a.yaw)
	a.sink.SetOrientation(a.out)
}

func (a *accumulator) Pitch() float64 {
	return a.pitch
}

func (a *accumulator) Yaw() float64 {
	return a.yaw
}

func (a *accumulator) Orientation() common.Orientation {
	return common.Orientation{
		X: common.RadToDeg(a.pitch),
		Y: common.RadToDeg(a.yaw),
	}
}

func (a *accumulator) Quaternion() mgl64.Quat {
	return common.YawPitchQuat(a.yaw, a.pitch)
}

func (a *accumulator) Forward() mgl64.Vec3 {
	return a.Quaternion().Rotate(mgl64.Vec3{0, 0, -1})
}

func (a *accumulator) Sensitivity() float64 {
	return a.sensitivity
}

func (a *accumulator) SetSensitivity(sensitivity float64) {
	a.sensitivity = sensitivity
}

func (a *accumulator) Enabled() bool {
	return a.enabled
}

func (a *accumulator) SetEnabled(enabled bool) {
	a.enabled = enabled
}

func (a *accumulator) SetSink(sink Sink) {
	a.sink = sink
}

func (a *accumulator) SetAngles(pitch, yaw float64) {
	a.pitch = common.ClampPitch(pitch)
	a.yaw = yaw
}

func (a *accumulator) Reset() {
	a.pitch = 0
	a.yaw = 0
}
