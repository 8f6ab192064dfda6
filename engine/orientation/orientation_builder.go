package orientation

// AccumulatorBuilderOption is a functional option for configuring an Accumulator.
type AccumulatorBuilderOption func(*accumulator)

// WithSensitivity sets the linear scale on angular rate.
//
// Parameters:
//   - sensitivity: multiplier for movement (default 1, 0 freezes rotation)
//
// Returns:
//   - AccumulatorBuilderOption: option function to apply
func WithSensitivity(sensitivity float64) AccumulatorBuilderOption {
	return func(a *accumulator) {
		a.sensitivity = sensitivity
	}
}

// WithEnabled sets whether movement and tick emission start enabled.
//
// Parameters:
//   - enabled: true to process movement and emit on tick (default true)
//
// Returns:
//   - AccumulatorBuilderOption: option function to apply
func WithEnabled(enabled bool) AccumulatorBuilderOption {
	return func(a *accumulator) {
		a.enabled = enabled
	}
}

// WithSink sets the orientation sink written on every tick.
//
// Parameters:
//   - sink: the destination for orientation writes
//
// Returns:
//   - AccumulatorBuilderOption: option function to apply
func WithSink(sink Sink) AccumulatorBuilderOption {
	return func(a *accumulator) {
		a.sink = sink
	}
}

// WithAngles sets the initial pitch and yaw. Pitch is clamped on construction.
//
// Parameters:
//   - pitch: initial pitch in radians
//   - yaw: initial yaw in radians
//
// Returns:
//   - AccumulatorBuilderOption: option function to apply
func WithAngles(pitch, yaw float64) AccumulatorBuilderOption {
	return func(a *accumulator) {
		a.pitch = pitch
		a.yaw = yaw
	}
}
