package mouselook

import "log/slog"

// MouseLookBuilderOption is a functional option for configuring a MouseLook.
type MouseLookBuilderOption func(*mouseLook)

// WithSettings sets the initial enabled flag and sensitivity.
//
// Parameters:
//   - settings: the initial settings
//
// Returns:
//   - MouseLookBuilderOption: option function to apply
func WithSettings(settings Settings) MouseLookBuilderOption {
	return func(m *mouseLook) {
		m.settings = settings
	}
}

// WithEnabled sets whether mouse look starts enabled.
//
// Parameters:
//   - enabled: true to process movement and write orientation (default true)
//
// Returns:
//   - MouseLookBuilderOption: option function to apply
func WithEnabled(enabled bool) MouseLookBuilderOption {
	return func(m *mouseLook) {
		m.settings.Enabled = enabled
	}
}

// WithSensitivity sets the initial sensitivity.
//
// Parameters:
//   - sensitivity: linear scale on angular rate (default 1)
//
// Returns:
//   - MouseLookBuilderOption: option function to apply
func WithSensitivity(sensitivity float64) MouseLookBuilderOption {
	return func(m *mouseLook) {
		m.settings.Sensitivity = sensitivity
	}
}

// WithTrigger sets the activation gesture source that requests capture.
//
// Parameters:
//   - t: the trigger (nil disables gesture-driven capture)
//
// Returns:
//   - MouseLookBuilderOption: option function to apply
func WithTrigger(t Trigger) MouseLookBuilderOption {
	return func(m *mouseLook) {
		m.trigger = t
	}
}

// WithLogger sets the logger used by the component and its capture session.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - MouseLookBuilderOption: option function to apply
func WithLogger(l *slog.Logger) MouseLookBuilderOption {
	return func(m *mouseLook) {
		m.log = l
	}
}
