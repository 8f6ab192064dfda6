package window

import "github.com/Carmen-Shannon/oxy-look/common"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = common.Coalesce(title, w.title)
	}
}

// WithWidth sets the initial window width. Zero keeps the default.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = common.Coalesce(width, w.width)
	}
}

// WithHeight sets the initial window height. Zero keeps the default.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = common.Coalesce(height, w.height)
	}
}

// WithRawMouseMotion sets whether unaccelerated motion is requested while captured.
// Ignored on platforms without raw motion support.
//
// Parameters:
//   - enabled: true to request raw motion (default true)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRawMouseMotion(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.rawMotion = enabled
	}
}
