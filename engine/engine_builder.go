package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-look/engine/renderer"
	"github.com/Carmen-Shannon/oxy-look/engine/scene"
	"github.com/Carmen-Shannon/oxy-look/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawn at the end of each frame and resized with the window.
//
// Parameters:
//   - r: the renderer to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are ticked in ascending key order.
//
// Parameters:
//   - key: the z-index determining tick order (lower ticks first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithConfigWatch enables hot reload of the YAML config at path while Run is active.
// Each valid reload updates the frame limit and profiling, then reaches the config callback.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigWatch(path string) EngineBuilderOption {
	return func(e *engine) {
		e.configPath = path
	}
}

// WithMovementSource counts movement deltas from src in the profiler's events per second.
//
// Parameters:
//   - src: the movement fan-out, typically a window.CapturePlatform
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMovementSource(src MovementSource) EngineBuilderOption {
	return func(e *engine) {
		e.movement = src
	}
}

// WithLogger sets the logger used for engine events.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.log = l
		}
	}
}
