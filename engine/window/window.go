package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrWindowNotInitialized is returned when the platform window does not exist yet or was closed.
	ErrWindowNotInitialized = errors.New("window is not initialized")

	// ErrNotFocused is reported when capture is requested while the window does not have input focus.
	ErrNotFocused = errors.New("window does not have input focus")

	// ErrCursorNotDisabled is reported when the platform ignored the request to disable the cursor.
	ErrCursorNotDisabled = errors.New("platform did not disable the cursor")
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// All methods must be called from the thread that created the window.
type Window interface {
	CaptureSurface

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up, negative = down)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	// Escape is reserved: it releases capture, or closes the window when not captured.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseMoveCallback sets the callback for absolute mouse movement while not captured.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close releases capture, closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls events, delivers queued
	// capture notifications, then calls the update callback.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// rawMotion requests unaccelerated movement while captured when the platform supports it.
	rawMotion bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// captured mirrors the platform cursor mode; notifications about it are queued in pending.
	captured bool

	// pending holds capture notifications delivered on the next message loop iteration.
	pending []func()

	onUpdate         func()
	onResize         func(width, height int)
	onScroll         func(delta float32)
	onKeyDown        func(keyCode uint32)
	onKeyUp          func(keyCode uint32)
	onMouseMove      func(x, y int32)
	onMouseDelta     func(dx, dy float64)
	onActivate       func()
	onCaptureChanged func(captured bool)
	onCaptureError   func(err error)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Oxy Look",
		width:     1280,
		height:    720,
		rawMotion: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseDeltaCallback(callback func(dx, dy float64)) {
	w.onMouseDelta = callback
}

func (w *engineWindow) SetActivateCallback(callback func()) {
	w.onActivate = callback
}

func (w *engineWindow) SetCaptureChangedCallback(callback func(captured bool)) {
	w.onCaptureChanged = callback
}

func (w *engineWindow) SetCaptureErrorCallback(callback func(err error)) {
	w.onCaptureError = callback
}

func (w *engineWindow) CaptureSupported() bool {
	return platformCaptureSupported(w)
}

func (w *engineWindow) Captured() bool {
	return w.captured
}

func (w *engineWindow) RequestCapture() {
	if err := platformRequestCapture(w); err != nil {
		w.queue(func() {
			if w.onCaptureError != nil {
				w.onCaptureError(err)
			}
		})
		return
	}
	w.setCaptured(true)
}

func (w *engineWindow) ReleaseCapture() {
	platformReleaseCapture(w)
	w.setCaptured(false)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	if w.captured {
		w.ReleaseCapture()
		w.flush()
	}
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		w.flush()

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// setCaptured records the platform capture state and queues a notification when it changes.
func (w *engineWindow) setCaptured(captured bool) {
	if w.captured == captured {
		return
	}
	w.captured = captured
	w.queue(func() {
		if w.onCaptureChanged != nil {
			w.onCaptureChanged(captured)
		}
	})
}

// queue defers a notification to the next message loop iteration.
func (w *engineWindow) queue(fn func()) {
	w.pending = append(w.pending, fn)
}

// flush delivers queued notifications in order. Notifications queued while flushing
// are delivered on the following iteration.
func (w *engineWindow) flush() {
	if len(w.pending) == 0 {
		return
	}
	pending := w.pending
	w.pending = nil
	for _, fn := range pending {
		fn()
	}
}
