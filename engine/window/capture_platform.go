package window

import (
	"github.com/Carmen-Shannon/oxy-look/engine/capture"
)

// CaptureSurface is the pointer-capture part of a Window.
// Callbacks are single-slot; CapturePlatform fans them out to any number of subscribers.
type CaptureSurface interface {
	// CaptureSupported reports whether the platform can capture the pointer.
	//
	// Returns:
	//   - bool: true if pointer capture is available
	CaptureSupported() bool

	// Captured reports whether the pointer is currently captured by this surface.
	//
	// Returns:
	//   - bool: true while captured
	Captured() bool

	// RequestCapture asks for pointer capture. The outcome is delivered on the next
	// message loop iteration through the capture-changed or capture-error callback.
	RequestCapture()

	// ReleaseCapture returns the pointer to normal mode. Safe to call when not captured.
	ReleaseCapture()

	// SetCaptureChangedCallback sets the callback for capture state changes.
	//
	// Parameters:
	//   - callback: function receiving true when captured, false when released or lost
	SetCaptureChangedCallback(callback func(captured bool))

	// SetCaptureErrorCallback sets the callback for failed capture requests.
	//
	// Parameters:
	//   - callback: function receiving the failure
	SetCaptureErrorCallback(callback func(err error))

	// SetMouseDeltaCallback sets the callback for relative movement while captured.
	//
	// Parameters:
	//   - callback: function receiving movement since the previous event
	SetMouseDeltaCallback(callback func(dx, dy float64))

	// SetActivateCallback sets the callback for the activation gesture (left click on the surface).
	//
	// Parameters:
	//   - callback: function to call on each activation
	SetActivateCallback(callback func())
}

// CapturePlatform adapts a CaptureSurface to capture.Platform and mouselook.Trigger.
// It owns the surface's capture callbacks and dispatches each event to every current subscriber.
type CapturePlatform struct {
	surface   CaptureSurface
	supported bool

	movement registry[capture.MovementListener]
	changed  registry[func(bool)]
	failed   registry[func(error)]
	activate registry[func()]
}

var _ capture.Platform = &CapturePlatform{}

// NewCapturePlatform wraps a surface and takes over its capture-related callbacks.
// The capability probe is taken once here.
//
// Parameters:
//   - surface: the window or other capture surface
//
// Returns:
//   - *CapturePlatform: the adapter
func NewCapturePlatform(surface CaptureSurface) *CapturePlatform {
	p := &CapturePlatform{
		surface:   surface,
		supported: surface != nil && surface.CaptureSupported(),
	}
	if surface == nil {
		return p
	}
	surface.SetMouseDeltaCallback(p.dispatchMovement)
	surface.SetCaptureChangedCallback(p.dispatchChanged)
	surface.SetCaptureErrorCallback(p.dispatchError)
	surface.SetActivateCallback(p.dispatchActivate)
	return p
}

func (p *CapturePlatform) Supported() bool {
	return p.supported
}

func (p *CapturePlatform) RequestCapture() {
	if !p.supported {
		return
	}
	p.surface.RequestCapture()
}

func (p *CapturePlatform) ReleaseCapture() {
	if p.surface == nil {
		return
	}
	p.surface.ReleaseCapture()
}

func (p *CapturePlatform) SubscribeMovement(listener capture.MovementListener) capture.Subscription {
	return p.movement.add(listener)
}

// SubscribeCaptureState registers both callbacks; the returned handle removes both.
func (p *CapturePlatform) SubscribeCaptureState(onChanged func(bool), onError func(error)) capture.Subscription {
	return &pairHandle{
		a: p.changed.add(onChanged),
		b: p.failed.add(onError),
	}
}

// SubscribeActivate registers a callback for activation gestures.
func (p *CapturePlatform) SubscribeActivate(onActivate func()) capture.Subscription {
	return p.activate.add(onActivate)
}

// Listeners returns the number of live movement listeners.
func (p *CapturePlatform) Listeners() int {
	return p.movement.len()
}

func (p *CapturePlatform) dispatchMovement(dx, dy float64) {
	n := p.movement.begin()
	for i := 0; i < n; i++ {
		if e := &p.movement.entries[i]; e.live {
			e.fn(dx, dy)
		}
	}
	p.movement.end()
}

func (p *CapturePlatform) dispatchChanged(captured bool) {
	n := p.changed.begin()
	for i := 0; i < n; i++ {
		if e := &p.changed.entries[i]; e.live {
			e.fn(captured)
		}
	}
	p.changed.end()
}

func (p *CapturePlatform) dispatchError(err error) {
	n := p.failed.begin()
	for i := 0; i < n; i++ {
		if e := &p.failed.entries[i]; e.live {
			e.fn(err)
		}
	}
	p.failed.end()
}

func (p *CapturePlatform) dispatchActivate() {
	n := p.activate.begin()
	for i := 0; i < n; i++ {
		if e := &p.activate.entries[i]; e.live {
			e.fn()
		}
	}
	p.activate.end()
}

type pairHandle struct {
	a, b capture.Subscription
}

func (h *pairHandle) Unsubscribe() {
	h.a.Unsubscribe()
	h.b.Unsubscribe()
}
