package capture

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-look/engine/logger"
)

// Session owns the exclusive pointer-capture lifecycle of one entity.
// It requests and releases capture through a Platform and keeps the movement
// listener subscribed exactly while the pointer is captured.
//
// A Session is not safe for concurrent use; all calls must come from the host event loop.
type Session interface {
	// RequestCapture asks the platform to capture the pointer. Call it from a user gesture.
	// It does not change Captured; the platform notification does.
	RequestCapture()

	// ReleaseCapture releases the pointer and stops movement delivery before returning.
	ReleaseCapture()

	// OnCaptureChanged handles a platform capture-state notification.
	// Repeated notifications with the current state are ignored.
	//
	// Parameters:
	//   - captured: true if the pointer is now captured by this surface
	OnCaptureChanged(captured bool)

	// OnCaptureError handles a failed capture request. Captured is left unchanged.
	//
	// Parameters:
	//   - err: the platform error
	OnCaptureError(err error)

	// Close releases capture and drops every platform subscription. Safe to call multiple times.
	Close()

	// Captured reports whether the pointer is currently captured.
	//
	// Returns:
	//   - bool: true while movement events are being delivered
	Captured() bool

	// Supported reports the capability probe result taken at construction.
	//
	// Returns:
	//   - bool: false if the session is inert
	Supported() bool

	// Closed reports whether Close has been called.
	//
	// Returns:
	//   - bool: true after teardown
	Closed() bool

	// LastError returns the most recent capture failure wrapped in ErrCaptureDenied, or nil.
	LastError() error
}

type session struct {
	platform Platform
	listener MovementListener
	log      *slog.Logger

	supported bool
	captured  bool
	closed    bool

	// forward is bound once so subscribing never allocates a new closure.
	forward MovementListener

	movementSub Subscription
	stateSub    Subscription

	// lastErr is the most recent capture failure, kept for diagnostics.
	lastErr error
}

var _ Session = &session{}

// NewSession creates a capture session for a platform and probes its capability once.
// A nil platform or a negative probe leaves the session inert: the condition is logged
// once and every later call is a no-op.
//
// Parameters:
//   - platform: the pointer-capture capability of the render surface (may be nil)
//   - listener: receives movement deltas while captured
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
func NewSession(platform Platform, listener MovementListener, options ...SessionBuilderOption) Session {
	s := &session{
		platform: platform,
		listener: listener,
	}
	for _, option := range options {
		option(s)
	}
	if s.log == nil {
		s.log = logger.Component("capture")
	}

	s.supported = platform != nil && platform.Supported()
	if !s.supported {
		s.log.Warn("pointer capture unavailable, mouse look disabled", "error", ErrUnsupportedPlatform)
		return s
	}

	s.forward = s.deliver
	s.stateSub = platform.SubscribeCaptureState(s.OnCaptureChanged, s.OnCaptureError)
	return s
}

// active reports whether the session may talk to the platform.
func (s *session) active() bool {
	return s.supported && !s.closed
}

// deliver forwards a movement delta to the listener.
// It re-checks the live captured flag so an event queued before release is dropped.
func (s *session) deliver(dx, dy float64) {
	if !s.captured || s.closed || s.listener == nil {
		return
	}
	s.listener(dx, dy)
}

func (s *session) RequestCapture() {
	if !s.active() {
		if s.closed {
			s.log.Debug("capture request ignored", "error", ErrSessionClosed)
		}
		return
	}
	s.platform.RequestCapture()
}

func (s *session) ReleaseCapture() {
	if !s.supported {
		return
	}
	s.platform.ReleaseCapture()
	// Stop movement now rather than waiting for the platform notification.
	s.detach()
	if s.captured {
		s.captured = false
		s.log.Debug("pointer released")
	}
}

func (s *session) OnCaptureChanged(captured bool) {
	if !s.active() {
		return
	}
	if captured == s.captured {
		s.log.Debug("redundant capture transition ignored", "captured", captured)
		return
	}

	s.captured = captured
	if captured {
		s.lastErr = nil
		s.attach()
		s.log.Debug("pointer captured")
		return
	}
	s.detach()
	s.log.Debug("pointer capture lost")
}

func (s *session) OnCaptureError(err error) {
	if !s.active() {
		return
	}
	s.lastErr = fmt.Errorf("%w: %w", ErrCaptureDenied, err)
	s.log.Warn("pointer capture request failed", "error", s.lastErr, "captured", s.captured)
}

func (s *session) Close() {
	if s.closed {
		return
	}
	s.ReleaseCapture()
	if s.stateSub != nil {
		s.stateSub.Unsubscribe()
		s.stateSub = nil
	}
	s.closed = true
}

func (s *session) Captured() bool {
	return s.captured
}

func (s *session) Supported() bool {
	return s.supported
}

func (s *session) Closed() bool {
	return s.closed
}

func (s *session) LastError() error {
	return s.lastErr
}

// attach subscribes the movement listener unless it is already subscribed.
func (s *session) attach() {
	if s.movementSub != nil {
		return
	}
	s.movementSub = s.platform.SubscribeMovement(s.forward)
}

// detach unsubscribes the movement listener. No-op when nothing is subscribed.
func (s *session) detach() {
	if s.movementSub == nil {
		return
	}
	s.movementSub.Unsubscribe()
	s.movementSub = nil
}
