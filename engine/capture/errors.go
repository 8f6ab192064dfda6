package capture

import "errors"

var (
	// ErrUnsupportedPlatform is logged when the platform has no pointer-capture capability.
	// The session stays inert; it is never returned to callers.
	ErrUnsupportedPlatform = errors.New("pointer capture not supported")

	// ErrCaptureDenied wraps errors reported by the platform when a capture request fails.
	ErrCaptureDenied = errors.New("pointer capture denied")

	// ErrSessionClosed is logged when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("capture session closed")
)
