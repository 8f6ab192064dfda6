package capture

// MovementListener receives relative pointer movement while the pointer is captured.
// Implementations must be O(1) and must not allocate; they run once per platform movement event.
type MovementListener func(dx, dy float64)

// Subscription is a handle to a registered listener.
type Subscription interface {
	// Unsubscribe detaches the listener. Calling it more than once is a no-op.
	Unsubscribe()
}

// Platform is the pointer-capture capability of a render surface.
// Notifications may be delivered asynchronously, but always on the host event loop thread.
type Platform interface {
	// Supported reports whether the platform can capture the pointer at all.
	// Sessions evaluate it once at construction.
	//
	// Returns:
	//   - bool: true if pointer capture is available
	Supported() bool

	// RequestCapture asks the platform to capture the pointer.
	// The result arrives later through the capture-state subscription.
	RequestCapture()

	// ReleaseCapture asks the platform to release the pointer. Safe to call when not captured.
	ReleaseCapture()

	// SubscribeMovement registers a listener for relative movement deltas.
	//
	// Parameters:
	//   - listener: the function receiving (dx, dy)
	//
	// Returns:
	//   - Subscription: handle used to detach the listener
	SubscribeMovement(listener MovementListener) Subscription

	// SubscribeCaptureState registers capture change and capture error callbacks.
	//
	// Parameters:
	//   - onChanged: receives true when the pointer is now captured by this surface, false otherwise
	//   - onError: receives capture request failures
	//
	// Returns:
	//   - Subscription: handle used to detach both callbacks
	SubscribeCaptureState(onChanged func(captured bool), onError func(err error)) Subscription
}
