// Package mouselook binds pointer capture and orientation accumulation to a game object.
//
// A MouseLook is attached to a scene as a behavior. A user gesture on the render
// surface requests capture; while captured, relative pointer movement rotates the
// object, and every frame the accumulated pitch/yaw is written to the object's
// rotation in degrees.
package mouselook

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-look/engine/capture"
	"github.com/Carmen-Shannon/oxy-look/engine/game_object"
	"github.com/Carmen-Shannon/oxy-look/engine/logger"
	"github.com/Carmen-Shannon/oxy-look/engine/orientation"
	"github.com/Carmen-Shannon/oxy-look/engine/scene"
)

// Settings are the user-facing options of a MouseLook.
type Settings struct {
	// Enabled turns movement processing and orientation output on or off.
	Enabled bool
	// Sensitivity scales the angular rate linearly. Zero freezes rotation.
	Sensitivity float64
}

// DefaultSettings returns enabled mouse look at sensitivity 1.
func DefaultSettings() Settings {
	return Settings{Enabled: true, Sensitivity: 1}
}

// Trigger is the user-gesture source that may start a capture (for example a click on the surface).
type Trigger interface {
	// SubscribeActivate registers a callback fired on each activation gesture.
	//
	// Parameters:
	//   - onActivate: the function to call
	//
	// Returns:
	//   - capture.Subscription: handle used to detach the callback
	SubscribeActivate(onActivate func()) capture.Subscription
}

// MouseLook controls a game object's pitch and yaw with the captured pointer.
type MouseLook interface {
	scene.Behavior

	// Attach registers the component with a scene and starts listening for activation gestures.
	// Attaching an already attached component moves it to the new scene.
	//
	// Parameters:
	//   - s: the host scene
	Attach(s scene.Scene)

	// Remove releases capture, drops every subscription and detaches from the scene.
	// Safe to call multiple times.
	Remove()

	// Update applies new settings.
	//
	// Parameters:
	//   - settings: the settings to apply
	Update(settings Settings)

	// Settings returns the current settings.
	Settings() Settings

	// Object returns the controlled game object.
	Object() game_object.GameObject

	// Session returns the capture session.
	Session() capture.Session

	// Accumulator returns the orientation accumulator.
	Accumulator() orientation.Accumulator
}

type mouseLook struct {
	obj      game_object.GameObject
	platform capture.Platform
	trigger  Trigger
	log      *slog.Logger

	settings Settings

	session     capture.Session
	accumulator orientation.Accumulator

	host       scene.Scene
	triggerSub capture.Subscription
	removed    bool
}

var _ MouseLook = &mouseLook{}

// NewMouseLook creates a mouse-look component for an object.
// The object is the orientation sink; platform may be nil, which leaves the component inert.
// If the platform also implements Trigger it is used for activation gestures unless
// WithTrigger overrides it. Panics if obj is nil.
//
// Parameters:
//   - obj: the object to rotate (must not be nil)
//   - platform: the pointer-capture capability of the render surface
//   - options: functional options to configure the component
//
// Returns:
//   - MouseLook: the newly created component
func NewMouseLook(obj game_object.GameObject, platform capture.Platform, options ...MouseLookBuilderOption) MouseLook {
	if obj == nil {
		panic("mouselook: NewMouseLook requires a non-nil GameObject")
	}

	m := &mouseLook{
		obj:      obj,
		platform: platform,
		settings: DefaultSettings(),
	}
	if t, ok := platform.(Trigger); ok {
		m.trigger = t
	}
	for _, option := range options {
		option(m)
	}
	if m.log == nil {
		m.log = logger.Component("mouselook")
	}
	m.log = m.log.With("object", obj.ID())

	m.accumulator = orientation.NewAccumulator(
		orientation.WithSink(obj),
		orientation.WithEnabled(m.settings.Enabled),
		orientation.WithSensitivity(m.settings.Sensitivity),
	)
	m.session = capture.NewSession(platform, m.accumulator.ApplyMovementDelta, capture.WithLogger(m.log))
	return m
}

func (m *mouseLook) Attach(s scene.Scene) {
	if m.removed || s == nil {
		return
	}
	// Unsupported components stay off the scene so the object's rotation is left alone.
	if !m.session.Supported() {
		m.log.Debug("mouse look inactive, not attached", "scene", s.Name())
		return
	}
	if m.host != nil && m.host != s {
		m.host.RemoveBehavior(m)
	}
	m.host = s
	s.AddBehavior(m)

	if m.triggerSub == nil && m.trigger != nil {
		m.triggerSub = m.trigger.SubscribeActivate(m.session.RequestCapture)
	}
	m.log.Debug("mouse look attached", "scene", s.Name())
}

func (m *mouseLook) Remove() {
	if m.removed {
		return
	}
	m.removed = true

	m.session.Close()
	if m.triggerSub != nil {
		m.triggerSub.Unsubscribe()
		m.triggerSub = nil
	}
	if m.host != nil {
		m.host.RemoveBehavior(m)
		m.host = nil
	}
	m.log.Debug("mouse look removed")
}

func (m *mouseLook) Tick() {
	m.accumulator.Tick()
}

func (m *mouseLook) Update(settings Settings) {
	if settings == m.settings {
		return
	}
	m.settings = settings
	m.accumulator.SetEnabled(settings.Enabled)
	m.accumulator.SetSensitivity(settings.Sensitivity)
	m.log.Debug("mouse look updated", "enabled", settings.Enabled, "sensitivity", settings.Sensitivity)
}

func (m *mouseLook) Settings() Settings {
	return m.settings
}

func (m *mouseLook) Object() game_object.GameObject {
	return m.obj
}

func (m *mouseLook) Session() capture.Session {
	return m.session
}

func (m *mouseLook) Accumulator() orientation.Accumulator {
	return m.accumulator
}
