package mouselook

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-look/common"
	"github.com/Carmen-Shannon/oxy-look/engine/capture"
	"github.com/Carmen-Shannon/oxy-look/engine/game_object"
	"github.com/Carmen-Shannon/oxy-look/engine/logger"
	"github.com/Carmen-Shannon/oxy-look/engine/scene"
)

const floatTolerance = 1e-9

type handle struct {
	fn   func()
	done bool
}

func (h *handle) Unsubscribe() {
	if h.done {
		return
	}
	h.done = true
	h.fn()
}

// surface is a scripted render surface: it grants or denies capture on request
// and delivers notifications only when the test flushes them, like an event loop.
type surface struct {
	supported bool
	deny      bool

	captured bool
	pending  []func()

	movement  map[int]capture.MovementListener
	activate  map[int]func()
	onChanged map[int]func(bool)
	onError   map[int]func(error)
	nextID    int

	movementSubs int
}

func newSurface(supported bool) *surface {
	return &surface{
		supported: supported,
		movement:  make(map[int]capture.MovementListener),
		activate:  make(map[int]func()),
		onChanged: make(map[int]func(bool)),
		onError:   make(map[int]func(error)),
	}
}

func (s *surface) Supported() bool { return s.supported }

func (s *surface) RequestCapture() {
	if s.deny {
		s.pending = append(s.pending, func() {
			for _, cb := range s.onError {
				cb(errors.New("denied"))
			}
		})
		return
	}
	s.setCaptured(true)
}

func (s *surface) ReleaseCapture() {
	s.setCaptured(false)
}

func (s *surface) setCaptured(captured bool) {
	if s.captured == captured {
		return
	}
	s.captured = captured
	s.pending = append(s.pending, func() {
		for _, cb := range s.onChanged {
			cb(captured)
		}
	})
}

func (s *surface) id() int {
	s.nextID++
	return s.nextID
}

func (s *surface) SubscribeMovement(l capture.MovementListener) capture.Subscription {
	id := s.id()
	s.movementSubs++
	s.movement[id] = l
	return &handle{fn: func() { delete(s.movement, id) }}
}

func (s *surface) SubscribeCaptureState(onChanged func(bool), onError func(error)) capture.Subscription {
	id := s.id()
	s.onChanged[id] = onChanged
	s.onError[id] = onError
	return &handle{fn: func() {
		delete(s.onChanged, id)
		delete(s.onError, id)
	}}
}

func (s *surface) SubscribeActivate(fn func()) capture.Subscription {
	id := s.id()
	s.activate[id] = fn
	return &handle{fn: func() { delete(s.activate, id) }}
}

// click fires the activation gesture.
func (s *surface) click() {
	for _, fn := range s.activate {
		fn()
	}
}

// flush delivers queued notifications.
func (s *surface) flush() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (s *surface) move(dx, dy float64) {
	for _, l := range s.movement {
		l(dx, dy)
	}
}

func newLook(t *testing.T, surf *surface, options ...MouseLookBuilderOption) (MouseLook, game_object.GameObject, scene.Scene) {
	t.Helper()
	obj := game_object.NewGameObject(game_object.WithRotation(0, 0, 12))
	sc := scene.NewScene("test", scene.WithObjects(obj), scene.WithActive(true))
	options = append([]MouseLookBuilderOption{WithLogger(logger.Discard())}, options...)
	var platform capture.Platform
	if surf != nil {
		platform = surf
	}
	look := NewMouseLook(obj, platform, options...)
	look.Attach(sc)
	return look, obj, sc
}

func TestClickCapturesAndMovementRotates(t *testing.T) {
	surf := newSurface(true)
	look, obj, sc := newLook(t, surf)

	surf.click()
	if look.Session().Captured() {
		t.Fatal("capture must wait for the platform notification")
	}
	surf.flush()
	if !look.Session().Captured() {
		t.Fatal("expected captured after notification")
	}

	surf.move(100, 0)
	sc.Tick()

	rx, ry, rz := obj.Rotation()
	if !common.ApproxEqual(ry, -11.459155902616464, floatTolerance) {
		t.Errorf("yaw degrees: got %v, want about -11.46", ry)
	}
	if rx != 0 {
		t.Errorf("pitch degrees: got %v, want 0", rx)
	}
	if rz != 12 {
		t.Errorf("roll must be untouched, got %v", rz)
	}
}

func TestSensitivityTwoClampsPitch(t *testing.T) {
	surf := newSurface(true)
	_, obj, sc := newLook(t, surf, WithSensitivity(2))

	surf.click()
	surf.flush()
	surf.move(0, 1000)
	sc.Tick()

	rx, _, _ := obj.Rotation()
	if !common.ApproxEqual(rx, -90, floatTolerance) {
		t.Fatalf("pitch degrees: got %v, want -90", rx)
	}
}

func TestUnsupportedPlatformNeverSubscribes(t *testing.T) {
	surf := newSurface(false)
	look, obj, sc := newLook(t, surf)

	surf.click()
	look.Session().RequestCapture()
	surf.flush()
	surf.move(50, 50)
	sc.Tick()

	if len(surf.activate) != 0 {
		t.Fatal("unsupported component must not listen for activation gestures")
	}
	if surf.movementSubs != 0 {
		t.Fatalf("no movement listener may be subscribed, got %d", surf.movementSubs)
	}
	if rx, ry, _ := obj.Rotation(); rx != 0 || ry != 0 {
		t.Fatalf("unsupported component rotated the object: (%v, %v)", rx, ry)
	}
}

func TestUnsupportedPlatformKeepsHostRotation(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithRotation(30, 45, 0))
	sc := scene.NewScene("test", scene.WithObjects(obj), scene.WithActive(true))
	look := NewMouseLook(obj, newSurface(false), WithLogger(logger.Discard()))
	look.Attach(sc)

	sc.Tick()

	if n := sc.Behaviors(); n != 0 {
		t.Fatalf("unsupported component must not register a behavior, got %d", n)
	}
	if rx, ry, _ := obj.Rotation(); rx != 30 || ry != 45 {
		t.Fatalf("unsupported component overwrote the rotation: (%v, %v), want (30, 45)", rx, ry)
	}

	look.Remove()
	if sc.Behaviors() != 0 {
		t.Fatal("Remove of an inactive component must leave the scene untouched")
	}
}

func TestNilPlatformIsInert(t *testing.T) {
	look, obj, sc := newLook(t, nil)
	look.Session().RequestCapture()
	sc.Tick()
	if look.Session().Supported() {
		t.Fatal("nil platform must be unsupported")
	}
	if rx, ry, _ := obj.Rotation(); rx != 0 || ry != 0 {
		t.Fatal("nil platform component must not rotate")
	}
}

func TestReleaseStopsRotation(t *testing.T) {
	surf := newSurface(true)
	look, _, _ := newLook(t, surf)

	surf.click()
	surf.flush()
	surf.move(10, 10)
	pitch, yaw := look.Accumulator().Pitch(), look.Accumulator().Yaw()

	look.Session().ReleaseCapture()
	surf.move(500, 500)
	surf.flush()
	surf.move(500, 500)

	if look.Accumulator().Pitch() != pitch || look.Accumulator().Yaw() != yaw {
		t.Fatal("movement after release must not change the angles")
	}
}

func TestMovementIgnoredWhenNotCaptured(t *testing.T) {
	surf := newSurface(true)
	look, _, _ := newLook(t, surf)

	// Nothing is subscribed before capture, so even a direct broadcast is a no-op.
	surf.move(100, 100)
	if look.Accumulator().Pitch() != 0 || look.Accumulator().Yaw() != 0 {
		t.Fatal("uncaptured movement must not rotate")
	}
}

func TestDisabledIgnoresMovementAndFreezesOutput(t *testing.T) {
	surf := newSurface(true)
	look, obj, sc := newLook(t, surf)

	surf.click()
	surf.flush()
	surf.move(20, 20)
	sc.Tick()
	rx, ry, _ := obj.Rotation()

	look.Update(Settings{Enabled: false, Sensitivity: 1})
	surf.move(300, -300)
	for i := 0; i < 3; i++ {
		sc.Tick()
	}

	gx, gy, _ := obj.Rotation()
	if gx != rx || gy != ry {
		t.Fatalf("disabled component changed output: (%v, %v) -> (%v, %v)", rx, ry, gx, gy)
	}

	look.Update(Settings{Enabled: true, Sensitivity: 1})
	surf.move(300, 0)
	sc.Tick()
	if _, gy, _ := obj.Rotation(); gy == ry {
		t.Fatal("re-enabled component should rotate again")
	}
}

func TestDeniedCaptureStaysReleased(t *testing.T) {
	surf := newSurface(true)
	surf.deny = true
	look, _, _ := newLook(t, surf)

	surf.click()
	surf.flush()

	if look.Session().Captured() {
		t.Fatal("denied capture must leave the session released")
	}
	if !errors.Is(look.Session().LastError(), capture.ErrCaptureDenied) {
		t.Fatalf("expected ErrCaptureDenied, got %v", look.Session().LastError())
	}
	if surf.movementSubs != 0 {
		t.Fatal("denied capture must not subscribe movement")
	}
}

func TestCaptureLossByPlatform(t *testing.T) {
	surf := newSurface(true)
	look, _, _ := newLook(t, surf)

	surf.click()
	surf.flush()
	// Platform drops capture on its own, for example on focus loss.
	surf.setCaptured(false)
	surf.flush()

	if look.Session().Captured() {
		t.Fatal("expected capture lost")
	}
	if len(surf.movement) != 0 {
		t.Fatal("movement listener must be removed on capture loss")
	}

	surf.click()
	surf.flush()
	if !look.Session().Captured() || len(surf.movement) != 1 {
		t.Fatal("expected recapture with a single listener")
	}
}

func TestRemoveTearsDown(t *testing.T) {
	surf := newSurface(true)
	look, _, sc := newLook(t, surf)

	surf.click()
	surf.flush()
	look.Remove()
	look.Remove()
	surf.flush()

	if sc.Behaviors() != 0 {
		t.Fatal("component should be detached from the scene")
	}
	if surf.captured {
		t.Fatal("pointer should be released on removal")
	}
	if len(surf.movement) != 0 || len(surf.activate) != 0 || len(surf.onChanged) != 0 {
		t.Fatal("all platform subscriptions should be dropped")
	}

	surf.click()
	surf.flush()
	if look.Session().Captured() {
		t.Fatal("removed component must not recapture")
	}
}

func TestAttachMovesBetweenScenes(t *testing.T) {
	surf := newSurface(true)
	look, _, first := newLook(t, surf)
	second := scene.NewScene("second")

	look.Attach(second)
	look.Attach(second)

	if first.Behaviors() != 0 || second.Behaviors() != 1 {
		t.Fatalf("expected component only in second scene, got %d and %d", first.Behaviors(), second.Behaviors())
	}
	if len(surf.activate) != 1 {
		t.Fatalf("expected one activation subscription, got %d", len(surf.activate))
	}
}

func TestZeroSensitivityKeepsCapture(t *testing.T) {
	surf := newSurface(true)
	look, _, _ := newLook(t, surf, WithSettings(Settings{Enabled: true, Sensitivity: 0}))

	surf.click()
	surf.flush()
	surf.move(1000, 1000)

	if !look.Session().Captured() {
		t.Fatal("zero sensitivity must keep capture active")
	}
	if look.Accumulator().Yaw() != 0 || look.Accumulator().Pitch() != 0 {
		t.Fatal("zero sensitivity must freeze rotation")
	}
}

func TestPitchStaysClampedThroughComponent(t *testing.T) {
	surf := newSurface(true)
	look, _, _ := newLook(t, surf, WithSensitivity(5))

	surf.click()
	surf.flush()
	for i := 0; i < 200; i++ {
		surf.move(float64(i%7)-3, float64(i%11)*40-200)
		if p := look.Accumulator().Pitch(); math.Abs(p) > math.Pi/2 {
			t.Fatalf("pitch escaped clamp: %v", p)
		}
	}
}

func TestNewMouseLookPanicsWithoutObject(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil object")
		}
	}()
	NewMouseLook(nil, newSurface(true))
}
