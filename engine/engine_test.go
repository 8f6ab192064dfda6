package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-look/common"
	"github.com/Carmen-Shannon/oxy-look/engine/capture"
	"github.com/Carmen-Shannon/oxy-look/engine/config"
	"github.com/Carmen-Shannon/oxy-look/engine/logger"
	"github.com/Carmen-Shannon/oxy-look/engine/renderer"
	"github.com/Carmen-Shannon/oxy-look/engine/scene"
)

type recordingBehavior struct {
	name string
	log  *[]string
}

func (b *recordingBehavior) Tick() { *b.log = append(*b.log, b.name) }

type fakeRenderer struct {
	draws int
	sizes [][2]int
	o     common.Orientation
}

var _ renderer.Renderer = &fakeRenderer{}

func (r *fakeRenderer) SetOrientation(o common.Orientation)      { r.o = o }
func (r *fakeRenderer) Orientation() common.Orientation          { return r.o }
func (r *fakeRenderer) Resize(width, height int)                 { r.sizes = append(r.sizes, [2]int{width, height}) }
func (r *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}
func (r *fakeRenderer) Draw() error                              { r.draws++; return nil }
func (r *fakeRenderer) Release()                                 {}

type fakeSubscription struct {
	unsubscribed bool
}

func (s *fakeSubscription) Unsubscribe() { s.unsubscribed = true }

type fakeMovementSource struct {
	listener capture.MovementListener
	sub      *fakeSubscription
}

func (f *fakeMovementSource) SubscribeMovement(listener capture.MovementListener) capture.Subscription {
	f.listener = listener
	f.sub = &fakeSubscription{}
	return f.sub
}

func newTestEngine(options ...EngineBuilderOption) *engine {
	options = append([]EngineBuilderOption{WithLogger(logger.Discard())}, options...)
	e := NewEngine(options...).(*engine)
	e.sleep = func(time.Duration) {}
	return e
}

func sceneWith(name string, active bool, log *[]string) scene.Scene {
	return scene.NewScene(name,
		scene.WithActive(active),
		scene.WithBehaviors(&recordingBehavior{name: name, log: log}),
	)
}

func TestFrameTicksActiveScenesInKeyOrder(t *testing.T) {
	var log []string
	e := newTestEngine(
		WithScene(10, sceneWith("ten", true, &log)),
		WithScene(-5, sceneWith("minus-five", true, &log)),
		WithScene(3, sceneWith("three", false, &log)),
	)
	e.AddScene(7, sceneWith("seven", true, &log))

	if !e.frame(time.Now()) {
		t.Fatal("frame should run before Quit")
	}

	want := []string{"minus-five", "seven", "ten"}
	if len(log) != len(want) {
		t.Fatalf("ticked %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ticked %v, want %v", log, want)
		}
	}

	log = log[:0]
	e.RemoveScene(7)
	e.frame(time.Now())
	if len(log) != 2 {
		t.Errorf("after RemoveScene ticked %v, want two scenes", log)
	}
}

func TestFrameOrder(t *testing.T) {
	var log []string
	r := &fakeRenderer{}
	e := newTestEngine(WithRenderer(r), WithScene(0, sceneWith("scene", true, &log)))

	start := time.Unix(100, 0)
	e.lastFrame = start
	var gotDT float64
	e.SetRenderCallback(func(dt float64) {
		gotDT = dt
		if len(log) != 1 {
			t.Error("render callback should run after scene behaviors")
		}
		if r.draws != 0 {
			t.Error("render callback should run before the renderer draws")
		}
	})

	e.frame(start.Add(16 * time.Millisecond))

	if !common.ApproxEqual(gotDT, 0.016, 1e-9) {
		t.Errorf("dt = %v, want 0.016", gotDT)
	}
	if r.draws != 1 {
		t.Errorf("draws = %d, want 1", r.draws)
	}
}

func TestFrameLimitSleepsForRemainder(t *testing.T) {
	e := newTestEngine(WithRenderFrameLimit(10))
	var slept time.Duration
	e.sleep = func(d time.Duration) { slept = d }

	e.frame(time.Now())

	if slept <= 0 || slept > 100*time.Millisecond {
		t.Errorf("slept %v, want (0, 100ms]", slept)
	}

	e.SetRenderFrameLimit(0)
	slept = 0
	e.frame(time.Now())
	if slept != 0 {
		t.Errorf("uncapped frame slept %v", slept)
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, time.Second},
		{144, time.Duration(float64(time.Second) / 144)},
	}
	for _, tt := range tests {
		if got := frameDuration(tt.fps); got != tt.want {
			t.Errorf("frameDuration(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestQuitStopsFrames(t *testing.T) {
	var log []string
	e := newTestEngine(WithScene(0, sceneWith("scene", true, &log)))

	e.Quit()
	e.Quit()

	if e.frame(time.Now()) {
		t.Error("frame should report false after Quit")
	}
	if len(log) != 0 {
		t.Errorf("scenes ticked after Quit: %v", log)
	}
}

func TestRunWithoutWindowReturns(t *testing.T) {
	e := newTestEngine()
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run without a window should return immediately")
	}
}

func TestReloadAppliedOnNextFrame(t *testing.T) {
	e := newTestEngine()

	var got []config.Config
	e.SetConfigCallback(func(cfg config.Config) { got = append(got, cfg) })

	older := config.Default()
	older.MouseLook.Sensitivity = 2
	newer := config.Default()
	newer.MouseLook.Sensitivity = 3
	newer.Engine.FrameLimit = 30
	newer.Engine.Profiling = true

	e.queueReload(older)
	e.queueReload(newer)
	if len(got) != 0 {
		t.Fatal("reloads must not be applied outside the frame")
	}

	e.frame(time.Now())

	if len(got) != 1 || got[0].MouseLook.Sensitivity != 3 {
		t.Fatalf("callback got %+v, want only the newest reload", got)
	}
	if e.renderFrameLimit != frameDuration(30) {
		t.Errorf("renderFrameLimit = %v, want %v", e.renderFrameLimit, frameDuration(30))
	}
	if !e.profilingEnabled {
		t.Error("profiling should follow the reloaded config")
	}

	e.frame(time.Now())
	if len(got) != 1 {
		t.Errorf("callback ran %d times, want 1", len(got))
	}
}

func TestReloadAppliesLogLevel(t *testing.T) {
	e := newTestEngine()
	t.Cleanup(func() { logger.SetLevel("info") })
	logger.SetLevel("info")

	cfg := config.Default()
	cfg.Log.Level = "debug"
	e.queueReload(cfg)
	e.frame(time.Now())

	if got := logger.Level(); got != slog.LevelDebug {
		t.Errorf("logger.Level() = %v, want debug", got)
	}
}

func TestSubmitReloadParsesOnPool(t *testing.T) {
	t.Setenv("OXY_LOOK_SENSITIVITY", "")
	os.Unsetenv("OXY_LOOK_SENSITIVITY")

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("mouse_look:\n  sensitivity: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine()
	e.configPool = worker.NewDynamicWorkerPool(1, 16, time.Second)
	t.Cleanup(e.shutdown)
	e.submitReload(good)

	select {
	case cfg := <-e.configReloads:
		if cfg.MouseLook.Sensitivity != 0.5 {
			t.Errorf("Sensitivity = %v, want 0.5", cfg.MouseLook.Sensitivity)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestInvalidReloadIsDropped(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("mouse_look:\n  sensitivity: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine()
	e.configPool = worker.NewDynamicWorkerPool(1, 16, time.Second)
	t.Cleanup(e.shutdown)
	e.submitReload(bad)

	select {
	case cfg := <-e.configReloads:
		t.Fatalf("invalid config was queued: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestShutdownStopsConfigWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(WithConfigWatch(path))
	e.startConfigWatch()
	if e.configPool == nil || e.configWatcher == nil {
		t.Fatal("WithConfigWatch should start a watcher and a worker pool")
	}
	done := e.configDone

	e.shutdown()

	if e.configPool != nil {
		t.Error("shutdown should stop and drop the worker pool")
	}
	select {
	case <-done:
	default:
		t.Error("the watch goroutine should have exited")
	}
	e.shutdown()
}

func TestAccessors(t *testing.T) {
	r := &fakeRenderer{}
	e := newTestEngine(WithRenderer(r))
	if e.Renderer() != r {
		t.Fatal("Renderer() should return the configured renderer")
	}
	if e.Window() != nil {
		t.Error("Window() should be nil when none was configured")
	}
}

func TestMovementSourceSubscription(t *testing.T) {
	src := &fakeMovementSource{}
	e := newTestEngine(WithMovementSource(src), WithProfiling(true))

	if src.listener == nil {
		t.Fatal("engine should subscribe to the movement source")
	}
	src.listener(1, 2)

	e.shutdown()
	if !src.sub.unsubscribed {
		t.Error("shutdown should unsubscribe from the movement source")
	}
	e.shutdown()
}

func TestScenesReturnsCopy(t *testing.T) {
	var log []string
	s := sceneWith("scene", true, &log)
	e := newTestEngine(WithScene(1, s))

	cp := e.Scenes()
	delete(cp, 1)
	if e.Scene(1) != s {
		t.Error("mutating Scenes() result should not affect the engine")
	}
}
