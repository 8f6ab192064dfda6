package engine

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-look/engine/capture"
	"github.com/Carmen-Shannon/oxy-look/engine/config"
	"github.com/Carmen-Shannon/oxy-look/engine/logger"
	"github.com/Carmen-Shannon/oxy-look/engine/profiler"
	"github.com/Carmen-Shannon/oxy-look/engine/renderer"
	"github.com/Carmen-Shannon/oxy-look/engine/scene"
	"github.com/Carmen-Shannon/oxy-look/engine/window"
)

// MovementSource is anything that fans out relative movement deltas, such as window.CapturePlatform.
type MovementSource interface {
	SubscribeMovement(listener capture.MovementListener) capture.Subscription
}

// engine implements the Engine interface.
// Every frame runs on the window thread; only config reload parsing happens elsewhere.
type engine struct {
	log *slog.Logger

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	movement    MovementSource
	movementSub capture.Subscription

	renderCallback func(deltaTime float64)

	scenes    map[int]scene.Scene
	sceneKeys []int // ascending; rebuilt on AddScene/RemoveScene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	sleep            func(time.Duration)

	configPath     string
	configWatcher  *config.Watcher
	configPool     worker.DynamicWorkerPool
	configDone     chan struct{} // closed when watchConfig returns
	configReloads  chan config.Config
	configCallback func(cfg config.Config)
	reloadID       int
}

// Engine is the main entry point for the engine.
// It owns the frame loop: config reloads, scene behaviors, rendering and profiling.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when none was configured
	Window() window.Window

	// Renderer returns the renderer drawn each frame, or nil.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called each frame after scene behaviors ran
	// and before the renderer draws.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float64))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetConfigCallback registers the function called on the window thread with each
	// successfully reloaded configuration, after the engine applied its own settings.
	//
	// Parameters:
	//   - callback: function receiving the new configuration
	SetConfigCallback(callback func(cfg config.Config))

	// AddScene registers a scene at the given z-index key.
	// Scenes are ticked in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining tick order (lower ticks first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the frame loop on the calling thread (blocks until the window closes or Quit is called).
	Run()

	// Quit signals the engine to stop. The window is closed on the next frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, scenes, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		log:           logger.Component("engine"),
		quitChannel:   make(chan struct{}),
		scenes:        make(map[int]scene.Scene),
		profiler:      profiler.NewProfiler(),
		sleep:         time.Sleep,
		configReloads: make(chan config.Config, 1),
	}

	for _, opt := range options {
		opt(e)
	}
	e.sortScenes()

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(width, height)
			}
		})
	}

	if e.movement != nil {
		e.movementSub = e.movement.SubscribeMovement(func(dx, dy float64) {
			if e.profilingEnabled {
				e.profiler.CountEvent()
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	if e.window == nil {
		e.log.Error("run called without a window")
		return
	}

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		e.frame(time.Now())
	})
	e.startConfigWatch()

	e.window.ProcessMessages()
	e.shutdown()
}

// Quit signals the engine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// frame runs one loop iteration: reloads, scene behaviors, render callback, draw, profiler, frame cap.
// Returns false once the engine has been asked to quit.
func (e *engine) frame(now time.Time) bool {
	select {
	case <-e.quitChannel:
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				e.log.Warn("close window", "error", err)
			}
		}
		return false
	default:
	}

	dt := now.Sub(e.lastFrame).Seconds()
	e.lastFrame = now

	e.applyReloads()

	for _, k := range e.sceneKeys {
		if s := e.scenes[k]; s.Active() {
			s.Tick()
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.renderer != nil {
		if err := e.renderer.Draw(); err != nil {
			e.log.Debug("frame skipped", "error", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			e.sleep(remaining)
		}
	}
	return true
}

// shutdown stops background work after the window loop exits.
func (e *engine) shutdown() {
	e.signalQuit()
	if e.window != nil {
		if err := e.window.Close(); err != nil && !errors.Is(err, window.ErrWindowNotInitialized) {
			e.log.Warn("close window", "error", err)
		}
	}
	if e.configWatcher != nil {
		if err := e.configWatcher.Close(); err != nil {
			e.log.Warn("close config watcher", "error", err)
		}
	}
	if e.configDone != nil {
		<-e.configDone
	}
	if e.configPool != nil {
		e.configPool.Stop()
		e.configPool = nil
	}
	if e.movementSub != nil {
		e.movementSub.Unsubscribe()
		e.movementSub = nil
	}
}

// startConfigWatch begins watching the config file when WithConfigWatch was given.
// Reloads are parsed on the worker pool and handed back through configReloads.
func (e *engine) startConfigWatch() {
	if e.configPath == "" {
		return
	}

	w, err := config.NewWatcher(e.configPath)
	if err != nil {
		e.log.Warn("config hot reload disabled", "path", e.configPath, "error", err)
		return
	}
	e.configWatcher = w
	e.configPool = worker.NewDynamicWorkerPool(1, 16, time.Second)
	e.configDone = make(chan struct{})
	e.log.Info("watching config", "path", w.Path())

	go e.watchConfig(w, e.configDone)
}

// watchConfig forwards file change events to the worker pool until quit or the watcher closes.
func (e *engine) watchConfig(w *config.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-e.quitChannel:
			return
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			e.submitReload(path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			e.log.Warn("config watcher", "error", err)
		}
	}
}

// submitReload parses path on the pool; a valid result replaces any reload not yet applied.
func (e *engine) submitReload(path string) {
	e.reloadID++
	e.configPool.SubmitTask(worker.Task{
		ID: e.reloadID,
		Do: func() (any, error) {
			cfg, err := config.Load(path)
			if err != nil {
				e.log.Warn("config reload rejected", "error", err)
				return nil, err
			}
			e.queueReload(cfg)
			return cfg, nil
		},
	})
}

// queueReload stores cfg for the next frame, dropping an older pending one.
func (e *engine) queueReload(cfg config.Config) {
	select {
	case e.configReloads <- cfg:
	default:
		select {
		case <-e.configReloads:
		default:
		}
		select {
		case e.configReloads <- cfg:
		default:
		}
	}
}

// applyReloads applies at most one pending configuration on the window thread.
func (e *engine) applyReloads() {
	select {
	case cfg := <-e.configReloads:
		e.SetRenderFrameLimit(cfg.Engine.FrameLimit)
		e.profilingEnabled = cfg.Engine.Profiling
		logger.SetLevel(cfg.Log.Level)
		e.log.Info("config reloaded",
			"look_enabled", cfg.MouseLook.Enabled,
			"look_sensitivity", cfg.MouseLook.Sensitivity,
			"frame_limit", cfg.Engine.FrameLimit,
		)
		if e.configCallback != nil {
			e.configCallback(cfg)
		}
	default:
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called each frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float64)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) SetConfigCallback(callback func(cfg config.Config)) {
	e.configCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
	e.sortScenes()
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
	e.sortScenes()
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// sortScenes rebuilds sceneKeys so frames iterate scenes without allocating.
func (e *engine) sortScenes() {
	e.sceneKeys = e.sceneKeys[:0]
	for k := range e.scenes {
		e.sceneKeys = append(e.sceneKeys, k)
	}
	sort.Ints(e.sceneKeys)
}

// frameDuration converts a frame rate cap to a minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
