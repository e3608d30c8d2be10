package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/Carmen-Shannon/oxy-nav/engine/profiler"
	"github.com/Carmen-Shannon/oxy-nav/engine/renderer"
	"github.com/Carmen-Shannon/oxy-nav/engine/window"
	"github.com/sirupsen/logrus"
)

// maxTicksPerFrame bounds catch-up after a stall so a long pause does not replay
// hundreds of ticks in a single frame.
const maxTicksPerFrame = 8

// engine implements the Engine interface.
// Ticks and frames run on the window thread, the same thread that delivers input
// callbacks, so controller ticks never overlap event handling.
type engine struct {
	running  bool
	quitOnce sync.Once

	window   window.Window
	renderer renderer.Renderer
	logger   logrus.FieldLogger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	viewports map[int]camera.Camera

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now         func() time.Time
	lastTick    time.Time
	lastRender  time.Time
	accumulator time.Duration
}

// Engine is the main entry point for the engine.
// It drives fixed-rate navigation ticks, per-frame rendering and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Every viewport controller advances once per tick.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after each engine tick.
	//
	// Parameters:
	//   - callback: function receiving the fixed tick duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddViewport registers a camera at the given z-index key.
	// Viewports tick in ascending key order; the lowest key is the one rendered.
	//
	// Parameters:
	//   - key: the z-index (lower ticks and renders first)
	//   - cam: the camera, with its navigation controller attached
	AddViewport(key int, cam camera.Camera)

	// RemoveViewport removes the viewport at the given key.
	//
	// Parameters:
	//   - key: the z-index of the viewport to remove
	RemoveViewport(key int)

	// Viewport retrieves the camera registered at the given key, or nil.
	//
	// Parameters:
	//   - key: the z-index of the viewport to retrieve
	//
	// Returns:
	//   - camera.Camera: the camera at the key, or nil if not found
	Viewport(key int) camera.Camera

	// Viewports returns a copy of all registered viewports keyed by z-index.
	//
	// Returns:
	//   - map[int]camera.Camera: a copy of the viewports map
	Viewports() map[int]camera.Camera

	// Run starts the main loop on the calling goroutine (blocks until the window closes).
	Run()

	// Quit asks the main loop to stop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		viewports:        make(map[int]camera.Camera),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logrus.StandardLogger()
	}
	e.profiler.SetLogger(e.logger)

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Error("engine has no window to run")
		return
	}
	e.running = true
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	e.running = false
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// frame runs the fixed-step ticks that are due, then renders once.
// Recovers from panics so a faulty callback shuts the engine down cleanly.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", r).Error("frame recovered from panic")
			e.Quit()
		}
	}()

	now := e.now()
	e.advance(now)

	if e.lastRender.IsZero() {
		e.lastRender = now
	}
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	if e.renderer != nil {
		if cam := e.primaryViewport(); cam != nil {
			if err := e.renderer.Render(cam); err != nil {
				e.logger.WithError(err).Error("render failed")
			}
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// advance runs every tick whose time has come since the previous call.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - int: number of ticks executed
func (e *engine) advance(now time.Time) int {
	if e.lastTick.IsZero() {
		e.lastTick = now
		return 0
	}
	e.accumulator += now.Sub(e.lastTick)
	e.lastTick = now

	ticks := 0
	for e.accumulator >= e.engineTickRate {
		e.accumulator -= e.engineTickRate
		e.tick()
		ticks++
		if ticks >= maxTicksPerFrame {
			e.accumulator = 0
			break
		}
	}
	return ticks
}

// tick advances every viewport controller once, refreshes camera matrices,
// then fires the tick callback.
func (e *engine) tick() {
	for _, k := range e.sortedKeys() {
		cam := e.viewports[k]
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Tick()
		}
		cam.Update()
	}
	if e.tickCallback != nil {
		e.tickCallback(float32(e.engineTickRate.Seconds()))
	}
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	for _, cam := range e.viewports {
		cam.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) primaryViewport() camera.Camera {
	keys := e.sortedKeys()
	if len(keys) == 0 {
		return nil
	}
	return e.viewports[keys[0]]
}

func (e *engine) sortedKeys() []int {
	keys := make([]int, 0, len(e.viewports))
	for k := range e.viewports {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// Takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddViewport(key int, cam camera.Camera) {
	e.viewports[key] = cam
}

func (e *engine) RemoveViewport(key int) {
	delete(e.viewports, key)
}

func (e *engine) Viewport(key int) camera.Camera {
	return e.viewports[key]
}

func (e *engine) Viewports() map[int]camera.Camera {
	cp := make(map[int]camera.Camera, len(e.viewports))
	for k, v := range e.viewports {
		cp[k] = v
	}
	return cp
}
