package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestEngine(t *testing.T, options ...EngineBuilderOption) *engine {
	t.Helper()
	logger, _ := test.NewNullLogger()
	e := NewEngine(append([]EngineBuilderOption{WithLogger(logger), WithTickRate(100)}, options...)...).(*engine)
	return e
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	e := newTestEngine(t)
	ticks := 0
	e.SetTickCallback(func(dt float32) {
		ticks++
		if dt < 0.0099 || dt > 0.0101 {
			t.Errorf("tick dt = %v, want 0.01", dt)
		}
	})

	base := time.Unix(0, 0)
	if n := e.advance(base); n != 0 {
		t.Fatalf("first advance ran %d ticks, want 0", n)
	}
	if n := e.advance(base.Add(25 * time.Millisecond)); n != 2 {
		t.Errorf("advance(+25ms) = %d ticks, want 2", n)
	}
	if n := e.advance(base.Add(30 * time.Millisecond)); n != 1 {
		t.Errorf("advance(+30ms) = %d ticks, want 1 using the 5ms remainder", n)
	}
	if n := e.advance(base.Add(31 * time.Millisecond)); n != 0 {
		t.Errorf("advance(+31ms) = %d ticks, want 0", n)
	}
	if ticks != 3 {
		t.Errorf("tick callback ran %d times, want 3", ticks)
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	e := newTestEngine(t)
	base := time.Unix(0, 0)
	e.advance(base)

	if n := e.advance(base.Add(5 * time.Second)); n != maxTicksPerFrame {
		t.Errorf("advance after stall = %d ticks, want %d", n, maxTicksPerFrame)
	}
	if n := e.advance(base.Add(5*time.Second + 5*time.Millisecond)); n != 0 {
		t.Errorf("backlog was not dropped: %d ticks", n)
	}
}

func TestTickDrivesViewportsInKeyOrder(t *testing.T) {
	var order []string
	observe := func(name string) camera.PoseObserver {
		return func(camera.PoseSnapshot) { order = append(order, name) }
	}
	logger, _ := test.NewNullLogger()
	top := camera.NewCameraController(camera.WithLogger(logger), camera.WithObserver(observe("top")))
	bottom := camera.NewCameraController(camera.WithLogger(logger), camera.WithObserver(observe("bottom")))

	e := newTestEngine(t,
		WithViewport(10, camera.NewCamera(camera.WithController(top))),
		WithViewport(-1, camera.NewCamera(camera.WithController(bottom))),
	)
	e.AddViewport(3, camera.NewCamera()) // no controller: skipped without error

	bottom.Input().KeyDown(common.KeyW)
	before := e.Viewport(-1).ViewMatrix()
	e.tick()

	if len(order) != 2 || order[0] != "bottom" || order[1] != "top" {
		t.Errorf("tick order = %v, want [bottom top]", order)
	}
	if e.Viewport(-1).ViewMatrix() == before {
		t.Error("camera matrices not refreshed after tick")
	}
	if e.primaryViewport() != e.Viewport(-1) {
		t.Error("primary viewport is not the lowest key")
	}
}

func TestViewportRegistry(t *testing.T) {
	e := newTestEngine(t)
	cam := camera.NewCamera()
	e.AddViewport(1, cam)

	snapshot := e.Viewports()
	delete(snapshot, 1)
	if e.Viewport(1) != cam {
		t.Error("mutating Viewports() copy affected the engine")
	}

	e.RemoveViewport(1)
	if e.Viewport(1) != nil || len(e.Viewports()) != 0 {
		t.Error("RemoveViewport left the camera registered")
	}
	if e.primaryViewport() != nil {
		t.Error("primary viewport of empty engine is not nil")
	}
}

func TestResizeUpdatesAspect(t *testing.T) {
	e := newTestEngine(t, WithViewport(0, camera.NewCamera()))
	e.resize(1600, 900)
	if got := e.Viewport(0).Aspect(); got < 1.777 || got > 1.778 {
		t.Errorf("aspect = %v, want 16/9", got)
	}
	e.resize(0, 900)
	if got := e.Viewport(0).Aspect(); got < 1.777 || got > 1.778 {
		t.Errorf("zero-width resize changed aspect to %v", got)
	}
}

func TestFrameRecoversFromPanic(t *testing.T) {
	e := newTestEngine(t)
	e.running = true
	e.SetRenderCallback(func(float32) { panic("boom") })

	e.frame()

	if e.running {
		t.Error("engine still running after a panicking frame")
	}
}

func TestTickRateSetters(t *testing.T) {
	e := newTestEngine(t)
	e.SetTickRate(0)
	if e.engineTickRate != time.Second/60 {
		t.Errorf("tick rate = %v, want 60Hz default", e.engineTickRate)
	}
	e.SetRenderFrameLimit(50)
	if e.renderFrameLimit != 20*time.Millisecond {
		t.Errorf("frame limit = %v, want 20ms", e.renderFrameLimit)
	}
	e.SetRenderFrameLimit(-1)
	if e.renderFrameLimit != 0 {
		t.Errorf("frame limit = %v, want uncapped", e.renderFrameLimit)
	}
}
