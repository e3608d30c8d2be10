package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeSource stands in for a host window and lets tests fire events directly.
type fakeSource struct {
	keyDown, keyUp                    func(uint32)
	pointerDown, pointerUp, pointerMv func(x, y float32)
}

func (f *fakeSource) SetKeyDownCallback(cb func(uint32))           { f.keyDown = cb }
func (f *fakeSource) SetKeyUpCallback(cb func(uint32))             { f.keyUp = cb }
func (f *fakeSource) SetPointerDownCallback(cb func(x, y float32)) { f.pointerDown = cb }
func (f *fakeSource) SetPointerUpCallback(cb func(x, y float32))   { f.pointerUp = cb }
func (f *fakeSource) SetPointerMoveCallback(cb func(x, y float32)) { f.pointerMv = cb }

func TestInputCaptureKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		key  uint32
		want InputState
	}{
		{"W", common.KeyW, InputState{Forward: true}},
		{"Up", common.KeyUp, InputState{Forward: true}},
		{"S", common.KeyS, InputState{Backward: true}},
		{"Down", common.KeyDown, InputState{Backward: true}},
		{"A", common.KeyA, InputState{Left: true}},
		{"Left", common.KeyLeft, InputState{Left: true}},
		{"D", common.KeyD, InputState{Right: true}},
		{"Right", common.KeyRight, InputState{Right: true}},
		{"unmapped", common.KeySpace, InputState{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := NewInputCapture()
			ic.KeyDown(tt.key)
			if got := ic.Drain(); got != tt.want {
				t.Errorf("after KeyDown: %+v, want %+v", got, tt.want)
			}
			ic.KeyUp(tt.key)
			if got := ic.Drain(); got != (InputState{}) {
				t.Errorf("after KeyUp: %+v, want empty", got)
			}
		})
	}
}

func TestInputCaptureHeldKeysPersistAcrossDrains(t *testing.T) {
	ic := NewInputCapture()
	ic.KeyDown(common.KeyW)
	ic.KeyDown(common.KeyD)
	for i := 0; i < 3; i++ {
		got := ic.Drain()
		if !got.Forward || !got.Right {
			t.Fatalf("drain %d lost held keys: %+v", i, got)
		}
	}
}

func TestInputCapturePointerDeltaSumsUntilDrained(t *testing.T) {
	ic := NewInputCapture()

	ic.PointerMove(50, 50) // pointer up: ignored
	ic.PointerDown(100, 100)
	ic.PointerMove(110, 95)
	ic.PointerMove(130, 90)
	ic.AddPointerDelta(5, 0)

	got := ic.Drain()
	if !got.PointerDown {
		t.Error("PointerDown = false while held")
	}
	if want := (mgl32.Vec2{35, -10}); got.PointerDelta != want {
		t.Errorf("PointerDelta = %v, want %v", got.PointerDelta, want)
	}

	if again := ic.Drain(); again.PointerDelta != (mgl32.Vec2{}) {
		t.Errorf("second drain delta = %v, want zero", again.PointerDelta)
	}

	ic.PointerMove(140, 90)
	ic.PointerUp(140, 90)
	ic.PointerMove(500, 500) // released: ignored
	got = ic.Drain()
	if got.PointerDown {
		t.Error("PointerDown = true after release")
	}
	if want := (mgl32.Vec2{10, 0}); got.PointerDelta != want {
		t.Errorf("delta before release = %v, want %v", got.PointerDelta, want)
	}
}

func TestInputCaptureNewDragDoesNotJump(t *testing.T) {
	ic := NewInputCapture()
	ic.PointerDown(0, 0)
	ic.PointerUp(0, 0)
	ic.PointerDown(400, 300)
	ic.PointerMove(401, 300)
	if got := ic.Drain().PointerDelta; got != (mgl32.Vec2{1, 0}) {
		t.Errorf("delta = %v, want (1, 0)", got)
	}
}

func TestInputCaptureAttachDetach(t *testing.T) {
	src := &fakeSource{}
	ic := NewInputCapture()
	ic.Attach(src)

	if src.keyDown == nil || src.keyUp == nil || src.pointerDown == nil || src.pointerUp == nil || src.pointerMv == nil {
		t.Fatal("Attach did not register every callback")
	}

	src.keyDown(common.KeyW)
	src.pointerDown(0, 0)
	src.pointerMv(3, 4)
	got := ic.Drain()
	if !got.Forward || got.PointerDelta != (mgl32.Vec2{3, 4}) {
		t.Errorf("events through source: %+v", got)
	}

	ic.Detach()
	if src.keyDown != nil || src.pointerMv != nil {
		t.Error("Detach left callbacks registered")
	}
	if got := ic.Drain(); got != (InputState{}) {
		t.Errorf("Detach did not clear held input: %+v", got)
	}

	// detaching twice is harmless
	ic.Detach()
}

func TestInputCaptureReattachReleasesPreviousSource(t *testing.T) {
	first, second := &fakeSource{}, &fakeSource{}
	ic := NewInputCapture()
	ic.Attach(first)
	ic.Attach(second)
	if first.keyDown != nil {
		t.Error("first source still wired after reattach")
	}
	if second.keyDown == nil {
		t.Error("second source not wired")
	}
}
