package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/go-gl/mathgl/mgl32"
)

// InputSource is the subset of a host window that Input Capture listens to.
// window.Window satisfies it. Passing nil to a setter removes the listener.
type InputSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetPointerDownCallback(callback func(x, y float32))
	SetPointerUpCallback(callback func(x, y float32))
	SetPointerMoveCallback(callback func(x, y float32))
}

// InputState is one tick's worth of input.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	// PointerDown reports whether the primary pointer button is held.
	PointerDown bool

	// PointerDelta is the summed pointer movement since the last drain, in pixels.
	PointerDelta mgl32.Vec2
}

// InputCapture accumulates raw key and pointer events into an InputState that is
// drained exactly once per tick. Event handlers only set flags or add to the delta.
type InputCapture struct {
	mu *sync.Mutex

	state InputState

	lastX, lastY float32
	hasLast      bool

	source InputSource
}

// NewInputCapture creates an empty, detached InputCapture.
//
// Returns:
//   - *InputCapture: the new input buffer
func NewInputCapture() *InputCapture {
	return &InputCapture{mu: &sync.Mutex{}}
}

// Attach registers the capture's handlers on source, replacing any previous source.
//
// Parameters:
//   - source: the host window or event provider
func (ic *InputCapture) Attach(source InputSource) {
	ic.Detach()

	source.SetKeyDownCallback(ic.KeyDown)
	source.SetKeyUpCallback(ic.KeyUp)
	source.SetPointerDownCallback(ic.PointerDown)
	source.SetPointerUpCallback(ic.PointerUp)
	source.SetPointerMoveCallback(ic.PointerMove)

	ic.mu.Lock()
	ic.source = source
	ic.mu.Unlock()
}

// Detach removes the handlers from the attached source and clears all held input.
// Safe to call when nothing is attached.
func (ic *InputCapture) Detach() {
	ic.mu.Lock()
	source := ic.source
	ic.source = nil
	ic.state = InputState{}
	ic.hasLast = false
	ic.mu.Unlock()

	if source == nil {
		return
	}
	source.SetKeyDownCallback(nil)
	source.SetKeyUpCallback(nil)
	source.SetPointerDownCallback(nil)
	source.SetPointerUpCallback(nil)
	source.SetPointerMoveCallback(nil)
}

// KeyDown marks the direction mapped to keyCode as held. Unmapped keys are ignored.
func (ic *InputCapture) KeyDown(keyCode uint32) {
	ic.setKey(keyCode, true)
}

// KeyUp releases the direction mapped to keyCode.
func (ic *InputCapture) KeyUp(keyCode uint32) {
	ic.setKey(keyCode, false)
}

func (ic *InputCapture) setKey(keyCode uint32, held bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	switch keyCode {
	case common.KeyW, common.KeyUp:
		ic.state.Forward = held
	case common.KeyS, common.KeyDown:
		ic.state.Backward = held
	case common.KeyA, common.KeyLeft:
		ic.state.Left = held
	case common.KeyD, common.KeyRight:
		ic.state.Right = held
	}
}

// PointerDown starts a look drag at (x, y).
func (ic *InputCapture) PointerDown(x, y float32) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.state.PointerDown = true
	ic.lastX, ic.lastY = x, y
	ic.hasLast = true
}

// PointerUp ends the look drag. Delta already accumulated stays until drained.
func (ic *InputCapture) PointerUp(_, _ float32) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.state.PointerDown = false
	ic.hasLast = false
}

// PointerMove adds the movement since the previous pointer position to the
// pending delta while the pointer is down.
func (ic *InputCapture) PointerMove(x, y float32) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if !ic.state.PointerDown {
		return
	}
	if ic.hasLast {
		ic.state.PointerDelta[0] += x - ic.lastX
		ic.state.PointerDelta[1] += y - ic.lastY
	}
	ic.lastX, ic.lastY = x, y
	ic.hasLast = true
}

// AddPointerDelta adds a relative pointer movement directly, for hosts that
// report deltas instead of positions. Ignored while the pointer is up.
//
// Parameters:
//   - dx, dy: movement in pixels
func (ic *InputCapture) AddPointerDelta(dx, dy float32) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if !ic.state.PointerDown {
		return
	}
	ic.state.PointerDelta[0] += dx
	ic.state.PointerDelta[1] += dy
}

// Drain returns the current input and resets the pointer delta.
// Held keys and the pointer button persist across drains.
//
// Returns:
//   - InputState: the input accumulated since the previous drain
func (ic *InputCapture) Drain() InputState {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	snapshot := ic.state
	ic.state.PointerDelta = mgl32.Vec2{}
	return snapshot
}
