package camera

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestApplyLook(t *testing.T) {
	tests := []struct {
		name  string
		input InputState
		yaw   float32
		pitch float32
	}{
		{"pointer up ignores delta", InputState{PointerDelta: mgl32.Vec2{100, 100}}, 0, 0},
		{"drag right turns right", InputState{PointerDown: true, PointerDelta: mgl32.Vec2{100, 0}}, -0.2, 0},
		{"drag down looks down", InputState{PointerDown: true, PointerDelta: mgl32.Vec2{0, 50}}, 0, -0.1},
		{"clamped up", InputState{PointerDown: true, PointerDelta: mgl32.Vec2{0, -10000}}, 0, MaxPitch},
		{"clamped down", InputState{PointerDown: true, PointerDelta: mgl32.Vec2{0, 10000}}, 0, MinPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pose Pose
			applyLook(&pose, tt.input, 0.002)
			if !mgl32.FloatEqualThreshold(pose.Yaw, tt.yaw, epsilon) {
				t.Errorf("yaw = %v, want %v", pose.Yaw, tt.yaw)
			}
			if !mgl32.FloatEqualThreshold(pose.Pitch, tt.pitch, epsilon) {
				t.Errorf("pitch = %v, want %v", pose.Pitch, tt.pitch)
			}
		})
	}
}

func TestApplyLookPitchStaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var pose Pose
	for i := 0; i < 5000; i++ {
		in := InputState{
			PointerDown:  true,
			PointerDelta: mgl32.Vec2{rng.Float32()*400 - 200, rng.Float32()*4000 - 2000},
		}
		applyLook(&pose, in, 0.002)
		if pose.Pitch < MinPitch || pose.Pitch > MaxPitch {
			t.Fatalf("iteration %d: pitch %v escaped [%v, %v]", i, pose.Pitch, MinPitch, MaxPitch)
		}
	}
}
