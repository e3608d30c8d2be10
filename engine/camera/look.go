package camera

import (
	"github.com/Carmen-Shannon/oxy-nav/common"
)

// applyLook turns the drained pointer delta into yaw and pitch changes.
// Dragging right turns right (yaw decreases); dragging down looks down.
// Pitch is clamped so the camera can never flip over the vertical.
//
// Parameters:
//   - pose: the pose to rotate in place
//   - input: the drained input for this tick
//   - rotationSpeed: radians per pixel
func applyLook(pose *Pose, input InputState, rotationSpeed float32) {
	if !input.PointerDown {
		return
	}
	pose.Yaw -= input.PointerDelta.X() * rotationSpeed
	pose.Pitch = common.Clamp(pose.Pitch-input.PointerDelta.Y()*rotationSpeed, MinPitch, MaxPitch)
}
