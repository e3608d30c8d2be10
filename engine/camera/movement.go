package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// horizontalAxes returns the horizontal forward and right unit vectors for yaw.
// Pitch is not an input, so looking up or down never changes travel speed.
// Right is forward rotated -90 degrees about the vertical axis.
//
// Parameters:
//   - yaw: rotation about the world Y axis in radians
//
// Returns:
//   - forward: (-sin yaw, 0, -cos yaw)
//   - right: (cos yaw, 0, -sin yaw)
func horizontalAxes(yaw float32) (forward, right mgl32.Vec3) {
	sin, cos := math32.Sincos(yaw)
	forward = mgl32.Vec3{-sin, 0, -cos}
	right = mgl32.Vec3{cos, 0, -sin}
	return forward, right
}

// displacement sums one tick of movement for every held direction.
// Simultaneous keys add without normalization, so diagonals are faster.
//
// Parameters:
//   - yaw: current yaw in radians
//   - input: the drained input for this tick
//   - speed: units per tick per held direction
//
// Returns:
//   - mgl32.Vec3: the world-space displacement
func displacement(yaw float32, input InputState, speed float32) mgl32.Vec3 {
	forward, right := horizontalAxes(yaw)
	var d mgl32.Vec3
	if input.Forward {
		d = d.Add(forward.Mul(speed))
	}
	if input.Backward {
		d = d.Sub(forward.Mul(speed))
	}
	if input.Right {
		d = d.Add(right.Mul(speed))
	}
	if input.Left {
		d = d.Sub(right.Mul(speed))
	}
	return d
}

// applyMovement moves the pose by one tick of directional input.
func applyMovement(pose *Pose, input InputState, speed float32) {
	pose.Position = pose.Position.Add(displacement(pose.Yaw, input, speed))
}
