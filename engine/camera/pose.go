package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch is the upper pitch bound (straight up).
	MaxPitch = float32(math.Pi / 2)
	// MinPitch is the lower pitch bound (straight down).
	MinPitch = -MaxPitch
)

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldRight   = mgl32.Vec3{1, 0, 0}
	worldForward = mgl32.Vec3{0, 0, -1}
)

// Pose is the camera position and orientation. Roll is never represented.
type Pose struct {
	// Position is the world-space camera position.
	Position mgl32.Vec3
	// Yaw is the rotation about the world vertical axis in radians.
	Yaw float32
	// Pitch is the rotation about the camera's local lateral axis in radians,
	// always within [MinPitch, MaxPitch].
	Pitch float32
}

// Orientation returns the pose rotation as a quaternion. Yaw is applied about
// the world Y axis first, then pitch about the resulting local X axis.
//
// Returns:
//   - mgl32.Quat: the roll-free orientation
func (p Pose) Orientation() mgl32.Quat {
	return mgl32.QuatRotate(p.Yaw, worldUp).Mul(mgl32.QuatRotate(p.Pitch, worldRight))
}

// Forward returns the unit look direction including pitch.
//
// Returns:
//   - mgl32.Vec3: the world-space view direction
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation().Rotate(worldForward)
}

// NavigationTarget is a destination pose for a transition, in radians.
type NavigationTarget struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// TargetFromDegrees builds a NavigationTarget from an orientation expressed in degrees.
//
// Parameters:
//   - position: destination world-space position
//   - yawDeg: destination yaw in degrees
//   - pitchDeg: destination pitch in degrees
//
// Returns:
//   - NavigationTarget: the target with angles converted to radians
func TargetFromDegrees(position mgl32.Vec3, yawDeg, pitchDeg float32) NavigationTarget {
	return NavigationTarget{
		Position: position,
		Yaw:      mgl32.DegToRad(yawDeg),
		Pitch:    mgl32.DegToRad(pitchDeg),
	}
}

// pose returns the target as a Pose.
func (t NavigationTarget) pose() Pose {
	return Pose{Position: t.Position, Yaw: t.Yaw, Pitch: t.Pitch}
}

// ControllerMode identifies which behavior drives the camera on a tick.
type ControllerMode int

const (
	// ModeFreeRoam applies keyboard movement and pointer look.
	ModeFreeRoam ControllerMode = iota
	// ModeTransitioning interpolates toward a NavigationTarget.
	ModeTransitioning
)

func (m ControllerMode) String() string {
	switch m {
	case ModeFreeRoam:
		return "free_roam"
	case ModeTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// PoseSnapshot is the display copy of a pose handed to observers.
// Rotation is (pitch, yaw, roll) in degrees; roll is always 0.
type PoseSnapshot struct {
	Position [3]float32
	Rotation [3]float32
	Mode     ControllerMode
}
