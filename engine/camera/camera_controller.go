package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController defines the union interface for viewport navigation.
// The controller owns the camera Pose; Camera reads from it each frame to compute
// view/projection matrices. Embeds freeRoamCameraController and
// transitionCameraController: both behaviors live on one instance and the
// controller mode decides which one drives a given tick.
type CameraController interface {
	freeRoamCameraController
	transitionCameraController

	// Tick advances the controller by one frame: drains input, runs the active
	// behavior and reports the resulting pose to the observer.
	Tick()

	// Pose returns a copy of the current camera pose.
	//
	// Returns:
	//   - Pose: position, yaw and pitch
	Pose() Pose

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Orientation returns the roll-free orientation quaternion of the current pose.
	//
	// Returns:
	//   - mgl32.Quat: yaw about world Y followed by pitch about local X
	Orientation() mgl32.Quat

	// Forward returns the unit view direction of the current pose.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look direction
	Forward() mgl32.Vec3

	// Input returns the input buffer this controller drains each tick.
	// Attach it to a window to feed it with events.
	//
	// Returns:
	//   - *InputCapture: the controller's input buffer
	Input() *InputCapture

	// SetObserver registers the callback receiving a PoseSnapshot after every tick.
	// Pass nil to stop reporting.
	//
	// Parameters:
	//   - observer: the snapshot callback
	SetObserver(observer PoseObserver)

	// Config returns the tuning constants in use.
	//
	// Returns:
	//   - NavigationConfig: the effective configuration
	Config() NavigationConfig

	// Name returns the viewport name used in log fields.
	Name() string

	// Close detaches the input capture and stops the async reporting workers.
	// Ticks after Close still move the pose but no longer reach the observer.
	// Calling Close more than once is harmless.
	Close()
}

// freeRoamCameraController defines the keyboard + pointer look parameters.
type freeRoamCameraController interface {
	// RotationSpeed returns the pointer look speed.
	//
	// Returns:
	//   - float32: radians per pixel
	RotationSpeed() float32

	// MovementSpeed returns the per-tick travel distance of a held direction key.
	//
	// Returns:
	//   - float32: units per tick
	MovementSpeed() float32
}

// transitionCameraController defines guided navigation toward a target pose.
type transitionCameraController interface {
	// NavigateTo starts (or retargets) a smooth transition from the current pose
	// toward target. A transition already in progress continues from where it is.
	//
	// Parameters:
	//   - target: destination pose in radians
	NavigateTo(target NavigationTarget)

	// NavigateToDegrees is NavigateTo with the orientation given in degrees.
	//
	// Parameters:
	//   - position: destination world-space position
	//   - yawDeg: destination yaw in degrees
	//   - pitchDeg: destination pitch in degrees
	NavigateToDegrees(position mgl32.Vec3, yawDeg, pitchDeg float32)

	// CancelTransition stops an in-flight transition, leaving the camera where it
	// currently is and returning to free roam.
	//
	// Returns:
	//   - bool: true if a transition was cancelled
	CancelTransition() bool

	// Mode returns the current controller mode.
	//
	// Returns:
	//   - ControllerMode: ModeFreeRoam or ModeTransitioning
	Mode() ControllerMode

	// Target returns the active navigation target.
	//
	// Returns:
	//   - NavigationTarget: the destination pose
	//   - bool: false when no transition is active
	Target() (NavigationTarget, bool)
}
