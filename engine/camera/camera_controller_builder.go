package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithNavigationConfig replaces the tuning constants. Zero-valued speeds,
// smoothing and epsilons fall back to DefaultNavigationConfig.
//
// Parameters:
//   - cfg: the navigation configuration
//
// Returns:
//   - CameraControllerOption: functional option to set the configuration
func WithNavigationConfig(cfg NavigationConfig) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg = cfg.withDefaults()
	}
}

// WithPose sets the initial camera pose. Pitch is clamped to [MinPitch, MaxPitch].
//
// Parameters:
//   - pose: the starting pose
//
// Returns:
//   - CameraControllerOption: functional option to set the pose
func WithPose(pose Pose) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pose = pose
	}
}

// WithPosition sets the initial camera position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pose.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotationSpeed sets the pointer look speed.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set rotation speed
func WithRotationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.RotationSpeed = speed
	}
}

// WithMovementSpeed sets the keyboard travel speed.
//
// Parameters:
//   - speed: units per tick
//
// Returns:
//   - CameraControllerOption: functional option to set movement speed
func WithMovementSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MovementSpeed = speed
	}
}

// WithSmoothing sets the per-tick transition interpolation factor.
//
// Parameters:
//   - alpha: fraction of the remaining distance covered each tick, in (0, 1]
//
// Returns:
//   - CameraControllerOption: functional option to set smoothing
func WithSmoothing(alpha float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Smoothing = alpha
	}
}

// WithConvergence sets the transition exit thresholds.
//
// Parameters:
//   - positionEpsilon: distance threshold
//   - rotationEpsilon: summed yaw + pitch threshold in radians
//
// Returns:
//   - CameraControllerOption: functional option to set convergence thresholds
func WithConvergence(positionEpsilon, rotationEpsilon float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.PositionEpsilon = positionEpsilon
		cc.cfg.RotationEpsilon = rotationEpsilon
	}
}

// WithObserver registers the pose observer at construction time.
//
// Parameters:
//   - observer: callback receiving a snapshot after every tick
//
// Returns:
//   - CameraControllerOption: functional option to set the observer
func WithObserver(observer PoseObserver) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.observer = observer
	}
}

// WithAsyncReporting delivers pose snapshots on a worker pool instead of the tick thread.
//
// Parameters:
//   - workers: number of pool workers (at least 1)
//
// Returns:
//   - CameraControllerOption: functional option to enable asynchronous reporting
func WithAsyncReporting(workers int) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.asyncWorkers = workers
	}
}

// WithLogger sets the logger used for mode changes and observer failures.
//
// Parameters:
//   - logger: any logrus logger or entry
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(logger logrus.FieldLogger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.logger = logger
	}
}

// WithName sets the viewport name used in log fields.
//
// Parameters:
//   - name: viewport name
//
// Returns:
//   - CameraControllerOption: functional option to set the name
func WithName(name string) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.name = name
	}
}

// WithInputCapture shares an existing input buffer instead of creating one.
//
// Parameters:
//   - input: the input buffer to drain each tick
//
// Returns:
//   - CameraControllerOption: functional option to set the input buffer
func WithInputCapture(input *InputCapture) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.input = input
	}
}
