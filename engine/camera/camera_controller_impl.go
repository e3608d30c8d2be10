package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// controllerCount is an atomic counter used to generate unique viewport names.
var controllerCount atomic.Uint64

// cameraControllerImpl is the single implementation of CameraController.
// All pose mutation happens inside Tick (look, movement or transition) under mu;
// the observer is invoked after mu is released.
type cameraControllerImpl struct {
	mu *sync.Mutex

	name string
	cfg  NavigationConfig

	pose  Pose
	state navState

	input    *InputCapture
	reporter *poseReporter
	logger   logrus.FieldLogger

	// construction-only settings
	observer     PoseObserver
	asyncWorkers int
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a navigation controller in free roam at the origin,
// looking down -Z, with DefaultNavigationConfig.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:    &sync.Mutex{},
		name:  "viewport_" + strconv.FormatUint(controllerCount.Load(), 10),
		cfg:   DefaultNavigationConfig(),
		state: freeRoamState{},
	}
	controllerCount.Add(1)

	for _, option := range options {
		option(cc)
	}

	cc.cfg = cc.cfg.withDefaults()
	cc.pose.Pitch = common.Clamp(cc.pose.Pitch, MinPitch, MaxPitch)
	if cc.input == nil {
		cc.input = NewInputCapture()
	}
	if cc.logger == nil {
		cc.logger = logrus.StandardLogger()
	}
	cc.logger = cc.logger.WithField("viewport", cc.name)

	cc.reporter = newPoseReporter(cc.cfg.ReportPrecision, cc.logger)
	if cc.asyncWorkers > 0 {
		cc.reporter.enableAsync(cc.asyncWorkers)
	}
	cc.reporter.setObserver(cc.observer)

	return cc
}

func (cc *cameraControllerImpl) Tick() {
	cc.mu.Lock()
	input := cc.input.Drain()

	switch s := cc.state.(type) {
	case transitioningState:
		// Input drained mid-transition is dropped, not replayed afterwards.
		if s.step(&cc.pose, cc.cfg) {
			cc.state = freeRoamState{}
			cc.logger.WithFields(logrus.Fields{
				"x": cc.pose.Position.X(),
				"y": cc.pose.Position.Y(),
				"z": cc.pose.Position.Z(),
			}).Debug("transition converged")
		}
	default:
		applyLook(&cc.pose, input, cc.cfg.RotationSpeed)
		applyMovement(&cc.pose, input, cc.cfg.MovementSpeed)
	}

	pose := cc.pose
	mode := cc.state.mode()
	cc.mu.Unlock()

	cc.reporter.report(pose, mode)
}

func (cc *cameraControllerImpl) Pose() Pose {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pose
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pose.Position[0], cc.pose.Position[1], cc.pose.Position[2]
}

func (cc *cameraControllerImpl) Orientation() mgl32.Quat {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pose.Orientation()
}

func (cc *cameraControllerImpl) Forward() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pose.Forward()
}

func (cc *cameraControllerImpl) Input() *InputCapture {
	return cc.input
}

func (cc *cameraControllerImpl) SetObserver(observer PoseObserver) {
	cc.reporter.setObserver(observer)
}

func (cc *cameraControllerImpl) Config() NavigationConfig {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg
}

func (cc *cameraControllerImpl) Name() string {
	return cc.name
}

func (cc *cameraControllerImpl) Close() {
	cc.input.Detach()
	cc.reporter.close()
	cc.logger.Debug("controller closed")
}

// --- freeRoamCameraController implementation ---

func (cc *cameraControllerImpl) RotationSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg.RotationSpeed
}

func (cc *cameraControllerImpl) MovementSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg.MovementSpeed
}

// --- transitionCameraController implementation ---

func (cc *cameraControllerImpl) NavigateTo(target NavigationTarget) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, retarget := cc.state.(transitioningState)
	cc.state = beginTransition(target)

	msg := "transition started"
	if retarget {
		msg = "transition retargeted"
	}
	cc.logger.WithFields(logrus.Fields{
		"x":         target.Position.X(),
		"y":         target.Position.Y(),
		"z":         target.Position.Z(),
		"yaw_deg":   mgl32.RadToDeg(target.Yaw),
		"pitch_deg": mgl32.RadToDeg(target.Pitch),
	}).Debug(msg)
}

func (cc *cameraControllerImpl) NavigateToDegrees(position mgl32.Vec3, yawDeg, pitchDeg float32) {
	cc.NavigateTo(TargetFromDegrees(position, yawDeg, pitchDeg))
}

func (cc *cameraControllerImpl) CancelTransition() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if _, ok := cc.state.(transitioningState); !ok {
		return false
	}
	cc.state = freeRoamState{}
	cc.input.Drain()
	cc.logger.Debug("transition cancelled")
	return true
}

func (cc *cameraControllerImpl) Mode() ControllerMode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.mode()
}

func (cc *cameraControllerImpl) Target() (NavigationTarget, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if s, ok := cc.state.(transitioningState); ok {
		return s.target, true
	}
	return NavigationTarget{}, false
}
