package camera

import (
	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/chewxy/math32"
)

// navState is the controller's behavior state. Exactly one of freeRoamState or
// transitioningState is active; a target only exists while transitioning.
type navState interface {
	mode() ControllerMode
}

type freeRoamState struct{}

func (freeRoamState) mode() ControllerMode { return ModeFreeRoam }

type transitioningState struct {
	target NavigationTarget
}

func (transitioningState) mode() ControllerMode { return ModeTransitioning }

// beginTransition returns the state for a navigation request. The pitch of the
// target is clamped to keep the pose invariant; nothing else is validated.
func beginTransition(target NavigationTarget) transitioningState {
	target.Pitch = common.Clamp(target.Pitch, MinPitch, MaxPitch)
	return transitioningState{target: target}
}

// step eases pose toward the target by one tick of exponential smoothing and
// reports whether both position and rotation have converged. On convergence the
// pose is set exactly to the target.
//
// Far from the origin a float32 step can round to no change while the remaining
// distance is still above the thresholds. A step that leaves the pose untouched
// counts as converged so such transitions still end.
//
// Parameters:
//   - pose: the pose to move in place
//   - cfg: smoothing factor and convergence thresholds
//
// Returns:
//   - bool: true when the transition is complete
func (s transitioningState) step(pose *Pose, cfg NavigationConfig) bool {
	t := s.target
	alpha := cfg.Smoothing
	before := *pose

	pose.Position = pose.Position.Add(t.Position.Sub(pose.Position).Mul(alpha))
	pose.Yaw = common.Lerp(pose.Yaw, t.Yaw, alpha)
	pose.Pitch = common.Lerp(pose.Pitch, t.Pitch, alpha)

	if *pose != before && !s.converged(*pose, cfg) {
		return false
	}
	*pose = t.pose()
	return true
}

// converged requires both thresholds; either one alone is not enough.
func (s transitioningState) converged(pose Pose, cfg NavigationConfig) bool {
	t := s.target
	positionDelta := t.Position.Sub(pose.Position).Len()
	rotationDelta := math32.Abs(t.Yaw-pose.Yaw) + math32.Abs(t.Pitch-pose.Pitch)
	return positionDelta < cfg.PositionEpsilon && rotationDelta < cfg.RotationEpsilon
}
