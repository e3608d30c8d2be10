package camera

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// PoseObserver receives a snapshot after every tick.
type PoseObserver func(snapshot PoseSnapshot)

// poseReporter delivers snapshots to the registered observer. Observer panics are
// recovered and logged so they can never reach controller state.
type poseReporter struct {
	mu *sync.Mutex

	observer  PoseObserver
	precision int
	logger    logrus.FieldLogger

	// pool is non-nil when delivery is asynchronous.
	pool   worker.DynamicWorkerPool
	taskID atomic.Int64
	closed bool
}

func newPoseReporter(precision int, logger logrus.FieldLogger) *poseReporter {
	return &poseReporter{
		mu:        &sync.Mutex{},
		precision: precision,
		logger:    logger,
	}
}

// enableAsync routes observer calls through a worker pool instead of the tick thread.
func (r *poseReporter) enableAsync(workers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool = worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)
}

// close stops the async workers. Snapshots reported afterwards are dropped.
func (r *poseReporter) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pool != nil {
		r.pool.Stop()
		r.pool = nil
	}
	r.closed = true
}

func (r *poseReporter) setObserver(observer PoseObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = observer
}

// snapshot converts a pose into its rounded display form.
func (r *poseReporter) snapshot(pose Pose, mode ControllerMode) PoseSnapshot {
	p := r.precision
	return PoseSnapshot{
		Position: [3]float32{
			common.Round32(pose.Position.X(), p),
			common.Round32(pose.Position.Y(), p),
			common.Round32(pose.Position.Z(), p),
		},
		Rotation: [3]float32{
			common.Round32(mgl32.RadToDeg(pose.Pitch), p),
			common.Round32(mgl32.RadToDeg(pose.Yaw), p),
			0,
		},
		Mode: mode,
	}
}

// report emits one snapshot. A missing observer is a no-op.
func (r *poseReporter) report(pose Pose, mode ControllerMode) {
	r.mu.Lock()
	observer := r.observer
	pool := r.pool
	closed := r.closed
	r.mu.Unlock()

	if observer == nil || closed {
		return
	}
	snap := r.snapshot(pose, mode)

	if pool == nil {
		r.deliver(observer, snap)
		return
	}
	id := int(r.taskID.Add(1))
	pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			r.deliver(observer, snap)
			return nil, nil
		},
	})
}

func (r *poseReporter) deliver(observer PoseObserver, snap PoseSnapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("panic", rec).Warn("pose observer panicked")
		}
	}()
	observer(snap)
}
