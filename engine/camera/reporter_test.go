package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestSnapshotRoundsAndConverts(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		pose      Pose
		want      PoseSnapshot
	}{
		{
			name:      "two decimals",
			precision: 2,
			pose: Pose{
				Position: mgl32.Vec3{1.23456, -7.891, 0.004},
				Yaw:      mgl32.DegToRad(90),
				Pitch:    mgl32.DegToRad(-12.3456),
			},
			want: PoseSnapshot{
				Position: [3]float32{1.23, -7.89, 0},
				Rotation: [3]float32{-12.35, 90, 0},
			},
		},
		{
			name:      "whole numbers",
			precision: 0,
			pose:      Pose{Position: mgl32.Vec3{2.6, 0, -1.4}, Yaw: mgl32.DegToRad(45.4)},
			want: PoseSnapshot{
				Position: [3]float32{3, 0, -1},
				Rotation: [3]float32{0, 45, 0},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPoseReporter(tt.precision, logrus.StandardLogger())
			got := r.snapshot(tt.pose, ModeFreeRoam)
			for i := 0; i < 3; i++ {
				if !mgl32.FloatEqualThreshold(got.Position[i], tt.want.Position[i], 1e-4) {
					t.Errorf("Position[%d] = %v, want %v", i, got.Position[i], tt.want.Position[i])
				}
				if !mgl32.FloatEqualThreshold(got.Rotation[i], tt.want.Rotation[i], 1e-4) {
					t.Errorf("Rotation[%d] = %v, want %v", i, got.Rotation[i], tt.want.Rotation[i])
				}
			}
			if got.Rotation[2] != 0 {
				t.Errorf("roll = %v, want 0", got.Rotation[2])
			}
		})
	}
}

func TestObserverReceivesEveryTick(t *testing.T) {
	var snaps []PoseSnapshot
	cc := quietController(WithObserver(func(s PoseSnapshot) { snaps = append(snaps, s) }))

	cc.Input().KeyDown(common.KeyW)
	tickN(cc, 3)

	if len(snaps) != 3 {
		t.Fatalf("observer called %d times, want 3", len(snaps))
	}
	if snaps[2].Position != [3]float32{0, 0, -1.5} {
		t.Errorf("third snapshot position = %v, want (0, 0, -1.5)", snaps[2].Position)
	}
	if snaps[2].Mode != ModeFreeRoam {
		t.Errorf("snapshot mode = %v", snaps[2].Mode)
	}

	cc.NavigateTo(NavigationTarget{Position: mgl32.Vec3{10, 0, 0}})
	cc.Tick()
	if snaps[3].Mode != ModeTransitioning {
		t.Errorf("snapshot mode during transition = %v", snaps[3].Mode)
	}
}

func TestNilObserverIsNoop(t *testing.T) {
	cc := quietController()
	cc.SetObserver(nil)
	cc.Input().KeyDown(common.KeyW)
	cc.Tick()
	if cc.Pose().Position.Z() != -0.5 {
		t.Errorf("tick without observer did not move: %v", cc.Pose().Position)
	}
}

func TestPanickingObserverDoesNotAffectState(t *testing.T) {
	logger, hook := test.NewNullLogger()
	reference := quietController()
	cc := NewCameraController(
		WithLogger(logger),
		WithObserver(func(PoseSnapshot) { panic("display gone") }),
	)

	for _, c := range []CameraController{cc, reference} {
		c.NavigateTo(NavigationTarget{Position: mgl32.Vec3{4, 0, 0}})
	}
	for i := 0; i < 20; i++ {
		cc.Tick()
		reference.Tick()
	}

	if cc.Pose() != reference.Pose() || cc.Mode() != reference.Mode() {
		t.Errorf("observer panic changed state: %v vs %v", cc.Pose(), reference.Pose())
	}

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 20 {
		t.Errorf("logged %d warnings, want 20", warnings)
	}
}

func TestAsyncReportingDelivers(t *testing.T) {
	got := make(chan PoseSnapshot, 8)
	cc := quietController(
		WithAsyncReporting(1),
		WithObserver(func(s PoseSnapshot) { got <- s }),
	)

	cc.Input().KeyDown(common.KeyD)
	cc.Tick()

	select {
	case s := <-got:
		if s.Position != [3]float32{0.5, 0, 0} {
			t.Errorf("async snapshot position = %v, want (0.5, 0, 0)", s.Position)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("async observer was never called")
	}
}

func TestCloseStopsReporting(t *testing.T) {
	got := make(chan PoseSnapshot, 8)
	src := &fakeSource{}
	cc := quietController(
		WithAsyncReporting(1),
		WithObserver(func(s PoseSnapshot) { got <- s }),
	)
	cc.Input().Attach(src)

	cc.Tick()
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("async observer was never called before Close")
	}

	cc.Close()
	if src.keyDown != nil {
		t.Error("Close left the input source attached")
	}

	cc.Input().KeyDown(common.KeyD)
	cc.Tick()
	if cc.Pose().Position.X() != 0.5 {
		t.Errorf("tick after Close did not move: %v", cc.Pose().Position)
	}
	select {
	case s := <-got:
		t.Errorf("observer called after Close with %+v", s)
	case <-time.After(100 * time.Millisecond):
	}

	cc.Close()
}
