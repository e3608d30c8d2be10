package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/Carmen-Shannon/oxy-nav/engine/poi"
	"github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "full document",
			createFile: true,
			content: `window:
  title: "museum"
  width: 800
  height: 600
engine:
  tick_rate: 120
  profiling: true
logging:
  level: debug
  format: json
navigation:
  rotation_speed: 0.004
  movement_speed: 0.25
  smoothing: 0.1
  position_epsilon: 0.02
  rotation_epsilon: 0.03
  report_precision: 3
start:
  position: [1, 2, 3]
  yaw_deg: 90
  pitch_deg: -15
points_of_interest:
  - name: tower
    position: [10, 2, -5]
    yaw_deg: 90
    pitch_deg: 10
  - name: lobby
    position: [0, 2, 0]
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Window.Title != "museum" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
					t.Errorf("Window = %+v", cfg.Window)
				}
				if cfg.Engine.TickRate != 120 || !cfg.Engine.Profiling {
					t.Errorf("Engine = %+v", cfg.Engine)
				}
				want := camera.NavigationConfig{
					RotationSpeed:   0.004,
					MovementSpeed:   0.25,
					Smoothing:       0.1,
					PositionEpsilon: 0.02,
					RotationEpsilon: 0.03,
					ReportPrecision: 3,
				}
				if cfg.Navigation != want {
					t.Errorf("Navigation = %+v, want %+v", cfg.Navigation, want)
				}
				if cfg.Start.Position != [3]float32{1, 2, 3} || cfg.Start.YawDeg != 90 || cfg.Start.PitchDeg != -15 {
					t.Errorf("Start = %+v", cfg.Start)
				}
				if len(cfg.PointsOfInterest) != 2 {
					t.Fatalf("got %d points of interest, want 2", len(cfg.PointsOfInterest))
				}
				if p := cfg.PointsOfInterest[0]; p.Name != "tower" || p.Position != [3]float32{10, 2, -5} || p.PitchDeg != 10 {
					t.Errorf("PointsOfInterest[0] = %+v", p)
				}
			},
		},
		{
			name:       "partial document keeps defaults",
			createFile: true,
			content: `navigation:
  movement_speed: 1.5
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				def := Default()
				if cfg.Window != def.Window {
					t.Errorf("Window = %+v, want defaults %+v", cfg.Window, def.Window)
				}
				if cfg.Navigation.MovementSpeed != 1.5 {
					t.Errorf("MovementSpeed = %v, want 1.5", cfg.Navigation.MovementSpeed)
				}
				if cfg.Navigation.Smoothing != 0.05 || cfg.Navigation.RotationSpeed != 0.002 {
					t.Errorf("untouched navigation fields changed: %+v", cfg.Navigation)
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("expected not-exist error, got %v", err)
				}
			},
		},
		{
			name:       "malformed yaml",
			createFile: true,
			content:    "window: [unterminated",
			wantErr:    true,
		},
		{
			name:       "invalid navigation",
			createFile: true,
			content: `navigation:
  smoothing: 1.5
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, camera.ErrInvalidNavigationConfig) {
					t.Errorf("error %v should wrap both config sentinels", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "navigation.yaml")
			if tt.createFile {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

func configPoint(name string) poi.PointOfInterest {
	return poi.PointOfInterest{Name: name}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, valid: true},
		{name: "zero width", mutate: func(c *Config) { c.Window.Width = 0 }},
		{name: "negative tick rate", mutate: func(c *Config) { c.Engine.TickRate = -1 }},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "unknown format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "zero precision is allowed", mutate: func(c *Config) { c.Navigation.ReportPrecision = 0 }, valid: true},
		{name: "precision too high", mutate: func(c *Config) { c.Navigation.ReportPrecision = 7 }},
		{name: "negative movement speed", mutate: func(c *Config) { c.Navigation.MovementSpeed = -0.5 }},
		{name: "start pitch past vertical", mutate: func(c *Config) { c.Start.PitchDeg = 91 }},
		{
			name: "empty point name",
			mutate: func(c *Config) {
				c.PointsOfInterest = append(c.PointsOfInterest, configPoint(""))
			},
		},
		{
			name: "duplicate point name",
			mutate: func(c *Config) {
				c.PointsOfInterest = append(c.PointsOfInterest, configPoint("a"), configPoint("a"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoggingConfigApply(t *testing.T) {
	logger := logrus.New()

	if err := (LoggingConfig{Level: "warn", Format: "json"}).Apply(logger); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.JSONFormatter", logger.Formatter)
	}

	if err := (LoggingConfig{Level: "nope"}).Apply(logger); err == nil {
		t.Error("Apply accepted an unknown level")
	}
}

func TestStartConfigPose(t *testing.T) {
	pose := StartConfig{Position: [3]float32{1, 2, 3}, YawDeg: 180, PitchDeg: 45}.Pose()
	if pose.Position.X() != 1 || pose.Position.Z() != 3 {
		t.Errorf("Position = %v", pose.Position)
	}
	if pose.Yaw < 3.1415 || pose.Yaw > 3.1417 {
		t.Errorf("Yaw = %v, want pi", pose.Yaw)
	}
	if pose.Pitch < 0.785 || pose.Pitch > 0.786 {
		t.Errorf("Pitch = %v, want pi/4", pose.Pitch)
	}
}
