package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/Carmen-Shannon/oxy-nav/engine/poi"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Window           WindowConfig            `yaml:"window"`
	Engine           EngineConfig            `yaml:"engine"`
	Logging          LoggingConfig           `yaml:"logging"`
	Navigation       camera.NavigationConfig `yaml:"navigation"`
	Start            StartConfig             `yaml:"start"`
	PointsOfInterest []poi.PointOfInterest   `yaml:"points_of_interest"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type EngineConfig struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	Profiling        bool    `yaml:"profiling"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StartConfig is the initial pose, angles in degrees.
type StartConfig struct {
	Position [3]float32 `yaml:"position"`
	YawDeg   float32    `yaml:"yaw_deg"`
	PitchDeg float32    `yaml:"pitch_deg"`
}

// Pose converts the start settings into a camera pose.
func (s StartConfig) Pose() camera.Pose {
	return camera.Pose{
		Position: mgl32.Vec3(s.Position),
		Yaw:      mgl32.DegToRad(s.YawDeg),
		Pitch:    mgl32.DegToRad(s.PitchDeg),
	}
}

// Default returns the configuration used when no file overrides it.
//
// Returns:
//   - *Config: the defaults
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-nav",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Navigation: camera.DefaultNavigationConfig(),
	}
}

// Parse decodes YAML on top of Default, so omitted fields keep their defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the decoded and validated configuration
//   - error: a decode error, or an error wrapping ErrInvalidConfig
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the configuration
//   - error: the read error (os.IsNotExist works on it), or any Parse error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks every section.
//
// Returns:
//   - error: nil when valid, otherwise an error wrapping ErrInvalidConfig
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Engine.TickRate < 0 {
		return fmt.Errorf("%w: engine tick_rate must not be negative, got %v", ErrInvalidConfig, c.Engine.TickRate)
	}
	if c.Engine.RenderFrameLimit < 0 {
		return fmt.Errorf("%w: engine render_frame_limit must not be negative, got %v", ErrInvalidConfig, c.Engine.RenderFrameLimit)
	}
	if _, err := c.Logging.level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging format must be text or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	if err := c.Navigation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Start.PitchDeg < -90 || c.Start.PitchDeg > 90 {
		return fmt.Errorf("%w: start pitch_deg must be in [-90, 90], got %v", ErrInvalidConfig, c.Start.PitchDeg)
	}

	seen := make(map[string]struct{}, len(c.PointsOfInterest))
	for i, p := range c.PointsOfInterest {
		if p.Name == "" {
			return fmt.Errorf("%w: point of interest %d: %w", ErrInvalidConfig, i, poi.ErrEmptyName)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate point of interest %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

func (l LoggingConfig) level() (logrus.Level, error) {
	if l.Level == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(l.Level)
}

// Apply configures logger's level and formatter.
//
// Parameters:
//   - logger: the logger to configure, usually logrus.StandardLogger()
//
// Returns:
//   - error: an error if the level name is unknown
func (l LoggingConfig) Apply(logger *logrus.Logger) error {
	level, err := l.level()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if strings.EqualFold(l.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
