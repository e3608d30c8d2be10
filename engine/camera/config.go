package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-nav/common"
)

// ErrInvalidNavigationConfig is wrapped by every NavigationConfig validation failure.
var ErrInvalidNavigationConfig = errors.New("invalid navigation config")

// NavigationConfig holds the tuning constants of a navigation controller.
type NavigationConfig struct {
	// RotationSpeed converts pointer pixels to radians.
	RotationSpeed float32 `yaml:"rotation_speed"`
	// MovementSpeed is the distance travelled per tick for each held direction.
	MovementSpeed float32 `yaml:"movement_speed"`
	// Smoothing is the per-tick interpolation factor used while transitioning.
	Smoothing float32 `yaml:"smoothing"`
	// PositionEpsilon is the distance below which a transition position is converged.
	PositionEpsilon float32 `yaml:"position_epsilon"`
	// RotationEpsilon is the summed |yaw|+|pitch| delta below which a transition rotation is converged.
	RotationEpsilon float32 `yaml:"rotation_epsilon"`
	// ReportPrecision is the number of decimals kept in pose snapshots.
	ReportPrecision int `yaml:"report_precision"`
}

// DefaultNavigationConfig returns the stock tuning.
//
// Returns:
//   - NavigationConfig: the default configuration
func DefaultNavigationConfig() NavigationConfig {
	return NavigationConfig{
		RotationSpeed:   0.002,
		MovementSpeed:   0.5,
		Smoothing:       0.05,
		PositionEpsilon: 0.01,
		RotationEpsilon: 0.01,
		ReportPrecision: 2,
	}
}

// withDefaults replaces zero-valued fields with their defaults.
// ReportPrecision is kept as-is since zero decimals is a valid setting.
func (c NavigationConfig) withDefaults() NavigationConfig {
	d := DefaultNavigationConfig()
	return NavigationConfig{
		RotationSpeed:   common.Coalesce(c.RotationSpeed, d.RotationSpeed),
		MovementSpeed:   common.Coalesce(c.MovementSpeed, d.MovementSpeed),
		Smoothing:       common.Coalesce(c.Smoothing, d.Smoothing),
		PositionEpsilon: common.Coalesce(c.PositionEpsilon, d.PositionEpsilon),
		RotationEpsilon: common.Coalesce(c.RotationEpsilon, d.RotationEpsilon),
		ReportPrecision: c.ReportPrecision,
	}
}

// Validate reports the first out-of-range field.
//
// Returns:
//   - error: nil when valid, otherwise an error wrapping ErrInvalidNavigationConfig
func (c NavigationConfig) Validate() error {
	switch {
	case c.RotationSpeed <= 0:
		return fmt.Errorf("%w: rotation_speed must be positive, got %v", ErrInvalidNavigationConfig, c.RotationSpeed)
	case c.MovementSpeed <= 0:
		return fmt.Errorf("%w: movement_speed must be positive, got %v", ErrInvalidNavigationConfig, c.MovementSpeed)
	case c.Smoothing <= 0 || c.Smoothing > 1:
		return fmt.Errorf("%w: smoothing must be in (0, 1], got %v", ErrInvalidNavigationConfig, c.Smoothing)
	case c.PositionEpsilon <= 0:
		return fmt.Errorf("%w: position_epsilon must be positive, got %v", ErrInvalidNavigationConfig, c.PositionEpsilon)
	case c.RotationEpsilon <= 0:
		return fmt.Errorf("%w: rotation_epsilon must be positive, got %v", ErrInvalidNavigationConfig, c.RotationEpsilon)
	case c.ReportPrecision < 0 || c.ReportPrecision > 6:
		return fmt.Errorf("%w: report_precision must be in [0, 6], got %d", ErrInvalidNavigationConfig, c.ReportPrecision)
	}
	return nil
}
