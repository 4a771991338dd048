package outliner

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the layout and gesture constants shared by the hierarchy and
// its render/input collaborator.
type Config struct {
	RowHeight         float64 `yaml:"row_height"`          // pixel height of one row
	IndentWidth       float64 `yaml:"indent_width"`        // horizontal step per tree level
	LineStartOffset   float64 `yaml:"line_start_offset"`   // x where the level-0 drop indicator starts
	DropAboveFraction float64 `yaml:"drop_above_fraction"` // row fraction at or under which a drop goes above
	DropBelowFraction float64 `yaml:"drop_below_fraction"` // row fraction at or past which a drop goes below
	DragDeadZone      float64 `yaml:"drag_dead_zone"`      // pointer travel in pixels before a drag starts
	ScrollDuration    float32 `yaml:"scroll_duration"`     // seconds for animated scroll-to-row
	Debug             bool    `yaml:"debug,omitempty"`     // validate invariants after every layout pass
}

// DefaultConfig returns a Config with the editor's stock metrics.
func DefaultConfig() Config {
	return Config{
		RowHeight:         21,
		IndentWidth:       11,
		LineStartOffset:   22,
		DropAboveFraction: 0.30,
		DropBelowFraction: 0.60,
		DragDeadZone:      4,
		ScrollDuration:    0.25,
	}
}

// LoadConfig reads a YAML config file. Keys absent from the file keep their
// DefaultConfig values. Returns DefaultConfig if the file doesn't exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("row_height must be positive, got %v", c.RowHeight))
	}
	if c.IndentWidth <= 0 {
		errs = append(errs, fmt.Errorf("indent_width must be positive, got %v", c.IndentWidth))
	}
	if c.DropAboveFraction < 0 || c.DropAboveFraction > 1 {
		errs = append(errs, fmt.Errorf("drop_above_fraction must be in [0, 1], got %v", c.DropAboveFraction))
	}
	if c.DropBelowFraction < 0 || c.DropBelowFraction > 1 {
		errs = append(errs, fmt.Errorf("drop_below_fraction must be in [0, 1], got %v", c.DropBelowFraction))
	}
	if c.DropAboveFraction > c.DropBelowFraction {
		errs = append(errs, fmt.Errorf("drop_above_fraction %v exceeds drop_below_fraction %v",
			c.DropAboveFraction, c.DropBelowFraction))
	}
	if c.DragDeadZone < 0 {
		errs = append(errs, fmt.Errorf("drag_dead_zone must not be negative, got %v", c.DragDeadZone))
	}
	if c.ScrollDuration < 0 {
		errs = append(errs, fmt.Errorf("scroll_duration must not be negative, got %v", c.ScrollDuration))
	}
	return errors.Join(errs...)
}
