// Package plate provides plate configuration, validation, and grid planning.
package plate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Shape selects the hole geometry. Only ShapeCircle has defined
// rendering semantics; ShapeSquare is reserved.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// Dimension limits enforced at the configuration boundary (mm).
const (
	MaxPlateMM   = 999.0
	MinPlateMM   = 1.0
	MinSpacingMM = 1.0
	MaxSpacingMM = 50.0
)

// Config defines the plate geometry and hole mapping parameters.
// All lengths are millimeters; MinHoleMM/MaxHoleMM are diameters.
type Config struct {
	WidthMM   float64 `json:"width_mm"`
	HeightMM  float64 `json:"height_mm"`
	SpacingMM float64 `json:"spacing_mm"` // center-to-center grid pitch
	MinHoleMM float64 `json:"min_hole_mm"`
	MaxHoleMM float64 `json:"max_hole_mm"`
	MarginMM  float64 `json:"margin_mm"`
	Inverted  bool    `json:"inverted"` // light regions map to large holes

	// Reserved fields, serialized but not consumed by the mapping.
	Threshold float64 `json:"threshold,omitempty"`
	Shape     Shape   `json:"shape,omitempty"`
}

// DefaultConfig returns the configuration used for a fresh session.
func DefaultConfig() Config {
	return Config{
		WidthMM:   100,
		HeightMM:  100,
		SpacingMM: 5,
		MinHoleMM: 0.5,
		MaxHoleMM: 4,
		MarginMM:  5,
		Shape:     ShapeCircle,
	}
}

// Clamp returns a copy with all fields forced into their legal ranges.
// This is the single boundary where untrusted UI/CLI input is sanitized;
// downstream code treats a clamped config as trusted.
func (c Config) Clamp() Config {
	c.WidthMM = clampF(c.WidthMM, MinPlateMM, MaxPlateMM)
	c.HeightMM = clampF(c.HeightMM, MinPlateMM, MaxPlateMM)
	c.SpacingMM = clampF(c.SpacingMM, MinSpacingMM, MaxSpacingMM)
	if c.MarginMM < 0 {
		c.MarginMM = 0
	}
	if c.MarginMM > MaxPlateMM {
		c.MarginMM = MaxPlateMM
	}
	if c.MinHoleMM < 0 {
		c.MinHoleMM = 0
	}
	if c.MaxHoleMM < 0 {
		c.MaxHoleMM = 0
	}
	if c.MinHoleMM > c.MaxHoleMM {
		c.MinHoleMM, c.MaxHoleMM = c.MaxHoleMM, c.MinHoleMM
	}
	if c.Shape == "" {
		c.Shape = ShapeCircle
	}
	return c
}

// Validate reports whether the config satisfies the engine preconditions.
func (c Config) Validate() error {
	if c.WidthMM <= 0 || c.HeightMM <= 0 {
		return fmt.Errorf("plate dimensions must be positive")
	}
	if c.SpacingMM <= 0 {
		return fmt.Errorf("spacing must be positive")
	}
	if c.MinHoleMM < 0 || c.MinHoleMM > c.MaxHoleMM {
		return fmt.Errorf("hole sizes must satisfy 0 <= min <= max")
	}
	if c.MarginMM < 0 {
		return fmt.Errorf("margin must be non-negative")
	}
	return nil
}

// EffectiveWidth returns the width available for hole placement.
func (c Config) EffectiveWidth() float64 {
	w := c.WidthMM - 2*c.MarginMM
	if w < 0 {
		return 0
	}
	return w
}

// EffectiveHeight returns the height available for hole placement.
func (c Config) EffectiveHeight() float64 {
	h := c.HeightMM - 2*c.MarginMM
	if h < 0 {
		return 0
	}
	return h
}

// SaveToFile saves the config to a JSON file.
func (c Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a config from a JSON file and clamps it.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	cfg = cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid plate config: %w", err)
	}
	return cfg, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
