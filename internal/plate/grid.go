package plate

import "math"

// Grid is the sampling grid derived from a plate config. One grid cell
// maps to at most one hole.
type Grid struct {
	Cols  int
	Rows  int
	Pitch float64 // cell pitch in mm, equal to the config spacing
}

// Empty reports whether the grid contains no cells.
func (g Grid) Empty() bool {
	return g.Cols == 0 || g.Rows == 0
}

// CellCount returns the total number of grid cells.
func (g Grid) CellCount() int {
	return g.Cols * g.Rows
}

// Plan derives the sampling grid from the plate geometry. Spacing must be
// positive (enforced at the configuration boundary). A plate whose margin
// consumes the full width or height yields an empty grid.
func Plan(cfg Config) Grid {
	effW := cfg.EffectiveWidth()
	effH := cfg.EffectiveHeight()
	if effW <= 0 || effH <= 0 {
		return Grid{Pitch: cfg.SpacingMM}
	}

	return Grid{
		Cols:  int(math.Floor(effW / cfg.SpacingMM)),
		Rows:  int(math.Floor(effH / cfg.SpacingMM)),
		Pitch: cfg.SpacingMM,
	}
}

// CellCenter returns the physical center of cell (col, row) relative to
// the plate's top-left origin, in mm.
func CellCenter(cfg Config, col, row int) (x, y float64) {
	x = cfg.MarginMM + float64(col)*cfg.SpacingMM + cfg.SpacingMM/2
	y = cfg.MarginMM + float64(row)*cfg.SpacingMM + cfg.SpacingMM/2
	return x, y
}
