// Package halftone converts a raster image into the hole pattern for a
// perforated plate: one candidate hole per grid cell, radius derived from
// the luminance under that cell.
package halftone

import "plate-perf/internal/plate"

// Dot is a single hole in plate coordinates. X and Y are the cell-center
// position relative to the plate's top-left corner, R the hole radius,
// all in mm.
type Dot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// DotSet is the output of one generation run. Dots are in row-major order
// (all dots of row 0, then row 1, ...). A DotSet is immutable once
// published; consumers must not modify it.
type DotSet struct {
	Dots       []Dot
	Cols       int
	Rows       int
	Config     plate.Config
	Generation uint64
}

// Empty reports whether the set contains no dots.
func (ds *DotSet) Empty() bool {
	return ds == nil || len(ds.Dots) == 0
}
