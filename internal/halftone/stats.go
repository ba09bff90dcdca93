package halftone

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a dot set for display and CLI output.
type Stats struct {
	Count    int
	MeanR    float64 // mean radius, mm
	StdDevR  float64
	MinR     float64
	MaxR     float64
	OpenArea float64 // fraction of the plate area removed by holes
}

// Stats computes summary statistics over the dot set.
func (ds *DotSet) Stats() Stats {
	if ds.Empty() {
		return Stats{}
	}

	radii := make([]float64, len(ds.Dots))
	holeArea := 0.0
	for i, d := range ds.Dots {
		radii[i] = d.R
		holeArea += math.Pi * d.R * d.R
	}

	s := Stats{
		Count: len(radii),
		MeanR: stat.Mean(radii, nil),
		MinR:  floats.Min(radii),
		MaxR:  floats.Max(radii),
	}
	if len(radii) > 1 {
		s.StdDevR = stat.StdDev(radii, nil)
	}
	if plateArea := ds.Config.WidthMM * ds.Config.HeightMM; plateArea > 0 {
		s.OpenArea = holeArea / plateArea
	}
	return s
}
