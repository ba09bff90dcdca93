package halftone

import "plate-perf/internal/plate"

// Radius converts one luminance sample in [0,1] to a physical hole radius
// in mm. Dark cells map to large holes unless the config is inverted. The
// result always lies in [MinHoleMM/2, MaxHoleMM/2].
func Radius(lum float64, cfg plate.Config) float64 {
	norm := lum
	if cfg.Inverted {
		norm = 1 - lum
	}
	sizeFactor := 1 - norm
	return cfg.MinHoleMM/2 + sizeFactor*(cfg.MaxHoleMM-cfg.MinHoleMM)/2
}
