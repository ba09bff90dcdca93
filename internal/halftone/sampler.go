package halftone

import (
	"image"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// SampleLuminance resamples the source image down to exactly cols x rows
// and returns one luminance value per grid cell, stored row-major in a
// rows x cols matrix with values in [0,1].
//
// The resample is a single Catmull-Rom pass so each cell carries the
// average brightness of the source region under it rather than a single
// source pixel; nearest-neighbor would alias badly for images much larger
// than the grid. Returns nil when the grid is empty.
func SampleLuminance(src image.Image, cols, rows int) *mat.Dense {
	if src == nil || cols <= 0 || rows <= 0 {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	lum := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := scaled.RGBAAt(x, y)
			lum.Set(y, x, Luminance(px.R, px.G, px.B))
		}
	}
	return lum
}

// Luminance returns the perceptual brightness of an 8-bit RGB triple,
// normalized to [0,1]. Uses the Rec. 601 weights.
func Luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}
