package halftone

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// uniformImage returns a solid-color RGBA image.
func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestLuminanceWeights(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    float64
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 1},
		{255, 0, 0, 0.299},
		{0, 255, 0, 0.587},
		{0, 0, 255, 0.114},
	}
	for _, tt := range tests {
		if got := Luminance(tt.r, tt.g, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Luminance(%d,%d,%d) = %g, want %g", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestSampleLuminanceDimensions(t *testing.T) {
	img := uniformImage(640, 480, color.RGBA{128, 128, 128, 255})
	lum := SampleLuminance(img, 16, 12)
	if lum == nil {
		t.Fatal("expected non-nil table")
	}
	rows, cols := lum.Dims()
	if rows != 12 || cols != 16 {
		t.Fatalf("table dims = %dx%d, want 12x16", rows, cols)
	}
}

func TestSampleLuminanceUniform(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want float64
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 1.0},
		{"black", color.RGBA{0, 0, 0, 255}, 0.0},
		{"mid-gray", color.RGBA{128, 128, 128, 255}, 128.0 / 255},
	}
	for _, tt := range tests {
		img := uniformImage(200, 200, tt.c)
		lum := SampleLuminance(img, 10, 10)
		rows, cols := lum.Dims()
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if got := lum.At(y, x); math.Abs(got-tt.want) > 0.01 {
					t.Fatalf("%s cell (%d,%d) = %g, want %g", tt.name, x, y, got, tt.want)
				}
			}
		}
	}
}

func TestSampleLuminanceAveragesRegions(t *testing.T) {
	// Left half black, right half white: a 2x1 grid must land near the
	// half means, not on single source pixels.
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 100 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	lum := SampleLuminance(img, 2, 1)
	if left := lum.At(0, 0); left > 0.2 {
		t.Errorf("left cell = %g, want near 0", left)
	}
	if right := lum.At(0, 1); right < 0.8 {
		t.Errorf("right cell = %g, want near 1", right)
	}
}

func TestSampleLuminanceEmptyGrid(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{255, 255, 255, 255})
	if lum := SampleLuminance(img, 0, 5); lum != nil {
		t.Error("expected nil for zero cols")
	}
	if lum := SampleLuminance(img, 5, 0); lum != nil {
		t.Error("expected nil for zero rows")
	}
	if lum := SampleLuminance(nil, 5, 5); lum != nil {
		t.Error("expected nil for nil image")
	}
}
