// Package canvas provides the dot pattern preview with pan and zoom.
package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"plate-perf/internal/halftone"
	"plate-perf/pkg/geometry"
)

const (
	minZoom  = 0.5  // pixels per mm
	maxZoom  = 40.0 // pixels per mm
	zoomStep = 1.25
)

var (
	backgroundColor = color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	plateColor      = color.RGBA{R: 0xf5, G: 0xf0, B: 0xe6, A: 0xff}
	holeColor       = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// DotCanvas renders the current dot set on a pannable, zoomable surface.
// It is a pure consumer: the dot set and config are never modified here.
type DotCanvas struct {
	widget.BaseWidget

	mu      sync.Mutex
	pattern *halftone.DotSet

	zoom   float64          // pixels per mm
	offset geometry.Point2D // plate origin in widget pixels
	fitted bool             // auto-fit performed for the current pattern

	raster *fynecanvas.Raster
}

// NewDotCanvas creates an empty preview canvas.
func NewDotCanvas() *DotCanvas {
	dc := &DotCanvas{zoom: 4}
	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.ExtendBaseWidget(dc)
	return dc
}

// CreateRenderer implements fyne.Widget.
func (dc *DotCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

// MinSize implements fyne.Widget.
func (dc *DotCanvas) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// SetPattern installs a newly published dot set and refreshes the view.
func (dc *DotCanvas) SetPattern(ds *halftone.DotSet) {
	dc.mu.Lock()
	dc.pattern = ds
	dc.fitted = false
	dc.mu.Unlock()
	dc.Refresh()
}

// ZoomIn increases magnification one step around the view center.
func (dc *DotCanvas) ZoomIn() {
	dc.zoomBy(zoomStep)
}

// ZoomOut decreases magnification one step around the view center.
func (dc *DotCanvas) ZoomOut() {
	dc.zoomBy(1 / zoomStep)
}

func (dc *DotCanvas) zoomBy(factor float64) {
	size := dc.Size()
	cx := float64(size.Width) / 2
	cy := float64(size.Height) / 2

	dc.mu.Lock()
	next := dc.zoom * factor
	if next < minZoom {
		next = minZoom
	}
	if next > maxZoom {
		next = maxZoom
	}
	// Keep the point under the view center fixed while zooming.
	scale := next / dc.zoom
	dc.offset.X = cx - (cx-dc.offset.X)*scale
	dc.offset.Y = cy - (cy-dc.offset.Y)*scale
	dc.zoom = next
	dc.mu.Unlock()

	dc.Refresh()
}

// Scrolled zooms with the mouse wheel.
func (dc *DotCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.ZoomOut()
	}
}

// Dragged pans the view.
func (dc *DotCanvas) Dragged(ev *fyne.DragEvent) {
	dc.mu.Lock()
	dc.offset.X += float64(ev.Dragged.DX)
	dc.offset.Y += float64(ev.Dragged.DY)
	dc.mu.Unlock()
	dc.Refresh()
}

// DragEnd implements fyne.Draggable.
func (dc *DotCanvas) DragEnd() {}

// fitToView centers the plate and picks a zoom that shows all of it.
func (dc *DotCanvas) fitToView(w, h int) {
	cfg := dc.pattern.Config
	if cfg.WidthMM <= 0 || cfg.HeightMM <= 0 || w == 0 || h == 0 {
		return
	}

	zoom := math.Min(float64(w)/cfg.WidthMM, float64(h)/cfg.HeightMM) * 0.9
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	dc.zoom = zoom
	dc.offset.X = (float64(w) - cfg.WidthMM*zoom) / 2
	dc.offset.Y = (float64(h) - cfg.HeightMM*zoom) / 2
	dc.fitted = true
}

// draw renders the current view into an RGBA frame for the raster.
func (dc *DotCanvas) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, backgroundColor)

	dc.mu.Lock()
	defer dc.mu.Unlock()

	ds := dc.pattern
	if ds == nil {
		return img
	}
	if !dc.fitted {
		dc.fitToView(w, h)
	}

	// Plate surface
	cfg := ds.Config
	px0 := int(dc.offset.X)
	py0 := int(dc.offset.Y)
	px1 := int(dc.offset.X + cfg.WidthMM*dc.zoom)
	py1 := int(dc.offset.Y + cfg.HeightMM*dc.zoom)
	fillRect(img, px0, py0, px1, py1, plateColor)

	for _, d := range ds.Dots {
		cx := dc.offset.X + d.X*dc.zoom
		cy := dc.offset.Y + d.Y*dc.zoom
		fillCircle(img, cx, cy, d.R*dc.zoom, holeColor)
	}

	return img
}

// FitToWindow recenters the plate and refits the zoom on the next frame.
func (dc *DotCanvas) FitToWindow() {
	dc.mu.Lock()
	dc.fitted = false
	dc.mu.Unlock()
	dc.Refresh()
}

// Zoom returns the current magnification in pixels per mm.
func (dc *DotCanvas) Zoom() float64 {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.zoom
}

func fill(img *image.RGBA, col color.RGBA) {
	b := img.Bounds()
	fillRect(img, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, col)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	b := img.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// fillCircle draws a filled circle clipped to the image bounds.
func fillCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	bounds := img.Bounds()
	r2 := radius * radius

	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
