// Package export serializes a dot set as a fabrication-ready vector file.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"plate-perf/internal/halftone"
)

// WriteSVG renders the dot set as a scale-accurate SVG document. The
// coordinate space is 0..width x 0..height in millimeters, with one
// circle per dot and a plate-boundary rectangle. All numeric values are
// serialized with fixed 2-decimal precision.
func WriteSVG(w io.Writer, ds *halftone.DotSet) error {
	cfg := ds.Config

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.2fmm" height="%.2fmm" viewBox="0 0 %.2f %.2f">`+"\n",
		cfg.WidthMM, cfg.HeightMM, cfg.WidthMM, cfg.HeightMM)

	// Plate boundary
	fmt.Fprintf(&sb,
		`  <rect x="0" y="0" width="%.2f" height="%.2f" fill="none" stroke="black" stroke-width="0.10"/>`+"\n",
		cfg.WidthMM, cfg.HeightMM)

	for _, d := range ds.Dots {
		fmt.Fprintf(&sb,
			`  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="black"/>`+"\n",
			d.X, d.Y, d.R)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveSVG writes the dot set to the given file path.
func SaveSVG(path string, ds *halftone.DotSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteSVG(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
