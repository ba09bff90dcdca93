// Command plategen generates a perforation pattern SVG from an image
// without opening the GUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"plate-perf/internal/export"
	"plate-perf/internal/halftone"
	"plate-perf/internal/image"
	"plate-perf/internal/plate"
)

func main() {
	imagePath := flag.String("image", "", "Path to source image (PNG, JPEG, TIFF, or SVG)")
	outPath := flag.String("out", "", "Output SVG path (default: generated filename in current directory)")
	configPath := flag.String("config", "", "Plate configuration JSON file")
	width := flag.Float64("width", 0, "Plate width in mm (overrides config)")
	height := flag.Float64("height", 0, "Plate height in mm (overrides config)")
	spacing := flag.Float64("spacing", 0, "Grid spacing in mm (overrides config)")
	minHole := flag.Float64("min", -1, "Minimum hole diameter in mm (overrides config)")
	maxHole := flag.Float64("max", -1, "Maximum hole diameter in mm (overrides config)")
	margin := flag.Float64("margin", -1, "Plate margin in mm (overrides config)")
	invert := flag.Bool("invert", false, "Invert the luminance mapping")
	enhance := flag.Bool("enhance", false, "Run contrast enhancement on the source image")
	showStats := flag.Bool("stats", false, "Print pattern statistics")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: plategen -image <path> [-out <path>] [-config <path>] [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := plate.DefaultConfig()
	if *configPath != "" {
		loaded, err := plate.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flag overrides
	if *width > 0 {
		cfg.WidthMM = *width
	}
	if *height > 0 {
		cfg.HeightMM = *height
	}
	if *spacing > 0 {
		cfg.SpacingMM = *spacing
	}
	if *minHole >= 0 {
		cfg.MinHoleMM = *minHole
	}
	if *maxHole >= 0 {
		cfg.MaxHoleMM = *maxHole
	}
	if *margin >= 0 {
		cfg.MarginMM = *margin
	}
	if *invert {
		cfg.Inverted = true
	}
	cfg = cfg.Clamp()

	layer, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", layer.Width(), layer.Height())

	if *enhance {
		if err := layer.Enhance(); err != nil {
			fmt.Fprintf(os.Stderr, "Enhancement failed, using raw image: %v\n", err)
		}
	}

	ds := halftone.Compute(layer.Source(), cfg)
	grid := plate.Plan(cfg)
	fmt.Printf("Plate: %gx%g mm, grid %dx%d, spacing %g mm\n",
		cfg.WidthMM, cfg.HeightMM, grid.Cols, grid.Rows, cfg.SpacingMM)
	fmt.Printf("Dots: %d\n", len(ds.Dots))

	out := *outPath
	if out == "" {
		out = export.Filename(cfg, time.Now())
	}
	if err := export.SaveSVG(out, ds); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write SVG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)

	if *showStats {
		st := ds.Stats()
		fmt.Printf("\nPattern statistics:\n")
		fmt.Printf("  Mean radius:   %.3f mm\n", st.MeanR)
		fmt.Printf("  Stddev radius: %.3f mm\n", st.StdDevR)
		fmt.Printf("  Radius range:  %.3f - %.3f mm\n", st.MinR, st.MaxR)
		fmt.Printf("  Open area:     %.1f%%\n", 100*st.OpenArea)
	}
}
