package halftone

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"plate-perf/internal/plate"
)

func e2eConfig() plate.Config {
	return plate.Config{
		WidthMM: 100, HeightMM: 100, SpacingMM: 10,
		MinHoleMM: 1, MaxHoleMM: 6,
	}
}

func TestComputeMidGray(t *testing.T) {
	img := uniformImage(400, 400, color.RGBA{128, 128, 128, 255})
	ds := Compute(img, e2eConfig())

	if len(ds.Dots) != 100 {
		t.Fatalf("dot count = %d, want 100", len(ds.Dots))
	}

	// 128/255 gray is the closest representable mid-gray; r = 1.75 for
	// an exact 0.5 sample.
	for _, d := range ds.Dots {
		if math.Abs(d.R-1.75) > 0.02 {
			t.Fatalf("radius = %g, want ~1.75", d.R)
		}
	}

	// Corners of the dot lattice.
	first, last := ds.Dots[0], ds.Dots[99]
	if first.X != 5 || first.Y != 5 {
		t.Errorf("first dot at (%g,%g), want (5,5)", first.X, first.Y)
	}
	if last.X != 95 || last.Y != 95 {
		t.Errorf("last dot at (%g,%g), want (95,95)", last.X, last.Y)
	}
}

func TestComputeWhiteAndBlack(t *testing.T) {
	white := uniformImage(50, 50, color.RGBA{255, 255, 255, 255})
	ds := Compute(white, e2eConfig())
	if len(ds.Dots) != 100 {
		t.Fatalf("white: dot count = %d, want 100", len(ds.Dots))
	}
	for _, d := range ds.Dots {
		// min hole radius 0.5 is above the 0.1 cutoff, so all cells emit.
		if math.Abs(d.R-0.5) > 0.02 {
			t.Fatalf("white: radius = %g, want ~0.5", d.R)
		}
	}

	black := uniformImage(50, 50, color.RGBA{0, 0, 0, 255})
	ds = Compute(black, e2eConfig())
	if len(ds.Dots) != 100 {
		t.Fatalf("black: dot count = %d, want 100", len(ds.Dots))
	}
	for _, d := range ds.Dots {
		if math.Abs(d.R-3) > 0.02 {
			t.Fatalf("black: radius = %g, want ~3", d.R)
		}
	}
}

func TestComputeCutoffSuppression(t *testing.T) {
	// White cells map to radius 0 and are suppressed; black cells stay.
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 100 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	cfg := e2eConfig()
	cfg.MinHoleMM = 0
	ds := Compute(img, cfg)

	cells := ds.Cols * ds.Rows
	if len(ds.Dots) == 0 || len(ds.Dots) >= cells {
		t.Fatalf("dot count = %d, want strictly between 0 and %d", len(ds.Dots), cells)
	}
	for _, d := range ds.Dots {
		if d.R <= DefaultCutoffMM {
			t.Fatalf("emitted dot below cutoff: r=%g", d.R)
		}
	}
}

func TestComputeRowMajorOrder(t *testing.T) {
	// A diagonal gradient exercises varied radii without affecting order.
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			v := uint8((x + y) / 2)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}

	cfg := e2eConfig()
	cfg.SpacingMM = 3
	ds := Compute(img, cfg)
	if ds.Empty() {
		t.Fatal("expected dots")
	}

	prev := ds.Dots[0]
	for _, d := range ds.Dots[1:] {
		if d.Y < prev.Y {
			t.Fatalf("y went backwards: %g after %g", d.Y, prev.Y)
		}
		if d.Y == prev.Y && d.X <= prev.X {
			t.Fatalf("x not increasing within row: %g after %g", d.X, prev.X)
		}
		prev = d
	}
}

func TestComputeDegeneratePlate(t *testing.T) {
	cfg := plate.Config{
		WidthMM: 500, HeightMM: 500, SpacingMM: 10,
		MinHoleMM: 1, MaxHoleMM: 6, MarginMM: 300,
	}
	img := uniformImage(100, 100, color.RGBA{0, 0, 0, 255})
	ds := Compute(img, cfg)
	if !ds.Empty() {
		t.Fatalf("degenerate plate produced %d dots", len(ds.Dots))
	}
}

func TestEngineMatchesCompute(t *testing.T) {
	img := uniformImage(300, 300, color.RGBA{70, 130, 180, 255})
	cfg := e2eConfig()
	cfg.SpacingMM = 2

	eng := NewEngine()
	published := make(chan *DotSet, 1)
	eng.OnPublish(func(ds *DotSet) { published <- ds })
	eng.Generate(img, cfg)

	var got *DotSet
	select {
	case got = <-published:
	case <-time.After(10 * time.Second):
		t.Fatal("generation did not complete")
	}

	want := Compute(img, cfg)
	if len(got.Dots) != len(want.Dots) {
		t.Fatalf("engine produced %d dots, sync path %d", len(got.Dots), len(want.Dots))
	}
	for i := range got.Dots {
		if got.Dots[i] != want.Dots[i] {
			t.Fatalf("dot %d differs: %v vs %v", i, got.Dots[i], want.Dots[i])
		}
	}
}

func TestEngineSupersede(t *testing.T) {
	cfg := plate.Config{
		WidthMM: 400, HeightMM: 400, SpacingMM: 1,
		MinHoleMM: 0.5, MaxHoleMM: 0.9,
	}

	eng := NewEngine()
	// Force a token check after every row so run A has plenty of
	// opportunities to observe that it was superseded.
	eng.ChunkBudget = time.Nanosecond

	published := make(chan *DotSet, 4)
	eng.OnPublish(func(ds *DotSet) { published <- ds })

	imgA := uniformImage(64, 64, color.RGBA{0, 0, 0, 255})
	imgB := uniformImage(64, 64, color.RGBA{255, 255, 255, 255})

	eng.Generate(imgA, cfg)
	tokB := eng.Generate(imgB, cfg)

	deadline := time.After(30 * time.Second)
	var final *DotSet
	for final == nil {
		select {
		case ds := <-published:
			if ds.Generation > tokB {
				t.Fatalf("unexpected generation %d", ds.Generation)
			}
			if ds.Generation == tokB {
				final = ds
			}
		case <-deadline:
			t.Fatal("run B never published")
		}
	}

	if got := eng.Current(); got != final {
		t.Fatal("current set is not run B's output")
	}

	// The published set must match a fresh computation of B's inputs,
	// with no dots from run A.
	want := Compute(imgB, cfg)
	if len(final.Dots) != len(want.Dots) {
		t.Fatalf("dot count = %d, want %d", len(final.Dots), len(want.Dots))
	}
	for i := range final.Dots {
		if final.Dots[i] != want.Dots[i] {
			t.Fatalf("dot %d differs: %v vs %v", i, final.Dots[i], want.Dots[i])
		}
	}
}

func TestEngineEmptyGridPublishesImmediately(t *testing.T) {
	cfg := plate.Config{
		WidthMM: 500, HeightMM: 500, SpacingMM: 10,
		MinHoleMM: 1, MaxHoleMM: 6, MarginMM: 300,
	}

	eng := NewEngine()
	published := make(chan *DotSet, 1)
	eng.OnPublish(func(ds *DotSet) { published <- ds })
	eng.Generate(uniformImage(32, 32, color.RGBA{0, 0, 0, 255}), cfg)

	select {
	case ds := <-published:
		if !ds.Empty() {
			t.Fatalf("expected empty set, got %d dots", len(ds.Dots))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("empty grid did not publish")
	}
}

func TestEngineProgressMonotonic(t *testing.T) {
	img := uniformImage(128, 128, color.RGBA{40, 40, 40, 255})
	cfg := e2eConfig()
	cfg.SpacingMM = 1

	eng := NewEngine()
	eng.ChunkBudget = time.Nanosecond

	reports := make(chan Progress, 1024)
	published := make(chan *DotSet, 1)
	eng.OnProgress(func(p Progress) { reports <- p })
	eng.OnPublish(func(ds *DotSet) { published <- ds })
	eng.Generate(img, cfg)

	select {
	case <-published:
	case <-time.After(30 * time.Second):
		t.Fatal("generation did not complete")
	}
	close(reports)

	last := -1.0
	var finalFrac float64
	for p := range reports {
		f := p.Fraction()
		if f < last {
			t.Fatalf("progress went backwards: %g after %g", f, last)
		}
		last = f
		finalFrac = f
	}
	if finalFrac != 1 {
		t.Fatalf("final progress = %g, want 1", finalFrac)
	}
}

func TestProgressFraction(t *testing.T) {
	if f := (Progress{CompletedRows: 5, TotalRows: 10}).Fraction(); f != 0.5 {
		t.Errorf("fraction = %g, want 0.5", f)
	}
	if f := (Progress{}).Fraction(); f != 1 {
		t.Errorf("empty-grid fraction = %g, want 1", f)
	}
}
