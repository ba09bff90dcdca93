package halftone

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/mat"

	"plate-perf/internal/plate"
)

const (
	// DefaultChunkBudget bounds how long one chunk of row processing may
	// run before the worker yields and re-checks its generation token.
	DefaultChunkBudget = 10 * time.Millisecond

	// DefaultCutoffMM is the emission cutoff: holes at or below this
	// radius are not worth fabricating and are dropped.
	DefaultCutoffMM = 0.1
)

// Progress reports how far a generation run has advanced.
type Progress struct {
	CompletedRows int
	TotalRows     int
	Generation    uint64
}

// Fraction returns the completed fraction in [0,1].
func (p Progress) Fraction() float64 {
	if p.TotalRows == 0 {
		return 1
	}
	return float64(p.CompletedRows) / float64(p.TotalRows)
}

// Engine drives the image-to-dot-pattern transformation. Each Generate
// call supersedes any run still in flight: the newest generation token is
// the only one allowed to publish, checked at every chunk boundary and at
// publish time. The published DotSet is replaced wholesale, never mutated.
type Engine struct {
	// ChunkBudget and CutoffMM may be adjusted before the first Generate
	// call; they are not safe to change while a run is in flight.
	ChunkBudget time.Duration
	CutoffMM    float64

	token atomic.Uint64

	mu      sync.Mutex
	current *DotSet

	onProgress func(Progress)
	onPublish  func(*DotSet)
}

// NewEngine creates an engine with default chunking parameters.
func NewEngine() *Engine {
	return &Engine{
		ChunkBudget: DefaultChunkBudget,
		CutoffMM:    DefaultCutoffMM,
	}
}

// OnProgress registers a callback invoked from the worker goroutine after
// each chunk. Register before the first Generate call.
func (e *Engine) OnProgress(fn func(Progress)) {
	e.onProgress = fn
}

// OnPublish registers a callback invoked from the worker goroutine when a
// run completes and its DotSet becomes current. Register before the first
// Generate call.
func (e *Engine) OnPublish(fn func(*DotSet)) {
	e.onPublish = fn
}

// Current returns the most recently published DotSet, or nil before the
// first run completes.
func (e *Engine) Current() *DotSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Generate starts a new generation run for the given image and config,
// superseding any run in progress. It returns immediately with the new
// generation token; results arrive through OnPublish. The config must
// already be clamped/validated at the configuration boundary.
func (e *Engine) Generate(src image.Image, cfg plate.Config) uint64 {
	tok := e.token.Add(1)
	go e.run(tok, src, cfg)
	return tok
}

func (e *Engine) run(tok uint64, src image.Image, cfg plate.Config) {
	grid := plate.Plan(cfg)
	if grid.Empty() {
		// Degenerate geometry is not an error: publish an empty set.
		e.reportProgress(Progress{Generation: tok})
		e.publish(tok, &DotSet{Config: cfg, Generation: tok})
		return
	}

	// One full-image resample, not chunked. Bounded by the grid
	// resolution, not the source pixel count per cell.
	lum := SampleLuminance(src, grid.Cols, grid.Rows)

	dots := make([]Dot, 0, grid.CellCount())
	deadline := time.Now().Add(e.ChunkBudget)

	for row := 0; row < grid.Rows; row++ {
		appendRow(&dots, lum, cfg, row, grid.Cols, e.CutoffMM)

		if time.Now().After(deadline) {
			if e.token.Load() != tok {
				// Superseded: discard partial work silently.
				return
			}
			e.reportProgress(Progress{CompletedRows: row + 1, TotalRows: grid.Rows, Generation: tok})
			runtime.Gosched()
			deadline = time.Now().Add(e.ChunkBudget)
		}
	}

	if e.token.Load() != tok {
		return
	}
	e.reportProgress(Progress{CompletedRows: grid.Rows, TotalRows: grid.Rows, Generation: tok})
	e.publish(tok, &DotSet{
		Dots:       dots,
		Cols:       grid.Cols,
		Rows:       grid.Rows,
		Config:     cfg,
		Generation: tok,
	})
}

// publish installs ds as the current set iff its token is still the
// newest. Last writer wins by token, not by completion time.
func (e *Engine) publish(tok uint64, ds *DotSet) {
	e.mu.Lock()
	if e.token.Load() != tok {
		e.mu.Unlock()
		return
	}
	e.current = ds
	cb := e.onPublish
	e.mu.Unlock()

	if cb != nil {
		cb(ds)
	}
}

func (e *Engine) reportProgress(p Progress) {
	if e.onProgress != nil {
		e.onProgress(p)
	}
}

func appendRow(dots *[]Dot, lum *mat.Dense, cfg plate.Config, row, cols int, cutoff float64) {
	for col := 0; col < cols; col++ {
		r := Radius(lum.At(row, col), cfg)
		if r > cutoff {
			x, y := plate.CellCenter(cfg, col, row)
			*dots = append(*dots, Dot{X: x, Y: y, R: r})
		}
	}
}

// Compute runs one full generation synchronously with no chunking or
// cancellation. It is the reference path used by the CLI and by tests;
// Engine runs produce identical dot sequences for identical inputs.
func Compute(src image.Image, cfg plate.Config) *DotSet {
	grid := plate.Plan(cfg)
	ds := &DotSet{Cols: grid.Cols, Rows: grid.Rows, Config: cfg}
	if grid.Empty() {
		return ds
	}

	lum := SampleLuminance(src, grid.Cols, grid.Rows)
	dots := make([]Dot, 0, grid.CellCount())
	for row := 0; row < grid.Rows; row++ {
		appendRow(&dots, lum, cfg, row, grid.Cols, DefaultCutoffMM)
	}
	ds.Dots = dots
	return ds
}
