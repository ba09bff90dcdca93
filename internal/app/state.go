// Package app provides application state, events, and run scheduling.
package app

import (
	"sync"
	"time"

	"plate-perf/internal/halftone"
	"plate-perf/internal/image"
	"plate-perf/internal/plate"
)

// DebounceDelay is how long configuration changes are coalesced before a
// new generation run starts. Slider drags produce a burst of changes; only
// the settled value is worth computing.
const DebounceDelay = 300 * time.Millisecond

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventConfigChanged
	EventPatternPublished
	EventProgress
	EventLanguageChanged
	EventThemeChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the source image, the plate
// configuration, and the pattern engine with its latest output.
type State struct {
	mu sync.RWMutex

	Config plate.Config
	Source *image.Layer

	// EnhancePass controls whether the gocv preprocessing runs on the
	// source before sampling.
	EnhancePass bool

	engine  *halftone.Engine
	pattern *halftone.DotSet

	regenMu    sync.Mutex
	regenTimer *time.Timer

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with default configuration.
func NewState() *State {
	s := &State{
		Config:    plate.DefaultConfig(),
		engine:    halftone.NewEngine(),
		listeners: make(map[EventType][]EventListener),
	}

	s.engine.OnProgress(func(p halftone.Progress) {
		s.Emit(EventProgress, p)
	})
	s.engine.OnPublish(func(ds *halftone.DotSet) {
		s.mu.Lock()
		s.pattern = ds
		s.mu.Unlock()
		s.Emit(EventPatternPublished, ds)
	})

	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type. Engine events
// arrive from the worker goroutine; listeners that touch UI must hop to
// the UI thread themselves.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Pattern returns the most recently published dot set, or nil.
func (s *State) Pattern() *halftone.DotSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pattern
}

// Engine exposes the pattern engine.
func (s *State) Engine() *halftone.Engine {
	return s.engine
}

// LoadImage loads a source image and schedules a generation run.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Source = layer
	enhance := s.EnhancePass
	s.mu.Unlock()

	if enhance {
		// Preprocessing failure falls back to the raw image.
		_ = layer.Enhance()
	}

	s.Emit(EventImageLoaded, layer)
	s.ScheduleGenerate()
	return nil
}

// SetConfig clamps and installs a new plate configuration, then schedules
// a generation run.
func (s *State) SetConfig(cfg plate.Config) {
	cfg = cfg.Clamp()

	s.mu.Lock()
	s.Config = cfg
	s.mu.Unlock()

	s.Emit(EventConfigChanged, cfg)
	s.ScheduleGenerate()
}

// ConfigSnapshot returns a copy of the current configuration.
func (s *State) ConfigSnapshot() plate.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Config
}

// SetEnhancePass toggles source preprocessing and schedules a rerun.
func (s *State) SetEnhancePass(enabled bool) {
	s.mu.Lock()
	s.EnhancePass = enabled
	layer := s.Source
	s.mu.Unlock()

	if layer != nil {
		if enabled {
			_ = layer.Enhance()
		} else {
			layer.ClearEnhanced()
		}
	}
	s.ScheduleGenerate()
}

// ScheduleGenerate requests a generation run after the debounce delay.
// Calls within the delay window coalesce into a single run; the engine's
// token handling copes with runs that are superseded mid-flight anyway.
func (s *State) ScheduleGenerate() {
	s.regenMu.Lock()
	defer s.regenMu.Unlock()

	if s.regenTimer != nil {
		s.regenTimer.Stop()
	}
	s.regenTimer = time.AfterFunc(DebounceDelay, s.generateNow)
}

func (s *State) generateNow() {
	s.mu.RLock()
	layer := s.Source
	cfg := s.Config
	s.mu.RUnlock()

	if layer == nil {
		// No input, no run: "no image" is not an error state.
		return
	}
	s.engine.Generate(layer.Source(), cfg)
}
