// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"plate-perf/internal/plate"
)

const prefsFile = "preferences.json"

// Prefs stores application preferences: UI choices plus the last plate
// configuration, so a restarted session picks up where it left off.
type Prefs struct {
	mu    sync.RWMutex
	path  string
	dirty bool
	data  data
}

type data struct {
	Language      string        `json:"language,omitempty"`
	DarkTheme     bool          `json:"darkTheme"`
	LastImage     string        `json:"lastImage,omitempty"`
	LastDirectory string        `json:"lastDirectory,omitempty"`
	Plate         *plate.Config `json:"plate,omitempty"`
}

// Load reads preferences from ~/.config/plate-perf/preferences.json.
// Returns a Prefs with defaults if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "plate-perf")
	p.path = filepath.Join(dir, prefsFile)

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(raw, &p.data)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.Lock()
	raw, err := json.MarshalIndent(p.data, "", "  ")
	p.dirty = false
	p.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, raw, 0o644)
}

// SaveIfChanged writes preferences only if something was modified since
// the last save.
func (p *Prefs) SaveIfChanged() error {
	p.mu.RLock()
	dirty := p.dirty
	p.mu.RUnlock()
	if !dirty {
		return nil
	}
	return p.Save()
}

// Language returns the saved UI language code, or "" if not set.
func (p *Prefs) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.Language
}

// SetLanguage stores the UI language code.
func (p *Prefs) SetLanguage(lang string) {
	p.mu.Lock()
	p.data.Language = lang
	p.dirty = true
	p.mu.Unlock()
}

// DarkTheme reports whether the dark theme was selected.
func (p *Prefs) DarkTheme() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.DarkTheme
}

// SetDarkTheme stores the theme choice.
func (p *Prefs) SetDarkTheme(dark bool) {
	p.mu.Lock()
	p.data.DarkTheme = dark
	p.dirty = true
	p.mu.Unlock()
}

// LastImage returns the path of the most recently opened image.
func (p *Prefs) LastImage() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.LastImage
}

// SetLastImage stores the most recently opened image path.
func (p *Prefs) SetLastImage(path string) {
	p.mu.Lock()
	p.data.LastImage = path
	p.dirty = true
	p.mu.Unlock()
}

// LastDirectory returns the directory of the last file dialog, or "".
func (p *Prefs) LastDirectory() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data.LastDirectory
}

// SetLastDirectory stores the directory for the next file dialog.
func (p *Prefs) SetLastDirectory(dir string) {
	p.mu.Lock()
	p.data.LastDirectory = dir
	p.dirty = true
	p.mu.Unlock()
}

// PlateConfig returns the saved plate configuration, or ok=false if none
// was ever saved.
func (p *Prefs) PlateConfig() (plate.Config, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.data.Plate == nil {
		return plate.Config{}, false
	}
	return *p.data.Plate, true
}

// SetPlateConfig stores the plate configuration.
func (p *Prefs) SetPlateConfig(cfg plate.Config) {
	p.mu.Lock()
	p.data.Plate = &cfg
	p.dirty = true
	p.mu.Unlock()
}
