package plate

import "sort"

// Preset is a named plate size with sensible hole defaults.
type Preset struct {
	Name   string
	Config Config
}

// Registry of known plate presets
var registry = make(map[string]Preset)

// RegisterPreset adds a plate preset to the registry.
func RegisterPreset(p Preset) {
	registry[p.Name] = p
}

// GetPreset returns a preset by name, or false if unknown.
func GetPreset(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// ListPresets returns all registered preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func preset(name string, w, h float64) Preset {
	cfg := DefaultConfig()
	cfg.WidthMM = w
	cfg.HeightMM = h
	return Preset{Name: name, Config: cfg}
}

func init() {
	// Register built-in plate sizes
	RegisterPreset(preset("Business Card (85x55)", 85, 55))
	RegisterPreset(preset("Postcard (148x105)", 148, 105))
	RegisterPreset(preset("Coaster (95x95)", 95, 95))
	RegisterPreset(preset("A6 (148x105)", 148, 105))
	RegisterPreset(preset("A5 (210x148)", 210, 148))
	RegisterPreset(preset("Square 100 (100x100)", 100, 100))
}
