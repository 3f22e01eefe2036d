package profile

import (
	"sort"

	"github.com/AnyUserName/mktimg/internal/compress"
)

// Preset bundles compression parameters under a name.
type Preset struct {
	Name     string
	MaxWidth int
	Quality  float64 // 0-1
}

// Built-in presets.
var presets = map[string]Preset{
	"listing": {
		Name:     "listing",
		MaxWidth: compress.DefaultMaxWidth,
		Quality:  compress.DefaultQuality,
	},
	"listing-hq": {
		Name:     "listing-hq",
		MaxWidth: 2560,
		Quality:  0.9,
	},
	"thumbnail": {
		Name:     "thumbnail",
		MaxWidth: 320,
		Quality:  0.7,
	},
	"minimal": {
		Name:     "minimal",
		MaxWidth: 1280,
		Quality:  0.6,
	},
}

// Get returns a preset by name. Falls back to listing if unknown.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets["listing"]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in preset.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Names lists built-in preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Options converts the preset into compression options.
func (p Preset) Options(v compress.Validation) compress.Options {
	return compress.Options{MaxWidth: p.MaxWidth, Quality: p.Quality, Validation: v}
}
