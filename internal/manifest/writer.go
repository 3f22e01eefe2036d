package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/mktimg/internal/product"
)

// New creates an empty manifest with defaults.
func New(preset string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Preset:      preset,
		BasePath:    "./",
		Entries:     make(map[string]Entry),
	}
}

// Add stores e under its record id.
func (m *Manifest) Add(e Entry) {
	m.Entries[e.Record.ID] = e
}

// ComputeStats recalculates aggregate statistics from entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalEntries = len(m.Entries)
	for _, e := range m.Entries {
		switch e.Record.Type {
		case product.TypeImage:
			s.TotalImages++
		case product.TypeYouTube:
			s.TotalVideos++
		}
		s.TotalInputBytes += e.Thumb.OriginalSize
		s.ThumbnailBytes += int64(len(e.Record.ThumbnailDataURL))
		if e.Full != nil {
			s.TotalOutputBytes += e.Full.Size
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest from path.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]Entry)
	}
	return &m, nil
}

// LoadOrNew reads path, or starts a fresh manifest if it does not exist.
func LoadOrNew(path, preset string) (*Manifest, error) {
	m, err := ReadJSON(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(preset), nil
	}
	if err != nil {
		return nil, err
	}
	m.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	m.Preset = preset
	return m, nil
}
