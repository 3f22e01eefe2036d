package manifest

import "github.com/AnyUserName/mktimg/internal/product"

// Manifest is the local sidecar written by `mktimg product`. It lists
// every prepared product-image record alongside the files it refers to.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Preset      string           `json:"preset"`
	BasePath    string           `json:"base_path"`
	Entries     map[string]Entry `json:"entries"` // keyed by record id
	Stats       Stats            `json:"stats"`
}

// Entry pairs a record with what was done to produce it.
type Entry struct {
	Source string        `json:"source"` // source file name as given
	Record product.Image `json:"record"`
	Full   *Encoded      `json:"full,omitempty"` // nil for youtube entries
	Thumb  Encoded       `json:"thumb"`
}

// Encoded describes one pipeline output.
type Encoded struct {
	MIME         string `json:"mime"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	OriginalSize int64  `json:"original_size"`
	Size         int64  `json:"size"`           // encoded bytes
	Hash         string `json:"hash,omitempty"` // first 16 hex chars of xxhash64
}

// Stats aggregates build metrics.
type Stats struct {
	TotalEntries     int   `json:"total_entries"`
	TotalImages      int   `json:"total_images"`
	TotalVideos      int   `json:"total_videos"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	ThumbnailBytes   int64 `json:"thumbnail_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest file name inside an output directory.
const FileName = "mktimg.manifest.json"
