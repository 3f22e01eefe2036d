package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Validate checks record invariants and that every referenced full image
// exists under baseDir with the recorded size.
func Validate(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for id, e := range m.Entries {
		if id != e.Record.ID {
			errs = append(errs, fmt.Sprintf("entry %q: key does not match record id %q", id, e.Record.ID))
		}
		if err := e.Record.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: %v", id, err))
		}
		if e.Thumb.Width <= 0 || e.Thumb.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid thumbnail dimensions %dx%d",
				id, e.Thumb.Width, e.Thumb.Height))
		}

		if e.Full == nil {
			continue
		}
		if e.Full.MIME != e.Thumb.MIME {
			errs = append(errs, fmt.Sprintf("entry %q: full %s and thumbnail %s types differ",
				id, e.Full.MIME, e.Thumb.MIME))
		}

		ref := e.Record.FullImageRef
		if other, dup := seenPaths[ref]; dup && ref != "" {
			errs = append(errs, fmt.Sprintf("entry %q: duplicate full image %q (also %q)", id, ref, other))
		}
		seenPaths[ref] = id

		info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(ref)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: file not found: %s", id, ref))
		} else if e.Full.Size > 0 && info.Size() != e.Full.Size {
			errs = append(errs, fmt.Sprintf("entry %q: size mismatch: manifest=%d, disk=%d",
				id, e.Full.Size, info.Size()))
		}
	}

	if m.Stats.TotalEntries != len(m.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_entries mismatch: %d != %d",
			m.Stats.TotalEntries, len(m.Entries)))
	}

	return errs
}
