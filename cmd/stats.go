package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a product output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	m.ComputeStats()

	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Preset:           %s\n", m.Preset)
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Entries:          %d (%d images, %d videos)\n", s.TotalEntries, s.TotalImages, s.TotalVideos)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Full images:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Inline thumbs:    %s\n", formatBytes(s.ThumbnailBytes))
	if s.TotalInputBytes > 0 && s.TotalImages > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, e := range m.Entries {
		fs := formatStats[format.Name(e.Thumb.MIME)]
		fs.count++
		if e.Full != nil {
			fs.bytes += e.Full.Size
		}
		formatStats[format.Name(e.Thumb.MIME)] = fs
	}
	var names []string
	for n := range formatStats {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Println("  Format breakdown:")
	for _, n := range names {
		fs := formatStats[n]
		fmt.Printf("    %-6s  %4d entries  %s\n", n, fs.count, formatBytes(fs.bytes))
	}
	fmt.Println()

	// Warnings.
	var warnings []string
	for id, e := range m.Entries {
		if err := e.Record.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("entry %q: %v", id, err))
		}
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
