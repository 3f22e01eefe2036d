package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/mktimg/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate an mktimg manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	errs := manifest.Validate(m, filepath.Dir(manifestPath))
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d entries (%d images, %d videos), all files present\n",
			m.Stats.TotalEntries, m.Stats.TotalImages, m.Stats.TotalVideos)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}
