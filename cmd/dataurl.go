package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/dataurl"
	"github.com/spf13/cobra"
)

var (
	dataURLType   string
	dataURLDecode bool
	dataURLOut    string
)

var dataURLCmd = &cobra.Command{
	Use:   "dataurl <file>",
	Short: "Print any file as a base64 data URL, or decode one back",
	Long: `Encodes the file as data:<mime>;base64,<payload>. The MIME type is
sniffed unless --type is given.

With --decode the file must contain a data URL; its payload is written
to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runDataURL,
}

func init() {
	dataURLCmd.Flags().StringVarP(&dataURLType, "type", "t", "", "declared MIME type (default: sniffed)")
	dataURLCmd.Flags().BoolVarP(&dataURLDecode, "decode", "d", false, "decode a data URL file")
	dataURLCmd.Flags().StringVarP(&dataURLOut, "out", "o", "", "output file for --decode")
	rootCmd.AddCommand(dataURLCmd)
}

func runDataURL(_ *cobra.Command, args []string) error {
	input := args[0]

	if dataURLDecode {
		if dataURLOut == "" {
			return fmt.Errorf("--decode requires --out")
		}
		raw, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}
		b, err := dataurl.Decode(strings.TrimSpace(string(raw)))
		if err != nil {
			return fmt.Errorf("decode %s: %w", input, err)
		}
		if err := os.WriteFile(dataURLOut, b.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dataURLOut, err)
		}
		fmt.Printf("  %s → %s (%s, %s)\n", input, dataURLOut, b.Type(), formatBytes(b.Size()))
		return nil
	}

	src, err := blob.NewFile(input, dataURLType)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	s, err := dataurl.Encode(src)
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}
	fmt.Println(s)
	return nil
}
