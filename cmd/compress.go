package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/compress"
	"github.com/AnyUserName/mktimg/internal/dataurl"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/loader"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	compressOut     string
	compressType    string
	compressDataURL bool
)

var compressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Resize and re-encode one image in its own format",
	Long: `Scales the image down to --max-width (never up), composites it onto
a white background and encodes it in the same format at --quality.

Quality is a factor between 0 and 1 and only affects lossy formats
(JPEG, WebP). Parameters are passed through unchecked unless --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	f := compressCmd.Flags()
	f.StringVarP(&compressOut, "out", "o", "", "output file (default <name>.min.<ext>)")
	f.StringVarP(&compressType, "type", "t", "", "declared MIME type (default: sniffed)")
	f.BoolVar(&compressDataURL, "data-url", false, "print the result as a data URL instead of writing a file")
	f.Int("max-width", 1920, "maximum output width in pixels")
	f.Float64P("quality", "q", 0.8, "encoding quality 0-1")
	f.Bool("strict", false, "reject non-positive width and quality outside [0,1]")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	opts := compressOptions(cmd)
	log.Debug().Str("input", input).Int("max_width", opts.MaxWidth).
		Float64("quality", opts.Quality).Stringer("validation", opts.Validation).Msg("compress")

	src, err := blob.NewFile(input, compressType)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	out, err := compress.Compress(src, opts)
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}

	if compressDataURL {
		s, err := dataurl.Encode(out)
		if err != nil {
			return fmt.Errorf("data url: %w", err)
		}
		fmt.Println(s)
		return nil
	}

	outPath := compressOut
	if outPath == "" {
		outPath = defaultOutPath(input, out.Type())
	}
	if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	bm, err := loader.Decode(out.Data, out.Type())
	if err != nil {
		return fmt.Errorf("inspect output: %w", err)
	}

	ratio := float64(out.Size()) / float64(max(info.Size(), 1)) * 100
	fmt.Printf("  %s → %s\n", input, outPath)
	fmt.Printf("  Type:   %s\n", out.Type())
	fmt.Printf("  Size:   %dx%d\n", bm.Width, bm.Height)
	fmt.Printf("  Bytes:  %s → %s (%.1f%% of original)\n",
		formatBytes(info.Size()), formatBytes(out.Size()), ratio)
	fmt.Printf("  Time:   %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func compressOptions(cmd *cobra.Command) compress.Options {
	flags := cmd.Flags()
	opts := compress.Options{
		MaxWidth: intSetting(flags, "max-width", "compress.max_width"),
		Quality:  floatSetting(flags, "quality", "compress.quality"),
	}
	if boolSetting(flags, "strict", "compress.strict") {
		opts.Validation = compress.ValidateStrict
	}
	return opts
}

// defaultOutPath turns photos/front.JPG into front.min.jpg in the same dir.
func defaultOutPath(input, mime string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), base+".min."+format.Extension(mime))
}
