package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/mktimg/internal/async"
	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/compress"
	"github.com/AnyUserName/mktimg/internal/dataurl"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/hasher"
	"github.com/AnyUserName/mktimg/internal/loader"
	"github.com/AnyUserName/mktimg/internal/manifest"
	"github.com/AnyUserName/mktimg/internal/product"
	"github.com/AnyUserName/mktimg/internal/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	productType     string
	productVideoRef string
)

var productCmd = &cobra.Command{
	Use:   "product <image>",
	Short: "Prepare a product gallery entry from one photo",
	Long: `Compresses the photo with --preset into a content-addressed file and
with --thumb-preset into an inline thumbnail data URL, then records the
resulting product image entry in mktimg.manifest.json.

With --video-ref the photo only supplies the thumbnail of a youtube entry.

Output filenames are content-addressed: <name>.<w>.<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runProduct,
}

func init() {
	f := productCmd.Flags()
	f.StringP("out", "o", "./mktimg_out", "output directory")
	f.StringP("preset", "p", "listing", "preset for the full image")
	f.String("thumb-preset", "thumbnail", "preset for the thumbnail")
	f.Bool("strict", false, "reject invalid preset parameters")
	f.StringVarP(&productType, "type", "t", "", "declared MIME type (default: sniffed)")
	f.StringVar(&productVideoRef, "video-ref", "", "youtube reference; creates a video entry")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()
	flags := cmd.Flags()

	outDir, err := filepath.Abs(stringSetting(flags, "out", "product.out"))
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	full := profile.Get(stringSetting(flags, "preset", "product.preset"))
	thumb := profile.Get(stringSetting(flags, "thumb-preset", "product.thumb_preset"))
	validation := compress.ValidateNone
	if boolSetting(flags, "strict", "compress.strict") {
		validation = compress.ValidateStrict
	}

	log.Debug().Str("output", outDir).Str("preset", full.Name).Str("thumb_preset", thumb.Name).Msg("product")
	for _, p := range []profile.Preset{full, thumb} {
		if !profile.Known(p.Name) {
			log.Warn().Str("preset", p.Name).Msg("unknown preset, using listing defaults")
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	src, err := blob.NewFile(input, productType)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	// Two independent pipeline calls over the same file.
	thumbCh := compress.CompressAsync(src, thumb.Options(validation))
	var fullCh <-chan async.Result[*blob.Bytes]
	if productVideoRef == "" {
		fullCh = compress.CompressAsync(src, full.Options(validation))
	}

	thumbOut, err := async.Await(thumbCh)
	if err != nil {
		return fmt.Errorf("thumbnail: %w", err)
	}
	thumbURL, err := dataurl.Encode(thumbOut)
	if err != nil {
		return fmt.Errorf("thumbnail data url: %w", err)
	}
	thumbInfo, err := describe(thumbOut, info.Size())
	if err != nil {
		return err
	}

	entry := manifest.Entry{Source: filepath.Base(input), Thumb: thumbInfo}

	if fullCh == nil {
		entry.Record, err = product.NewVideo(thumbURL, productVideoRef)
		if err != nil {
			return fmt.Errorf("video entry: %w", err)
		}
	} else {
		fullOut, err := async.Await(fullCh)
		if err != nil {
			return fmt.Errorf("full image: %w", err)
		}
		fullInfo, err := describe(fullOut, info.Size())
		if err != nil {
			return err
		}

		key := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		ref := hasher.FileName(key, fullInfo.Width, fullInfo.Height, fullInfo.Hash, format.Extension(fullOut.Type()))
		if err := os.WriteFile(filepath.Join(outDir, ref), fullOut.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", ref, err)
		}

		entry.Full = &fullInfo
		entry.Record, err = product.NewImage(thumbURL, ref)
		if err != nil {
			return fmt.Errorf("image entry: %w", err)
		}
	}

	manifestPath := filepath.Join(outDir, manifest.FileName)
	m, err := manifest.LoadOrNew(manifestPath, full.Name)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if existing, ok := findByRef(m, entry.Record.FullImageRef); ok {
		log.Info().Str("id", existing.Record.ID).Str("ref", existing.Record.FullImageRef).
			Msg("identical image already recorded")
		entry = existing
	} else {
		m.Add(entry)
	}
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printProductReport(entry, info.Size(), time.Since(start))

	data, err := json.MarshalIndent(entry.Record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// describe measures an encoded output for the manifest.
func describe(b *blob.Bytes, originalSize int64) (manifest.Encoded, error) {
	bm, err := loader.Decode(b.Data, b.Type())
	if err != nil {
		return manifest.Encoded{}, fmt.Errorf("inspect output: %w", err)
	}
	return manifest.Encoded{
		MIME:         b.Type(),
		Width:        bm.Width,
		Height:       bm.Height,
		OriginalSize: originalSize,
		Size:         b.Size(),
		Hash:         hasher.ContentHash(b.Data, 16),
	}, nil
}

func findByRef(m *manifest.Manifest, ref string) (manifest.Entry, bool) {
	if ref == "" {
		return manifest.Entry{}, false
	}
	for _, e := range m.Entries {
		if e.Record.FullImageRef == ref {
			return e, true
		}
	}
	return manifest.Entry{}, false
}

func printProductReport(e manifest.Entry, inputSize int64, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              mktimg product ready                ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	fmt.Printf("  Entry:       %s (%s)\n", e.Record.ID, e.Record.Type)
	fmt.Printf("  Source:      %s, %s\n", e.Source, formatBytes(inputSize))
	if e.Full != nil {
		fmt.Printf("  Full image:  %s  %dx%d  %s\n",
			e.Record.FullImageRef, e.Full.Width, e.Full.Height, formatBytes(e.Full.Size))
	} else {
		fmt.Printf("  Video:       %s\n", e.Record.VideoRef)
	}
	fmt.Printf("  Thumbnail:   %dx%d  %s  (data URL %s)\n",
		e.Thumb.Width, e.Thumb.Height, formatBytes(e.Thumb.Size),
		formatBytes(int64(len(e.Record.ThumbnailDataURL))))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}
