//go:build ignore

// gen_fixtures creates small listing photos for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/mktimg/internal/fixtures"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	files := map[string][]byte{
		// Wider than the listing preset, so it is scaled to 1920x1440.
		"camera.jpg": fixtures.JPEG(fixtures.Gradient(4000, 3000)),
		// Already small; passes through at 800x600.
		"mug.png": fixtures.PNG(fixtures.Gradient(800, 600)),
		// Transparent quadrant comes out white.
		"sticker.png": fixtures.PNG(fixtures.TransparentPatch(400, 400)),
		"fade.png":    fixtures.PNG(fixtures.AlphaGradient(300, 100)),
		"flyer.gif":   fixtures.GIF(fixtures.Gradient(640, 480)),
		// Not an image; compress must reject it.
		"notes.txt": []byte("this is not a photo\n"),
	}

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			panic(err)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(files), dir)
}
