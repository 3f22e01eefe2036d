package cmd

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/mktimg/internal/dataurl"
	"github.com/AnyUserName/mktimg/internal/fixtures"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/loader"
	"github.com/AnyUserName/mktimg/internal/manifest"
	"github.com/AnyUserName/mktimg/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDefaultOutPath(t *testing.T) {
	assert.Equal(t, filepath.Join("photos", "front.min.jpg"), defaultOutPath("photos/front.JPG", format.JPEG))
	assert.Equal(t, "logo.min.png", defaultOutPath("logo", format.PNG))
}

func TestCompressCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir, "banner.png", fixtures.PNG(fixtures.AlphaGradient(120, 60)))
	out := filepath.Join(dir, "banner.out.png")

	require.NoError(t, execute(t, "compress", in, "-o", out, "--max-width", "60", "-q", "0.5"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	bm, err := loader.Decode(data, format.PNG)
	require.NoError(t, err)
	assert.Equal(t, 60, bm.Width)
	assert.Equal(t, 30, bm.Height)
}

func TestCompressCommandStrict(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir, "a.jpg", fixtures.JPEG(fixtures.Gradient(20, 20)))

	err := execute(t, "compress", in, "-o", filepath.Join(dir, "x.jpg"), "--max-width", "0", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compression parameters")
}

func TestCompressCommandRejectsText(t *testing.T) {
	dir := t.TempDir()
	in := writeFixture(t, dir, "notes.txt", []byte("not an image at all"))

	err := execute(t, "compress", in, "-o", filepath.Join(dir, "x"), "--max-width", "100", "--strict=false")
	require.Error(t, err)
}

func TestDataURLCommandRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	in := writeFixture(t, dir, "blob.bin", payload)

	encoded := writeFixture(t, dir, "blob.txt", []byte(dataurlFor(t, in)+"\n"))
	out := filepath.Join(dir, "blob.out")

	require.NoError(t, execute(t, "dataurl", encoded, "--decode", "-o", out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func dataurlFor(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return dataurl.Prefix("application/octet-stream") + base64.StdEncoding.EncodeToString(data)
}

func TestProductCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	in := writeFixture(t, dir, "phone.jpg", fixtures.JPEG(fixtures.Gradient(800, 600)))

	args := []string{"product", in, "-o", outDir, "-p", "minimal", "--thumb-preset", "thumbnail", "--video-ref", ""}
	require.NoError(t, execute(t, args...))
	// Same photo again is deduplicated by its content-addressed name.
	require.NoError(t, execute(t, args...))

	m, err := manifest.ReadJSON(filepath.Join(outDir, manifest.FileName))
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)

	for _, e := range m.Entries {
		assert.Equal(t, product.TypeImage, e.Record.Type)
		assert.True(t, strings.HasPrefix(e.Record.ThumbnailDataURL, "data:image/jpeg;base64,"))
		assert.Equal(t, 800, e.Full.Width)
		assert.Equal(t, 320, e.Thumb.Width)
		assert.Equal(t, 240, e.Thumb.Height)
		assert.FileExists(t, filepath.Join(outDir, e.Record.FullImageRef))
	}

	assert.Empty(t, manifest.Validate(m, outDir))
	require.NoError(t, execute(t, "validate", filepath.Join(outDir, manifest.FileName)))
	require.NoError(t, execute(t, "stats", outDir))
}

func TestProductCommandVideo(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	in := writeFixture(t, dir, "cover.png", fixtures.PNG(fixtures.Gradient(64, 64)))

	require.NoError(t, execute(t, "product", in, "-o", outDir, "--video-ref", "https://youtu.be/abc"))

	m, err := manifest.ReadJSON(filepath.Join(outDir, manifest.FileName))
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	for _, e := range m.Entries {
		assert.Equal(t, product.TypeYouTube, e.Record.Type)
		assert.Nil(t, e.Full)
		assert.Equal(t, "https://youtu.be/abc", e.Record.VideoRef)
	}
}
