package compress

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/AnyUserName/mktimg/internal/async"
	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/encoder"
	"github.com/AnyUserName/mktimg/internal/fixtures"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfig(t *testing.T, b *blob.Bytes) image.Config {
	t.Helper()
	bm, err := loader.Decode(b.Data, b.MIME)
	require.NoError(t, err)
	return image.Config{Width: bm.Width, Height: bm.Height}
}

func TestCompressLargeJPEG(t *testing.T) {
	if testing.Short() {
		t.Skip("large fixture")
	}
	src := blob.NewBytes(fixtures.JPEG(fixtures.Gradient(4000, 3000)), format.JPEG)

	out, err := Compress(src, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, format.JPEG, out.Type())
	cfg := decodeConfig(t, out)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1440, cfg.Height)
}

func TestCompressNeverUpscales(t *testing.T) {
	src := blob.NewBytes(fixtures.PNG(fixtures.Gradient(800, 600)), format.PNG)

	out, err := Compress(src, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, format.PNG, out.Type())
	cfg := decodeConfig(t, out)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestCompressKeepsType(t *testing.T) {
	img := fixtures.Gradient(90, 60)
	webpData, err := (&encoder.WebPEncoder{}).Encode(img, 0.9)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{"jpeg", fixtures.JPEG(img), format.JPEG},
		{"png", fixtures.PNG(img), format.PNG},
		{"gif", fixtures.GIF(img), format.GIF},
		{"webp", webpData, format.WebP},
		{"alias kept verbatim", fixtures.JPEG(img), "image/jpg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Compress(blob.NewBytes(tc.data, tc.mime), Options{MaxWidth: 45, Quality: 0.7})
			require.NoError(t, err)
			assert.Equal(t, tc.mime, out.Type())
			assert.Equal(t, format.Normalize(tc.mime), format.Sniff(out.Data))

			cfg := decodeConfig(t, out)
			assert.Equal(t, 45, cfg.Width)
			assert.Equal(t, 30, cfg.Height)
		})
	}
}

func TestCompressSniffedTypeWhenUndeclared(t *testing.T) {
	src := blob.NewBytes(fixtures.PNG(fixtures.Gradient(10, 10)), "")
	out, err := Compress(src, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, format.PNG, out.Type())
}

func TestCompressFlattensTransparencyOntoWhite(t *testing.T) {
	src := blob.NewBytes(fixtures.PNG(fixtures.TransparentPatch(64, 64)), format.PNG)

	for _, maxWidth := range []int{1920, 32} {
		out, err := Compress(src, Options{MaxWidth: maxWidth, Quality: 0.8})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out.Data))
		require.NoError(t, err)

		b := img.Bounds()
		white := color.NRGBAModel.Convert(img.At(b.Min.X+1, b.Min.Y+1)).(color.NRGBA)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, white, "maxWidth=%d", maxWidth)

		red := color.NRGBAModel.Convert(img.At(b.Max.X-2, b.Max.Y-2)).(color.NRGBA)
		assert.Equal(t, uint8(255), red.A)
		assert.InDelta(t, 220, int(red.R), 3)

		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				require.Equal(t, uint32(0xffff), a, "pixel %d,%d not opaque", x, y)
			}
		}
	}
}

func TestCompressQualityMonotonic(t *testing.T) {
	src := blob.NewBytes(fixtures.JPEG(fixtures.Noise(160, 120)), format.JPEG)

	hi, err := Compress(src, Options{MaxWidth: 1920, Quality: 1.0})
	require.NoError(t, err)
	lo, err := Compress(src, Options{MaxWidth: 1920, Quality: 0.1})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, hi.Size(), lo.Size())
}

func TestCompressRejectsNonImage(t *testing.T) {
	inputs := []*blob.Bytes{
		blob.NewBytes([]byte("plain text, not pixels"), format.PNG),
		blob.NewBytes([]byte("plain text, not pixels"), format.JPEG),
		blob.NewBytes([]byte("plain text, not pixels"), ""),
		blob.NewBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, format.Unknown),
		blob.NewBytes(nil, format.GIF),
	}

	for _, src := range inputs {
		out, err := Compress(src, DefaultOptions())
		require.Error(t, err)
		assert.Nil(t, out)
		var de *loader.DecodeError
		assert.ErrorAs(t, err, &de)
	}
}

func TestCompressValidation(t *testing.T) {
	src := blob.NewBytes(fixtures.PNG(fixtures.Gradient(20, 10)), format.PNG)

	t.Run("none, zero width fails at encode", func(t *testing.T) {
		_, err := Compress(src, Options{MaxWidth: 0, Quality: 0.8})
		var ee *encoder.EncodeError
		require.ErrorAs(t, err, &ee)
		assert.NotErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("none, negative width fails at encode", func(t *testing.T) {
		_, err := Compress(src, Options{MaxWidth: -5, Quality: 0.8})
		var ee *encoder.EncodeError
		require.ErrorAs(t, err, &ee)
	})

	t.Run("none, out of range quality is tolerated", func(t *testing.T) {
		_, err := Compress(src, Options{MaxWidth: 10, Quality: 3})
		require.NoError(t, err)
	})

	t.Run("strict rejects before reading", func(t *testing.T) {
		consumed := blob.FromReader(bytes.NewReader(src.Data), format.PNG)
		_, err := Compress(consumed, Options{MaxWidth: 0, Quality: 0.8, Validation: ValidateStrict})
		require.ErrorIs(t, err, ErrInvalidParams)

		// The stream was not touched, so it can still be compressed.
		_, err = Compress(consumed, Options{MaxWidth: 10, Quality: 0.8, Validation: ValidateStrict})
		require.NoError(t, err)
	})

	t.Run("strict rejects quality", func(t *testing.T) {
		_, err := Compress(src, Options{MaxWidth: 10, Quality: 1.2, Validation: ValidateStrict})
		require.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("zero height from rounding", func(t *testing.T) {
		sliver := blob.NewBytes(fixtures.PNG(fixtures.Gradient(1000, 1)), format.PNG)
		_, err := Compress(sliver, Options{MaxWidth: 100, Quality: 0.8})
		var ee *encoder.EncodeError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, 0, ee.Height)
	})
}

func TestCompressAsyncConcurrent(t *testing.T) {
	src := blob.NewBytes(fixtures.JPEG(fixtures.Gradient(300, 200)), format.JPEG)

	chans := make([]<-chan async.Result[*blob.Bytes], 8)
	for i := range chans {
		chans[i] = CompressAsync(src, Options{MaxWidth: 100 + i, Quality: 0.8})
	}
	for i, ch := range chans {
		out, err := async.Await(ch)
		require.NoError(t, err)
		assert.Equal(t, 100+i, decodeConfig(t, out).Width)
	}
}

func TestCompressAsyncRejects(t *testing.T) {
	_, err := async.Await(CompressAsync(blob.NewBytes([]byte("nope"), format.PNG), DefaultOptions()))
	require.Error(t, err)
}

func TestValidationString(t *testing.T) {
	assert.Equal(t, "none", ValidateNone.String())
	assert.Equal(t, "strict", ValidateStrict.String())
}
