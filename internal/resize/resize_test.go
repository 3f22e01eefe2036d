package resize

import (
	"math"
	"testing"

	"github.com/AnyUserName/mktimg/internal/fixtures"
	"github.com/stretchr/testify/assert"
)

func TestDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"photo 4000x3000", 4000, 3000, 1920, 1920, 1440},
		{"smaller than max", 800, 600, 1920, 800, 600},
		{"equal to max", 1920, 1080, 1920, 1920, 1080},
		{"rounds height up", 1000, 333, 500, 500, 167},
		{"rounds height down", 1000, 331, 500, 500, 166},
		{"portrait", 3000, 4000, 1920, 1920, 2560},
		{"odd ratio", 3001, 2000, 1920, 1920, 1280},
		{"tall sliver", 10000, 1, 100, 100, 0},
		{"zero max", 800, 600, 0, 0, 0},
		{"negative max", 800, 600, -10, -10, -8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := Dimensions(tc.w, tc.h, tc.max)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestDimensionsProperties(t *testing.T) {
	for w := 1; w <= 300; w += 7 {
		for h := 1; h <= 300; h += 11 {
			for _, max := range []int{1, 50, 128, 299} {
				gotW, gotH := Dimensions(w, h, max)
				if w <= max {
					assert.Equal(t, w, gotW)
					assert.Equal(t, h, gotH)
					continue
				}
				assert.Equal(t, max, gotW)
				want := int(math.Round(float64(h) * float64(max) / float64(w)))
				assert.Equal(t, want, gotH, "%dx%d max=%d", w, h, max)
			}
		}
	}
}

func TestResize(t *testing.T) {
	img := fixtures.Gradient(64, 48)

	out := Resize(img, 32, 24)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 24, out.Bounds().Dy())

	same := Resize(img, 64, 48)
	assert.Equal(t, img.Pix, same.Pix)
	assert.NotSame(t, &img.Pix[0], &same.Pix[0], "identity resize must copy")
}
