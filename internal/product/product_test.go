package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thumb = "data:image/jpeg;base64,/9j/4AAQ"

func TestNewImage(t *testing.T) {
	img, err := NewImage(thumb, "phone/front.1920.1440.abcd1234.jpg")
	require.NoError(t, err)
	assert.Equal(t, TypeImage, img.Type)
	assert.NotEmpty(t, img.ID)
	assert.Empty(t, img.VideoRef)

	other, err := NewImage(thumb, "x.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, img.ID, other.ID)
}

func TestNewVideo(t *testing.T) {
	v, err := NewVideo(thumb, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, TypeYouTube, v.Type)
	assert.Empty(t, v.FullImageRef)
}

func TestValidate(t *testing.T) {
	base, err := NewImage(thumb, "a.jpg")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Image)
		want   error
	}{
		{"no thumbnail", func(i *Image) { i.ThumbnailDataURL = "" }, ErrMissingThumbnail},
		{"no full ref", func(i *Image) { i.FullImageRef = "" }, ErrMissingRef},
		{"video without ref", func(i *Image) { i.Type = TypeYouTube }, ErrMissingRef},
		{"bad id", func(i *Image) { i.ID = "nope" }, nil},
		{"bad type", func(i *Image) { i.Type = "gif" }, nil},
		{"not a data url", func(i *Image) { i.ThumbnailDataURL = "https://cdn/x.jpg" }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := base
			tc.mutate(&img)
			err := img.Validate()
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
