// Package product defines the product-image record that the pipeline's
// outputs populate. Storing the record is the caller's business.
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/mktimg/internal/dataurl"
	"github.com/gofrs/uuid/v5"
)

// Type discriminates image entries from embedded videos.
type Type string

const (
	TypeImage   Type = "image"
	TypeYouTube Type = "youtube"
)

// Image is one entry of a product's gallery.
type Image struct {
	ID               string `json:"id"`
	Type             Type   `json:"type"`
	ThumbnailDataURL string `json:"thumbnail_data_url"`
	FullImageRef     string `json:"full_image_ref,omitempty"`
	VideoRef         string `json:"video_ref,omitempty"`
}

var (
	ErrMissingThumbnail = errors.New("thumbnail data URL is required")
	ErrMissingRef       = errors.New("entry has no full image or video reference")
)

// NewImage builds an image entry from a thumbnail data URL and a reference
// to the full-size encoded image.
func NewImage(thumbnailDataURL, fullImageRef string) (Image, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Image{}, fmt.Errorf("generate id: %w", err)
	}
	img := Image{
		ID:               id.String(),
		Type:             TypeImage,
		ThumbnailDataURL: thumbnailDataURL,
		FullImageRef:     fullImageRef,
	}
	return img, img.Validate()
}

// NewVideo builds a youtube entry; the thumbnail is still an image.
func NewVideo(thumbnailDataURL, videoRef string) (Image, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Image{}, fmt.Errorf("generate id: %w", err)
	}
	img := Image{
		ID:               id.String(),
		Type:             TypeYouTube,
		ThumbnailDataURL: thumbnailDataURL,
		VideoRef:         videoRef,
	}
	return img, img.Validate()
}

// Validate checks the invariants of the record.
func (i Image) Validate() error {
	if _, err := uuid.FromString(i.ID); err != nil {
		return fmt.Errorf("invalid id %q: %w", i.ID, err)
	}
	if i.ThumbnailDataURL == "" {
		return ErrMissingThumbnail
	}
	if !strings.HasPrefix(i.ThumbnailDataURL, "data:image/") {
		return fmt.Errorf("thumbnail is not an image data URL")
	}
	if _, err := dataurl.Decode(i.ThumbnailDataURL); err != nil {
		return fmt.Errorf("thumbnail: %w", err)
	}

	switch i.Type {
	case TypeImage:
		if i.FullImageRef == "" {
			return ErrMissingRef
		}
	case TypeYouTube:
		if i.VideoRef == "" {
			return ErrMissingRef
		}
	default:
		return fmt.Errorf("unknown type %q", i.Type)
	}
	return nil
}
