package hasher

import (
	"testing"

	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	// xxhash64 of the empty input.
	assert.Equal(t, "ef46db3751d8e999", ContentHash(nil, 0))
	assert.Equal(t, "ef46db37", ContentHash(nil, 8))
	assert.Len(t, ContentHash([]byte("x"), 99), 16)
	assert.NotEqual(t, ContentHash([]byte("a"), 16), ContentHash([]byte("b"), 16))
}

func TestBlobHashMatchesContentHash(t *testing.T) {
	data := []byte("listing photo bytes")
	got, err := BlobHash(blob.NewBytes(data, "image/jpeg"), 16)
	require.NoError(t, err)
	assert.Equal(t, ContentHash(data, 16), got)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "front.1920.1440.abcd1234.jpg",
		FileName("front", 1920, 1440, "abcd1234ffffffff", "jpg"))
	assert.Equal(t, "a.1.1.ab.png", FileName("a", 1, 1, "ab", "png"))
}
