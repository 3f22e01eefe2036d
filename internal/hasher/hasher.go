// Package hasher derives content-addressed names for encoded images.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the hex xxHash64 of data truncated to hexLen
// characters (0 or out of range keeps all 16).
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// BlobHash streams b through xxHash64. Read failures are *blob.ReadError.
func BlobHash(b blob.Blob, hexLen int) (string, error) {
	rc, err := b.Open()
	if err != nil {
		return "", &blob.ReadError{Err: err}
	}
	defer rc.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, rc); err != nil {
		return "", &blob.ReadError{Err: err}
	}
	return truncate(h.Sum64(), hexLen), nil
}

// FileName builds "<key>.<w>.<h>.<hash8>.<ext>".
func FileName(key string, w, h int, hash, ext string) string {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s.%d.%d.%s.%s", key, w, h, hash, ext)
}

func truncate(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
