// Package cursor identifies the active system cursor and maps it to the hot-spot offset used
// to align the overlay sprite with the real pointer.
package cursor

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Size is a cursor image size in pixels.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Offset is the vector from the overlay window origin to the logical click point.
type Offset struct {
	DX, DY float64
}

// Digest is a BLAKE2b-256 digest of a cursor's raw pixel bytes.
type Digest [blake2b.Size256]byte

func DigestOf(pixels []byte) Digest {
	return blake2b.Sum256(pixels)
}

func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode digest: %w", err)
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("digest must be %d bytes, got %d", len(d), len(b))
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Descriptor identifies the active system cursor.
type Descriptor struct {
	// Serial changes whenever the OS reports a different cursor. Zero means unknown.
	Serial uint64
	Size   Size
	// Pixels holds premultiplied RGBA rows, Size.Width*Size.Height*4 bytes.
	Pixels []byte
}

func (d Descriptor) Digest() Digest {
	return DigestOf(d.Pixels)
}

// Same reports whether d and o describe the same cursor without hashing pixels.
func (d Descriptor) Same(o Descriptor) bool {
	if d.Serial != 0 || o.Serial != 0 {
		return d.Serial == o.Serial
	}
	return d.Size == o.Size && len(d.Pixels) == len(o.Pixels)
}

// Query reports the cursor currently shown by the OS.
type Query interface {
	Current() (Descriptor, error)
}
