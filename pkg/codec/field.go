package codec

import (
	"encoding/binary"
	"strings"
)

const padByte = ' '

// Codec converts records of type T to and from fixed-size blocks
type Codec[T any] interface {
	// Size returns the fixed block width in bytes
	Size() int
	// Encode packs rec into a new block of exactly Size() bytes
	Encode(rec T) []byte
	// Decode unpacks a block of Size() bytes
	Decode(block []byte) T
}

// PutText writes s left-justified into dst, truncating to len(dst) bytes and
// padding the remainder with spaces
func PutText(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = padByte
	}
}

// Text reads a text field, stripping trailing spaces only
func Text(src []byte) string {
	return strings.TrimRight(string(src), " ")
}

// FitText returns s as it reads back after a round trip through a text field
// of the given width
func FitText(s string, width int) string {
	if len(s) > width {
		s = s[:width]
	}
	return strings.TrimRight(s, " ")
}

// PutInt32 writes v as a 4 byte little-endian signed integer
func PutInt32(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

// Int32 reads a 4 byte little-endian signed integer
func Int32(src []byte) int32 {
	return int32(binary.LittleEndian.Uint32(src))
}

// PutBool writes a single byte flag
func PutBool(dst []byte, v bool) {
	if v {
		dst[0] = 1
		return
	}
	dst[0] = 0
}

// Bool reads a single byte flag
func Bool(src []byte) bool {
	return src[0] != 0
}
