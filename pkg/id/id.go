// Package id generates sortable identifiers for session tokens, upload
// keys, and request ids.
package id

import (
	"crypto/rand"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a 26-character ULID: 10 chars of millisecond
// timestamp followed by 16 chars of randomness. Lexicographic order
// matches creation order.
func NewULID() string {
	var out [26]byte
	encodeTime(out[:10], uint64(time.Now().UnixMilli()))
	encodeRandom(out[10:])
	return string(out[:])
}

// NewShortID generates a 16-character id: 6 chars of truncated
// timestamp (30 bits of milliseconds, wraps roughly every twelve days)
// followed by 10 chars of randomness. Shorter than a ULID and still
// URL-safe; sortable only within the wrap window, so use ULIDs where
// long-range ordering matters.
func NewShortID() string {
	var out [16]byte
	encodeTime(out[:6], uint64(time.Now().UnixMilli())&0x3FFFFFFF)
	encodeRandom(out[6:])
	return string(out[:])
}

// encodeTime writes ts as big-endian 5-bit groups filling dst exactly.
func encodeTime(dst []byte, ts uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = crockfordBase32[ts&0x1F]
		ts >>= 5
	}
}

// encodeRandom fills dst with base32 characters from fresh entropy.
// len(dst) must fit the encoding of ceil(len(dst)*5/8) bytes; a
// trailing partial group is left-aligned.
func encodeRandom(dst []byte) {
	src := make([]byte, (len(dst)*5+7)/8)
	if _, err := rand.Read(src); err != nil {
		// Degraded fallback when the entropy source is unavailable.
		nano := uint64(time.Now().UnixNano())
		for i := range src {
			src[i] = byte(nano >> (8 * (i % 8)))
		}
	}

	var acc uint32
	bits := 0
	di := 0
	for _, b := range src {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 && di < len(dst) {
			bits -= 5
			dst[di] = crockfordBase32[(acc>>bits)&0x1F]
			di++
		}
	}
	if di < len(dst) {
		dst[di] = crockfordBase32[(acc<<(5-bits))&0x1F]
	}
}
