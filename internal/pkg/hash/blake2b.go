package hash

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// DigestHexLen is the length of a hex-encoded BLAKE2b-512 digest.
const DigestHexLen = blake2b.Size * 2

// Blake2b implements the credential hasher using unkeyed BLAKE2b-512.
//
// It holds no state, so a single value may be shared freely.
type Blake2b struct{}

// NewBlake2b returns a BLAKE2b-512 hasher.
func NewBlake2b() *Blake2b {
	return &Blake2b{}
}

// Hash returns the lower-case hex BLAKE2b-512 digest of plaintext.
func (*Blake2b) Hash(plaintext string) string {
	sum := blake2b.Sum512([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether digest is the hash of plaintext.
func (h *Blake2b) Verify(digest, plaintext string) bool {
	if len(digest) != DigestHexLen {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(h.Hash(plaintext))) == 1
}
