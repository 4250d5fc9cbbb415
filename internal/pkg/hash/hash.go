package hash

// Hash maps a plaintext credential to the digest sent over the wire.
type Hash interface {
	// Hash returns the digest of plaintext.
	Hash(plaintext string) string

	// Verify reports whether digest was produced from plaintext.
	Verify(digest, plaintext string) bool
}
