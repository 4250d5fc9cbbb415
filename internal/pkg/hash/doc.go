// Package hash provides the credential hasher used before a password leaves
// the client.
//
// The identity service compares digests byte for byte, so the digest must be
// deterministic: the same plaintext always maps to the same hex string.
package hash
