// Package encrypt provides password-based symmetric encryption of strings.
//
// Password derives an AES-256-GCM key with Argon2id from a per-message random
// salt and seals with a random nonce, so encrypting the same text twice gives
// different ciphertexts. DecryptLegacy reads the older AES-256-CBC format
// whose key and IV were both derived from the password alone; it exists only
// to migrate such ciphertexts and has no encrypting counterpart.
package encrypt
