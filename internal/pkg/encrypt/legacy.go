package encrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" //nolint:gosec // the legacy format is defined in terms of MD5
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// DecryptLegacy opens an AES-256-CBC ciphertext whose key is hex(MD5(password))
// and whose IV is the first 16 characters of hex(MD5(password + key)).
//
// Both URL-safe and standard base64 inputs are accepted.
func (*Password) DecryptLegacy(ciphertext, password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(strings.TrimSpace(ciphertext))
	normalized = strings.TrimRight(normalized, "=")
	data, err := base64.RawStdEncoding.DecodeString(normalized)
	if err != nil {
		return "", ErrCiphertextEncoding
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", ErrCiphertextTooShort
	}

	key, iv := legacyKeyIV(password)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", ErrDecryptFailed
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	plain, ok := pkcs7Unpad(plain)
	if !ok {
		return "", ErrDecryptFailed
	}

	return string(plain), nil
}

func legacyKeyIV(password string) (key, iv []byte) {
	k := md5.Sum([]byte(password)) //nolint:gosec // legacy format
	keyHex := hex.EncodeToString(k[:])

	v := md5.Sum([]byte(password + keyHex)) //nolint:gosec // legacy format
	ivHex := hex.EncodeToString(v[:])

	return []byte(keyHex), []byte(ivHex[:aes.BlockSize])
}

func pkcs7Unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}

	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}
	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, false
	}

	return b[:len(b)-n], true
}
