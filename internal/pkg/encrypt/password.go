package encrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Ciphertext format (binary, then base64url):
// [0..1]   uint16 version (currently 1)
// [2..17]  16-byte Argon2id salt
// [18..29] 12-byte nonce
// [30..]   gcm.Seal output (ciphertext + tag)
const passwordVersion uint16 = 1

const (
	saltSize     = 16
	gcmNonceSize = 12
	aesKeyLen    = 32
	headerSize   = 2 + saltSize + gcmNonceSize
)

var (
	// ErrPasswordEmpty indicates an empty password input.
	ErrPasswordEmpty = errors.New("encrypt: password is empty")
	// ErrCiphertextEncoding indicates the ciphertext is not valid base64.
	ErrCiphertextEncoding = errors.New("encrypt: ciphertext is not valid base64")
	// ErrCiphertextTooShort indicates a truncated ciphertext.
	ErrCiphertextTooShort = errors.New("encrypt: ciphertext too short")
	// ErrUnsupportedCiphertextVersion indicates an unsupported ciphertext version.
	ErrUnsupportedCiphertextVersion = errors.New("encrypt: unsupported ciphertext version")
	// ErrDecryptFailed indicates decryption failure.
	ErrDecryptFailed = errors.New("encrypt: decrypt failed")
)

// Password encrypts strings under a key derived from a password.
type Password struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	rand        io.Reader
}

// NewPassword returns a Password encryptor using Argon2id with
// t=3, m=32 MiB, p=2.
func NewPassword() *Password {
	return &Password{
		memory:      32 * 1024,
		iterations:  3,
		parallelism: 2,
		rand:        rand.Reader,
	}
}

// Encrypt seals plaintext and returns the base64url ciphertext.
func (p *Password) Encrypt(plaintext, password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	header := make([]byte, headerSize)
	binary.BigEndian.PutUint16(header[0:2], passwordVersion)
	if _, err := io.ReadFull(p.rand, header[2:]); err != nil {
		return "", fmt.Errorf("encrypt: salt/nonce generation failed: %w", err)
	}

	salt := header[2 : 2+saltSize]
	nonce := header[2+saltSize:]

	gcm, err := p.gcm(password, salt)
	if err != nil {
		return "", err
	}

	// The header is authenticated as AAD so version, salt and nonce cannot be
	// swapped without failing Open.
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), header)

	out := make([]byte, 0, len(header)+len(sealed))
	out = append(out, header...)
	out = append(out, sealed...)

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Decrypt opens a ciphertext produced by Encrypt.
func (p *Password) Decrypt(ciphertext, password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	data, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrCiphertextEncoding
	}
	if len(data) < headerSize+16 {
		return "", ErrCiphertextTooShort
	}

	version := binary.BigEndian.Uint16(data[0:2])
	if version != passwordVersion {
		return "", fmt.Errorf("encrypt: unsupported ciphertext version %d: %w", version, ErrUnsupportedCiphertextVersion)
	}

	salt := data[2 : 2+saltSize]
	nonce := data[2+saltSize : headerSize]

	gcm, err := p.gcm(password, salt)
	if err != nil {
		return "", err
	}

	plain, err := gcm.Open(nil, nonce, data[headerSize:], data[:headerSize])
	if err != nil {
		// Do not leak whether it was "wrong password" or "tampered".
		return "", ErrDecryptFailed
	}

	return string(plain), nil
}

func (p *Password) gcm(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, aesKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encrypt: aes init failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encrypt: gcm init failed: %w", err)
	}

	return gcm, nil
}
