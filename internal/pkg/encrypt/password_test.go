package encrypt

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

const demoPassword = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewPassword()
	for _, plaintext := range []string{"hello world", "", "héllo wörld ✓", string(bytes.Repeat([]byte("x"), 1000))} {
		ct, err := p.Encrypt(plaintext, demoPassword)
		require.NoError(t, err)

		got, err := p.Decrypt(ct, demoPassword)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestPasswordRandomizesCiphertext(t *testing.T) {
	t.Parallel()

	p := NewPassword()
	a, err := p.Encrypt("hello world", demoPassword)
	require.NoError(t, err)
	b, err := p.Encrypt("hello world", demoPassword)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestPasswordLayout(t *testing.T) {
	t.Parallel()

	seed := bytes.Repeat([]byte{0x5a}, saltSize+gcmNonceSize)
	p := NewPassword()
	p.rand = bytes.NewReader(seed)

	ct, err := p.Encrypt("hello world", demoPassword)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(ct)
	require.NoError(t, err)
	require.Len(t, raw, headerSize+len("hello world")+16)
	require.Equal(t, []byte{0x00, 0x01}, raw[:2])
	require.Equal(t, seed, raw[2:headerSize])

	header := raw[:headerSize]
	gcm, err := p.gcm(demoPassword, header[2:2+saltSize])
	require.NoError(t, err)

	want := gcm.Seal(nil, header[2+saltSize:], []byte("hello world"), header)
	require.Equal(t, want, raw[headerSize:])

	got, err := p.Decrypt(ct, demoPassword)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
}

func TestPasswordWrongPassword(t *testing.T) {
	t.Parallel()

	p := NewPassword()
	ct, err := p.Encrypt("hello world", demoPassword)
	require.NoError(t, err)

	_, err = p.Decrypt(ct, "other password")
	require.ErrorIs(t, err, ErrDecryptFailed)
}

func TestPasswordTampered(t *testing.T) {
	t.Parallel()

	p := NewPassword()
	ct, err := p.Encrypt("hello world", demoPassword)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(ct)
	require.NoError(t, err)

	body := bytes.Clone(raw)
	body[len(body)-1] ^= 0x01
	_, err = p.Decrypt(base64.RawURLEncoding.EncodeToString(body), demoPassword)
	require.ErrorIs(t, err, ErrDecryptFailed)

	salt := bytes.Clone(raw)
	salt[2] ^= 0x01
	_, err = p.Decrypt(base64.RawURLEncoding.EncodeToString(salt), demoPassword)
	require.ErrorIs(t, err, ErrDecryptFailed)

	version := bytes.Clone(raw)
	version[1] = 9
	_, err = p.Decrypt(base64.RawURLEncoding.EncodeToString(version), demoPassword)
	require.ErrorIs(t, err, ErrUnsupportedCiphertextVersion)
}

func TestPasswordMalformedInput(t *testing.T) {
	t.Parallel()

	p := NewPassword()

	_, err := p.Encrypt("hello", "")
	require.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = p.Decrypt("anything", "")
	require.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = p.Decrypt("***", demoPassword)
	require.ErrorIs(t, err, ErrCiphertextEncoding)

	_, err = p.Decrypt(base64.RawURLEncoding.EncodeToString([]byte{0, 1, 2}), demoPassword)
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestPasswordRandFailure(t *testing.T) {
	t.Parallel()

	p := NewPassword()
	p.rand = bytes.NewReader(nil)

	_, err := p.Encrypt("hello", demoPassword)
	require.Error(t, err)
}
