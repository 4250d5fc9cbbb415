package otp

import (
	"bytes"
	"encoding/base32"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

const (
	demoSecret = "JBSWY3DPEHPK3PXP"
	// base32("12345678901234567890"), the RFC 6238 SHA-1 seed.
	rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	seen := make(map[string]struct{}, 1000)

	for range 1000 {
		secret, err := o.GenerateSecret()
		require.NoError(t, err)
		require.Len(t, secret, 32)

		raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
		require.NoError(t, err)
		require.Len(t, raw, SecretSize)

		_, dup := seen[secret]
		require.False(t, dup, "secret generated twice")
		seen[secret] = struct{}{}
	}
}

func TestGenerateSecretRandFailure(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{Rand: bytes.NewReader([]byte("short"))})
	_, err := o.GenerateSecret()
	require.Error(t, err)
}

func TestGenerateCodeVectors(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	tests := []struct {
		secret string
		unix   int64
		want   string
	}{
		{secret: demoSecret, unix: 0, want: "282760"},
		{secret: demoSecret, unix: 59, want: "996554"},
		{secret: rfcSecret, unix: 59, want: "287082"},
		{secret: rfcSecret, unix: 1111111109, want: "081804"},
		{secret: rfcSecret, unix: 1234567890, want: "005924"},
		{secret: rfcSecret, unix: 2000000000, want: "279037"},
	}

	for _, tt := range tests {
		code, err := o.GenerateCode(tt.secret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		require.Equal(t, tt.want, code, "secret=%s t=%d", tt.secret, tt.unix)
	}
}

func TestGenerateCodeEightDigits(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{Digits: otp.DigitsEight})
	code, err := o.GenerateCode(rfcSecret, time.Unix(59, 0))
	require.NoError(t, err)
	require.Equal(t, "94287082", code)
}

func TestGenerateCodeAcceptsLowerCase(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	code, err := o.GenerateCode("jbswy3dpehpk3pxp", time.Unix(0, 0))
	require.NoError(t, err)
	require.Equal(t, "282760", code)
}

func TestValidateRoundTrip(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	secret, err := o.GenerateSecret()
	require.NoError(t, err)

	for _, at := range []time.Time{time.Unix(0, 0), time.Unix(1663062093, 0), time.Date(2026, 10, 17, 8, 15, 56, 0, time.UTC)} {
		code, err := o.GenerateCode(secret, at)
		require.NoError(t, err)

		ok, err := o.Validate(code, secret, at)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestValidateWindow(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	start := time.Unix(0, 0)
	code, err := o.GenerateCode(demoSecret, start)
	require.NoError(t, err)

	// The window is exactly one step either side of "now", so a step-0 code
	// still passes anywhere in step 1 (31s..59s) and first fails in step 2.
	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{name: "same instant", offset: 0, want: true},
		{name: "same step", offset: 29 * time.Second, want: true},
		{name: "next step", offset: 31 * time.Second, want: true},
		{name: "end of next step", offset: 59 * time.Second, want: true},
		{name: "two steps later", offset: 61 * time.Second, want: false},
		{name: "much later", offset: time.Hour, want: false},
	}

	for _, tt := range tests {
		ok, err := o.Validate(code, demoSecret, start.Add(tt.offset))
		require.NoError(t, err)
		require.Equal(t, tt.want, ok, tt.name)
	}
}

func TestValidatePreviousStep(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	at := time.Unix(75, 0) // step 2

	ok, err := o.Validate("996554", demoSecret, at) // step 1
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = o.Validate("282760", demoSecret, at) // step 0
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = o.Validate("996554", demoSecret, time.Unix(90, 0)) // step 3
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	at := time.Unix(0, 0)

	for _, code := range []string{"", "28276", "2827600", "000000", "abcdef"} {
		ok, err := o.Validate(code, demoSecret, at)
		require.NoError(t, err, code)
		require.False(t, ok, code)
	}

	ok, err := o.Validate("282760", rfcSecret, at)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMalformedSecret(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	at := time.Unix(0, 0)

	for _, secret := range []string{"JBSWY3DPEHPK3PX1", "0BSWY3DPEHPK3PXP", "not base32!", ""} {
		_, err := o.GenerateCode(secret, at)
		require.ErrorIs(t, err, goerror.ErrDecode, secret)

		_, err = o.Validate("282760", secret, at)
		require.ErrorIs(t, err, goerror.ErrDecode, secret)

		_, err = o.Validate("1", secret, at)
		require.ErrorIs(t, err, goerror.ErrDecode, secret)

		_, err = o.ProvisioningURI(secret, "nduk@duvera.co.uk", "NDUK")
		require.ErrorIs(t, err, goerror.ErrDecode, secret)
	}
}

func TestProvisioningURI(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	uri, err := o.ProvisioningURI(demoSecret, "nduk@duvera.co.uk", "NDUK")
	require.NoError(t, err)
	require.Contains(t, uri, "otpauth://totp/")

	key, err := otp.NewKeyFromURL(uri)
	require.NoError(t, err)
	require.Equal(t, "totp", key.Type())
	require.Equal(t, "NDUK", key.Issuer())
	require.Equal(t, "nduk@duvera.co.uk", key.AccountName())
	require.Equal(t, demoSecret, key.Secret())
	require.Equal(t, uint64(30), key.Period())
	require.Equal(t, otp.DigitsSix, key.Digits())
}

func TestProvisioningURIEncodingErrors(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	tests := []struct {
		name   string
		label  string
		issuer string
	}{
		{name: "empty label", label: "", issuer: "NDUK"},
		{name: "empty issuer", label: "user", issuer: " "},
		{name: "colon in label", label: "a:b", issuer: "NDUK"},
		{name: "colon in issuer", label: "user", issuer: "ND:UK"},
		{name: "invalid utf-8", label: string([]byte{0xff, 0xfe}), issuer: "NDUK"},
	}

	for _, tt := range tests {
		_, err := o.ProvisioningURI(demoSecret, tt.label, tt.issuer)
		require.ErrorIs(t, err, goerror.ErrEncoding, tt.name)
	}
}

func TestRenderImage(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{ImageSize: 200})
	uri, err := o.ProvisioningURI(demoSecret, "nduk@duvera.co.uk", "NDUK")
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "totp_qr.png")
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o600))

	require.NoError(t, o.RenderImage(uri, dst))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderImageErrors(t *testing.T) {
	t.Parallel()

	o := NewTOTP(Config{})
	uri, err := o.ProvisioningURI(demoSecret, "user", "NDUK")
	require.NoError(t, err)

	err = o.RenderImage(uri, filepath.Join(t.TempDir(), "missing", "dir", "qr.png"))
	require.ErrorIs(t, err, goerror.ErrIO)

	err = o.RenderImage("https://example.com/not-a-key", filepath.Join(t.TempDir(), "qr.png"))
	require.ErrorIs(t, err, goerror.ErrEncoding)

	err = o.RenderImage("otpauth://totp/\x7f", filepath.Join(t.TempDir(), "qr.png"))
	require.ErrorIs(t, err, goerror.ErrEncoding)
	require.False(t, errors.Is(err, goerror.ErrIO))
}
