package otp

import (
	"bytes"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

const (
	// SecretSize is the number of random bytes in a shared secret (RFC 4226
	// recommends 160 bits). Base32 without padding yields 32 characters.
	SecretSize = 20

	// Skew is the accepted distance, in steps, between the submitted code and
	// the current step. It is fixed so stale codes cannot be widened in.
	Skew = 1

	defaultPeriod    = 30
	defaultImageSize = 256
)

var b32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// OTP defines the contract for TOTP operations.
type OTP interface {
	// GenerateSecret returns a fresh base32 shared secret.
	GenerateSecret() (string, error)
	// ProvisioningURI builds the otpauth:// key URI for an authenticator app.
	ProvisioningURI(secret, accountLabel, issuer string) (string, error)
	// RenderImage writes uri as a QR code PNG to destination.
	RenderImage(uri, destination string) error
	// GenerateCode creates a TOTP code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// Validate checks whether a code is valid at the given time.
	Validate(code, secret string, at time.Time) (bool, error)
}

// Config holds the TOTP parameters.
type Config struct {
	// Period is the step width in seconds. Zero means 30.
	Period uint
	// Digits is the code length. Anything but 6 or 8 means 6.
	Digits otp.Digits
	// ImageSize is the QR image edge in pixels. Zero means 256.
	ImageSize int
	// Rand is the randomness source for secrets. Nil means crypto/rand.
	Rand io.Reader
}

// TOTP implements OTP using the Time-based One-Time Password algorithm.
type TOTP struct {
	period    uint
	digits    otp.Digits
	imageSize int
	rand      io.Reader
}

// NewTOTP constructs a TOTP instance with sensible defaults.
func NewTOTP(cfg Config) *TOTP {
	if cfg.Digits != otp.DigitsSix && cfg.Digits != otp.DigitsEight {
		cfg.Digits = otp.DigitsSix
	}

	if cfg.Period == 0 {
		cfg.Period = defaultPeriod
	}

	if cfg.ImageSize <= 0 {
		cfg.ImageSize = defaultImageSize
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}

	return &TOTP{
		period:    cfg.Period,
		digits:    cfg.Digits,
		imageSize: cfg.ImageSize,
		rand:      cfg.Rand,
	}
}

// GenerateSecret returns SecretSize random bytes encoded as unpadded base32.
func (o *TOTP) GenerateSecret() (string, error) {
	raw := make([]byte, SecretSize)
	if _, err := io.ReadFull(o.rand, raw); err != nil {
		return "", fmt.Errorf("otp: read random secret: %w", err)
	}

	return b32NoPadding.EncodeToString(raw), nil
}

// ProvisioningURI builds the key URI for secret, labelled with accountLabel
// and issuer.
//
// Label and issuer must be non-empty valid UTF-8 without ':' because the
// colon separates them inside the URI label.
func (o *TOTP) ProvisioningURI(secret, accountLabel, issuer string) (string, error) {
	if err := checkLabel("account label", accountLabel); err != nil {
		return "", err
	}
	if err := checkLabel("issuer", issuer); err != nil {
		return "", err
	}

	raw, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountLabel,
		Period:      o.period,
		Secret:      raw,
		Digits:      o.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", goerror.NewEncoding("otp: build key uri", err)
	}

	return key.URL(), nil
}

// RenderImage encodes uri as a QR code and writes it as PNG to destination,
// replacing any existing file.
func (o *TOTP) RenderImage(uri, destination string) error {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return goerror.NewEncoding("otp: parse key uri", err)
	}
	if key.Type() != "totp" {
		return goerror.NewEncoding("otp: not a totp key uri", nil)
	}

	img, err := key.Image(o.imageSize, o.imageSize)
	if err != nil {
		return goerror.NewEncoding("otp: render qr code", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return goerror.NewEncoding("otp: encode png", err)
	}

	if err := os.WriteFile(destination, buf.Bytes(), 0o600); err != nil {
		return goerror.NewIO("otp: write qr image", err)
	}

	return nil
}

// GenerateCode creates a TOTP code for the given secret and time.
func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	if _, err := decodeSecret(secret); err != nil {
		return "", err
	}

	code, err := totp.GenerateCodeCustom(secret, at, o.opts())
	if err != nil {
		return "", mapErr(err)
	}

	return code, nil
}

// Validate reports whether code matches the step containing at or one of
// its immediate neighbours. A code of the wrong length is simply invalid.
func (o *TOTP) Validate(code, secret string, at time.Time) (bool, error) {
	// Checked first so a malformed secret is reported even when the code
	// length alone would reject the input.
	if _, err := decodeSecret(secret); err != nil {
		return false, err
	}

	ok, err := totp.ValidateCustom(code, secret, at, o.opts())
	if errors.Is(err, otp.ErrValidateInputInvalidLength) {
		return false, nil
	}
	if err != nil {
		return false, mapErr(err)
	}

	return ok, nil
}

func (o *TOTP) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    o.period,
		Skew:      Skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// decodeSecret mirrors the normalisation pquerna/otp applies: trim, upper
// case, re-pad.
func decodeSecret(secret string) ([]byte, error) {
	s := strings.ToUpper(strings.TrimSpace(secret))
	if s == "" {
		return nil, goerror.NewDecode("otp: empty secret", nil)
	}
	if n := len(s) % 8; n != 0 {
		s += strings.Repeat("=", 8-n)
	}

	raw, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, goerror.NewDecode("otp: invalid base32 secret", err)
	}

	return raw, nil
}

func checkLabel(field, v string) error {
	switch {
	case strings.TrimSpace(v) == "":
		return goerror.NewEncoding("otp: "+field+" is empty", nil)
	case !utf8.ValidString(v):
		return goerror.NewEncoding("otp: "+field+" is not valid utf-8", nil)
	case strings.Contains(v, ":"):
		return goerror.NewEncoding("otp: "+field+" must not contain ':'", nil)
	}

	return nil
}

func mapErr(err error) error {
	if errors.Is(err, otp.ErrValidateSecretInvalidBase32) {
		return goerror.NewDecode("otp: invalid base32 secret", err)
	}

	return goerror.NewServer(err)
}
