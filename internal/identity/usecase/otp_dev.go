package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

// CurrentCode returns the code for secret at the current time. Dev only.
func (s *Usecase) CurrentCode(ctx context.Context, secret string) (string, error) {
	_, span := s.startSpan(ctx, "CurrentCode")
	defer span.End()

	return s.totp.GenerateCode(strings.TrimSpace(secret), s.clock.Now())
}

// VerifyCode checks code against secret at the current time. Dev only.
func (s *Usecase) VerifyCode(ctx context.Context, code, secret string) (bool, error) {
	_, span := s.startSpan(ctx, "VerifyCode")
	defer span.End()

	return s.totp.Validate(strings.TrimSpace(code), strings.TrimSpace(secret), s.clock.Now())
}

type ProvisionInput struct {
	Secret      string `validate:"required"`
	Destination string
}

// ProvisionOutput is the key URI and the file the QR image was written to.
type ProvisionOutput struct {
	URI  string
	Path string
}

// Provision re-renders the QR image for an existing secret. An empty
// destination uses the configured path.
func (s *Usecase) Provision(ctx context.Context, in ProvisionInput) (*ProvisionOutput, error) {
	_, span := s.startSpan(ctx, "Provision")
	defer span.End()

	in.Secret = strings.TrimSpace(in.Secret)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Destination == "" {
		in.Destination = s.cfg.GetString("mfa.qr.path")
	}

	uri, err := s.provisioningURI(in.Secret)
	if err != nil {
		return nil, err
	}

	if err := s.totp.RenderImage(uri, in.Destination); err != nil {
		return nil, err
	}

	return &ProvisionOutput{URI: uri, Path: in.Destination}, nil
}

// Digest returns the wire digest of password. Dev only.
func (s *Usecase) Digest(ctx context.Context, password string) (string, error) {
	_, span := s.startSpan(ctx, "Digest")
	defer span.End()

	if password == "" {
		return "", goerror.NewInvalidInput(nil, "password", "password is required")
	}

	return s.hash.Hash(password), nil
}
