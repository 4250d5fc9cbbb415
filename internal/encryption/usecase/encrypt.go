package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

type EncryptInput struct {
	Text     string
	Password string `validate:"required"`
}

func (s *Usecase) Encrypt(ctx context.Context, in EncryptInput) (string, error) {
	ctx, span := s.startSpan(ctx, "Encrypt")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return "", goerror.NewInvalidInput(err)
	}

	out, err := s.encryptor.Encrypt(in.Text, in.Password)
	if err != nil {
		return "", s.mapError(ctx, err)
	}

	return out, nil
}

type DecryptInput struct {
	Text     string `validate:"required"`
	Password string `validate:"required"`
	// Legacy selects the older CBC format.
	Legacy bool
}

func (s *Usecase) Decrypt(ctx context.Context, in DecryptInput) (string, error) {
	ctx, span := s.startSpan(ctx, "Decrypt")
	defer span.End()

	in.Text = strings.TrimSpace(in.Text)

	if err := s.validator.Validate(in); err != nil {
		return "", goerror.NewInvalidInput(err)
	}

	decrypt := s.encryptor.Decrypt
	if in.Legacy {
		decrypt = s.encryptor.DecryptLegacy
	}

	out, err := decrypt(in.Text, in.Password)
	if err != nil {
		return "", s.mapError(ctx, err)
	}

	return out, nil
}
