package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authkit/internal/pkg/encrypt"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type encryptor interface {
	Encrypt(plaintext, password string) (string, error)
	Decrypt(ciphertext, password string) (string, error)
	DecryptLegacy(ciphertext, password string) (string, error)
}

type Usecase struct {
	encryptor encryptor
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	Encryptor  encryptor
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		encryptor: dep.Encryptor,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("encryption.usecase").Start(ctx, name)
}

func (s *Usecase) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, encrypt.ErrPasswordEmpty):
		return goerror.NewInvalidInput(nil, "password", "password is required")
	case errors.Is(err, encrypt.ErrCiphertextEncoding):
		return goerror.NewDecode("ciphertext is not valid base64", nil)
	case errors.Is(err, encrypt.ErrCiphertextTooShort),
		errors.Is(err, encrypt.ErrUnsupportedCiphertextVersion),
		errors.Is(err, encrypt.ErrDecryptFailed):
		return goerror.NewDecode("cannot decrypt", err)
	default:
		slog.ErrorContext(ctx, "encryption failed", "error", err)
		return goerror.NewServer(err)
	}
}
