package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

type RegisterInput struct {
	Username string `validate:"required,max=128"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterOutput struct {
	Response *entity.Response
	QRPath   string
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	secret, err := s.totp.GenerateSecret()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	// Built before the request so a bad label or issuer never leaves a
	// registered account without a scannable key.
	uri, err := s.provisioningURI(secret)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build provisioning uri", "error", err)
		return nil, err
	}

	resp, err := s.api.Register(ctx, entity.RegisterPayload{
		Username:  in.Username,
		Email:     in.Email,
		Password:  s.hash.Hash(in.Password),
		SecretKey: secret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to call identity register", "username", in.Username, "error", err)
		return nil, err
	}

	if !resp.OK() {
		slog.WarnContext(ctx, "registration rejected", "username", in.Username, "status", resp.EffectiveStatus())
		return nil, goerror.NewRemote("registration rejected", resp.EffectiveStatus(), resp.Body)
	}

	qrPath := s.cfg.GetString("mfa.qr.path")
	if err := s.totp.RenderImage(uri, qrPath); err != nil {
		slog.ErrorContext(ctx, "failed to render qr image", "path", qrPath, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "username", in.Username, "qr_path", qrPath)

	return &RegisterOutput{Response: resp, QRPath: qrPath}, nil
}
