package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required,max=128"`
	Password string `validate:"required"`
	OTP      string `validate:"required,numeric,min=6,max=8"`
}

type LoginOutput struct {
	Response *entity.Response
	Token    string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	resp, err := s.api.Login(ctx, entity.LoginPayload{
		Username: in.Username,
		Password: s.hash.Hash(in.Password),
		OTP:      in.OTP,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to call identity login", "username", in.Username, "error", err)
		return nil, err
	}

	if !resp.OK() {
		slog.WarnContext(ctx, "login rejected", "username", in.Username, "status", resp.EffectiveStatus())
		return nil, goerror.NewRemote("login rejected", resp.EffectiveStatus(), resp.Body)
	}

	token := resp.Token()
	if token == "" {
		slog.WarnContext(ctx, "login accepted without a recognizable token", "username", in.Username)
	}

	return &LoginOutput{Response: resp, Token: token}, nil
}
