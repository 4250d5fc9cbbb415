package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

type RequestSecretInput struct {
	Token string `validate:"required"`
}

func (s *Usecase) RequestSecret(ctx context.Context, in RequestSecretInput) (*entity.Response, error) {
	ctx, span := s.startSpan(ctx, "RequestSecret")
	defer span.End()

	in.Token = strings.TrimSpace(in.Token)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims, err := s.inspector.Inspect(in.Token)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "token", err.Error())
	}

	if claims.ExpiredAt(s.clock.Now()) {
		// The service is the authority on expiry; send it anyway.
		slog.WarnContext(ctx, "bearer token looks expired", "sub", claims.Subject, "exp", claims.ExpiresAt.Time)
	}

	resp, err := s.api.RequestSecret(ctx, in.Token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to call identity secret request", "sub", claims.Subject, "error", err)
		return nil, err
	}

	if !resp.OK() {
		slog.WarnContext(ctx, "secret request rejected", "sub", claims.Subject, "status", resp.EffectiveStatus())
		return nil, goerror.NewRemote("secret request rejected", resp.EffectiveStatus(), resp.Body)
	}

	return resp, nil
}
