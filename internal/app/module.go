package app

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/authkit/internal/encryption"
	"github.com/shandysiswandi/authkit/internal/identity"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

func (a *App) initModules(context.Context) error {
	if err := identity.New(identity.Dependency{
		Router:     a.router,
		Prompter:   a.prompter,
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
		Hash:       a.hash,
		Totp:       a.totp,
		JWT:        a.jwt,
		Clock:      a.clock,
		UserAgent:  a.config.GetString("app.name") + "/" + a.config.GetString("app.version"),
	}); err != nil {
		slog.Error("failed to init module identity", "error", err)
		return goerror.NewServer(err)
	}

	if err := encryption.New(encryption.Dependency{
		Router:     a.router,
		Prompter:   a.prompter,
		Instrument: a.ins,
		Validator:  a.validator,
		Encryptor:  a.encryptor,
	}); err != nil {
		slog.Error("failed to init module encryption", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
