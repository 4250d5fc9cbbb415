package inbound

import (
	"context"

	"github.com/shandysiswandi/authkit/internal/encryption/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
)

type uc interface {
	Encrypt(ctx context.Context, in usecase.EncryptInput) (string, error)
	Decrypt(ctx context.Context, in usecase.DecryptInput) (string, error)
}

func RegisterCLICommand(r *router.Router, uc uc, p prompt.Prompter) {
	end := &CLICommand{uc: uc, prompter: p}

	r.Handle("encrypt", "Encrypt text with a password", end.Encrypt)
	r.Handle("decrypt", "Decrypt text with a password", end.Decrypt)
}
