package inbound

import (
	"github.com/shandysiswandi/authkit/internal/encryption/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
)

// CLICommand exposes the encryption utility as subcommands.
type CLICommand struct {
	uc       uc
	prompter prompt.Prompter
}

func (h *CLICommand) password(v string) (string, error) {
	if v != "" {
		return v, nil
	}

	pw, err := h.prompter.Secret("Password")
	if err != nil {
		return "", goerror.NewInvalidInput(nil, "password", "password is required")
	}

	return pw, nil
}

func (h *CLICommand) Encrypt(r *router.Request) (any, error) {
	var text, password string

	fs := r.FlagSet()
	fs.StringVar(&text, "text", "", "plaintext to encrypt")
	fs.StringVar(&password, "password", "", "encryption password (prompted when omitted)")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	pw, err := h.password(password)
	if err != nil {
		return nil, err
	}

	return h.uc.Encrypt(r.Context(), usecase.EncryptInput{Text: text, Password: pw})
}

func (h *CLICommand) Decrypt(r *router.Request) (any, error) {
	var (
		in       usecase.DecryptInput
		password string
	)

	fs := r.FlagSet()
	fs.StringVar(&in.Text, "text", "", "ciphertext to decrypt")
	fs.StringVar(&password, "password", "", "encryption password (prompted when omitted)")
	fs.BoolVar(&in.Legacy, "legacy", false, "read the older CBC format")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	pw, err := h.password(password)
	if err != nil {
		return nil, err
	}
	in.Password = pw

	return h.uc.Decrypt(r.Context(), in)
}
