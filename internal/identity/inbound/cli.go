package inbound

import (
	"context"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/identity/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RequestSecret(ctx context.Context, in usecase.RequestSecretInput) (*entity.Response, error)

	CurrentCode(ctx context.Context, secret string) (string, error)
	VerifyCode(ctx context.Context, code, secret string) (bool, error)
	Provision(ctx context.Context, in usecase.ProvisionInput) (*usecase.ProvisionOutput, error)
	Digest(ctx context.Context, password string) (string, error)
}

func RegisterCLICommand(r *router.Router, uc uc, p prompt.Prompter) {
	end := &CLICommand{uc: uc, prompter: p}

	// Identity service
	r.Handle("register", "Register a user and write the TOTP QR image", end.Register)
	r.Handle("login", "Log in with password and one-time code", end.Login)
	r.Handle("secret", "Request the account secret with a bearer token", end.RequestSecret)

	// Dev helpers
	r.Handle("otp code", "Print the current code for a secret", end.OTPCode)
	r.Handle("otp verify", "Check a code against a secret", end.OTPVerify)
	r.Handle("otp qr", "Re-render the QR image for a secret", end.OTPQR)
	r.Handle("hash", "Print the wire digest of a password", end.Hash)
}
