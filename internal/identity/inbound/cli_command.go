package inbound

import (
	"github.com/shandysiswandi/authkit/internal/identity/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
)

// CLICommand exposes the identity workflow as subcommands.
type CLICommand struct {
	uc       uc
	prompter prompt.Prompter
}

// password returns v, or prompts for it when empty.
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

// Register hashes the password, sends a fresh secret to the identity service
// and writes the QR image on success.
func (h *CLICommand) Register(r *router.Request) (any, error) {
	var req RegisterRequest

	fs := r.FlagSet()
	fs.StringVar(&req.Username, "username", "", "account username")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password (prompted when omitted)")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	pw, err := h.password(req.Password)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: pw,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Body: resp.Response.Pretty(), QRPath: resp.QRPath}, nil
}

// Login authenticates with the password digest and a one-time code.
func (h *CLICommand) Login(r *router.Request) (any, error) {
	var req LoginRequest

	fs := r.FlagSet()
	fs.StringVar(&req.Username, "username", "", "account username")
	fs.StringVar(&req.Password, "password", "", "account password (prompted when omitted)")
	fs.StringVar(&req.OTP, "otp", "", "current one-time code")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	pw, err := h.password(req.Password)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: pw,
		OTP:      req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{Body: resp.Response.Pretty(), Token: resp.Token}, nil
}

// RequestSecret passes a bearer token through to the secret endpoint.
func (h *CLICommand) RequestSecret(r *router.Request) (any, error) {
	var token string

	fs := r.FlagSet()
	fs.StringVar(&token, "token", "", "bearer token from login")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestSecret(r.Context(), usecase.RequestSecretInput{Token: token})
	if err != nil {
		return nil, err
	}

	return SecretResponse{Body: resp.Pretty()}, nil
}

func (h *CLICommand) OTPCode(r *router.Request) (any, error) {
	var secret string

	fs := r.FlagSet()
	fs.StringVar(&secret, "secret", "", "base32 shared secret")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	if secret == "" {
		return nil, goerror.NewInvalidInput(nil, "secret", "secret is required")
	}

	return h.uc.CurrentCode(r.Context(), secret)
}

func (h *CLICommand) OTPVerify(r *router.Request) (any, error) {
	var secret, code string

	fs := r.FlagSet()
	fs.StringVar(&secret, "secret", "", "base32 shared secret")
	fs.StringVar(&code, "code", "", "code to check")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	if secret == "" {
		return nil, goerror.NewInvalidInput(nil, "secret", "secret is required")
	}

	ok, err := h.uc.VerifyCode(r.Context(), code, secret)
	if err != nil {
		return nil, err
	}

	return OTPVerifyResponse{Valid: ok}, nil
}

func (h *CLICommand) OTPQR(r *router.Request) (any, error) {
	var in usecase.ProvisionInput

	fs := r.FlagSet()
	fs.StringVar(&in.Secret, "secret", "", "base32 shared secret")
	fs.StringVar(&in.Destination, "out", "", "PNG destination (defaults to mfa.qr.path)")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	out, err := h.uc.Provision(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return OTPQRResponse{URI: out.URI, Path: out.Path}, nil
}

func (h *CLICommand) Hash(r *router.Request) (any, error) {
	var password string

	fs := r.FlagSet()
	fs.StringVar(&password, "password", "", "password to hash (prompted when omitted)")
	if err := r.Parse(fs); err != nil {
		return nil, err
	}

	pw, err := h.password(password)
	if err != nil {
		return nil, err
	}

	return h.uc.Digest(r.Context(), pw)
}
