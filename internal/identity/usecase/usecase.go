package usecase

import (
	"context"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/pkg/clock"
	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/hash"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/jwt"
	"github.com/shandysiswandi/authkit/internal/pkg/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type identityAPI interface {
	Register(ctx context.Context, in entity.RegisterPayload) (*entity.Response, error)
	Login(ctx context.Context, in entity.LoginPayload) (*entity.Response, error)
	RequestSecret(ctx context.Context, token string) (*entity.Response, error)
}

type tokenInspector interface {
	Inspect(token string) (*jwt.Claims, error)
}

type Usecase struct {
	api       identityAPI
	validator validator.Validator
	cfg       config.Config
	hash      hash.Hash
	totp      otp.OTP
	inspector tokenInspector
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	API        identityAPI
	Validator  validator.Validator
	Config     config.Config
	Hash       hash.Hash
	Totp       otp.OTP
	Inspector  tokenInspector
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		api:       dep.API,
		validator: dep.Validator,
		cfg:       dep.Config,
		hash:      dep.Hash,
		totp:      dep.Totp,
		inspector: dep.Inspector,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// provisioningURI builds the key URI for secret using the configured label and issuer.
func (s *Usecase) provisioningURI(secret string) (string, error) {
	return s.totp.ProvisioningURI(
		secret,
		s.cfg.GetString("mfa.totp.account_label"),
		s.cfg.GetString("mfa.totp.issuer_name"),
	)
}
