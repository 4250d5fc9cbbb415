package identity

import (
	"github.com/shandysiswandi/authkit/internal/identity/inbound"
	"github.com/shandysiswandi/authkit/internal/identity/outbound/api"
	"github.com/shandysiswandi/authkit/internal/identity/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/clock"
	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/hash"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/jwt"
	"github.com/shandysiswandi/authkit/internal/pkg/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Prompter   prompt.Prompter            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Hash       hash.Hash                  `validate:"required"`
	Totp       otp.OTP                    `validate:"required"`
	JWT        *jwt.Inspector             `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	UserAgent  string
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	identityAPI, err := api.NewAPI(api.Config{
		EndpointURL:  dep.Config.GetString("identity.endpoint_url"),
		RegisterPath: dep.Config.GetString("identity.register_path"),
		LoginPath:    dep.Config.GetString("identity.login_path"),
		SecretPath:   dep.Config.GetString("identity.secret_path"),
		UserAgent:    dep.UserAgent,
	}, dep.Instrument)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		API:        identityAPI,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Hash:       dep.Hash,
		Totp:       dep.Totp,
		Inspector:  dep.JWT,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterCLICommand(dep.Router, uc, dep.Prompter)

	return nil
}
