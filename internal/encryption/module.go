package encryption

import (
	"github.com/shandysiswandi/authkit/internal/encryption/inbound"
	"github.com/shandysiswandi/authkit/internal/encryption/usecase"
	"github.com/shandysiswandi/authkit/internal/pkg/encrypt"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Prompter   prompt.Prompter            `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Encryptor  *encrypt.Password          `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Encryptor:  dep.Encryptor,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterCLICommand(dep.Router, uc, dep.Prompter)

	return nil
}
