package app

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"strings"

	libOTP "github.com/pquerna/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/clock"
	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/encrypt"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/hash"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/jwt"
	"github.com/shandysiswandi/authkit/internal/pkg/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
	"github.com/shandysiswandi/authkit/internal/pkg/uid"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
)

const (
	envPrefix         = "AUTHKIT"
	defaultConfigPath = "./config/config.yaml"
)

// parseGlobal splits the global flags from the command and its flags.
func parseGlobal(args []string, opts Options) (string, []string, error) {
	fs := flag.NewFlagSet("authkit", flag.ContinueOnError)
	fs.SetOutput(opts.Stderr)

	configPath := fs.String("config", "", "path to a YAML config file (default $CONFIG_PATH or "+defaultConfigPath+")")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", []string{"help"}, nil
		}
		return "", nil, goerror.NewInvalidInput(err)
	}

	return *configPath, fs.Args(), nil
}

func (a *App) initConfig(context.Context) error {
	path, rest, err := parseGlobal(a.opts.Args, a.opts)
	if err != nil {
		return err
	}
	a.command = rest

	optional := false
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	}
	if path == "" {
		path = defaultConfigPath
		optional = true
	}

	opts := []config.Option{
		config.WithDefaults("yaml", defaultConfig),
		config.WithEnvPrefix(envPrefix),
	}
	if optional {
		opts = append(opts, config.WithOptionalFile())
	}

	cfg, err := config.NewViper(path, opts...)
	if err != nil {
		return goerror.NewIO("failed to load config "+path, err)
	}

	a.config = cfg

	return nil
}

func (a *App) initInstrument(ctx context.Context) error {
	ins, err := instrument.New(ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
		LogOutput:        a.opts.LogOutput,
	})
	if err != nil {
		return goerror.NewServer(err)
	}
	a.ins = ins

	a.closers = append(a.closers, struct {
		name string
		fn   func(context.Context) error
	}{
		name: "Instrument",
		fn:   a.ins.Shutdown,
	})

	return nil
}

func (a *App) initLibraries(context.Context) error {
	v, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		return goerror.NewServer(err)
	}
	a.validator = v

	s := loadSettings(a.config)
	if err := a.validator.Validate(s); err != nil {
		slog.Error("invalid configuration", "error", err)
		return goerror.NewInvalidInput(err)
	}

	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.hash = hash.NewBlake2b()
	a.jwt = jwt.NewInspector()
	a.encryptor = encrypt.NewPassword()
	a.prompter = prompt.NewTerminal(a.opts.Stdin, a.opts.Stderr)
	a.totp = otp.NewTOTP(otp.Config{
		Period:    s.Period,
		Digits:    libOTP.Digits(s.Digits),
		ImageSize: s.QRSize,
	})

	return nil
}

func (a *App) initRouter(context.Context) error {
	a.router = router.NewRouter(router.Config{
		Name:       a.config.GetString("app.name"),
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Stdin:      a.opts.Stdin,
		Stdout:     a.opts.Stdout,
		Stderr:     a.opts.Stderr,
	})

	return nil
}

func instrumentLogError(ctx context.Context, name string, err error) {
	slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
}
