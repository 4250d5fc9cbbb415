package app

import (
	"context"
	_ "embed"
	"io"
	"os"

	"github.com/shandysiswandi/authkit/internal/pkg/clock"
	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/encrypt"
	"github.com/shandysiswandi/authkit/internal/pkg/hash"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/jwt"
	"github.com/shandysiswandi/authkit/internal/pkg/otp"
	"github.com/shandysiswandi/authkit/internal/pkg/prompt"
	"github.com/shandysiswandi/authkit/internal/pkg/router"
	"github.com/shandysiswandi/authkit/internal/pkg/uid"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
)

// defaultConfig seeds every key; a config file and AUTHKIT_* env vars override it.
//
//go:embed config.yaml
var defaultConfig []byte

// Options carries the process surface into the App.
type Options struct {
	// Args are the command-line arguments without the program name.
	Args []string
	// Stdin is read for prompted secrets. Nil means os.Stdin.
	Stdin *os.File
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// LogOutput overrides where JSON logs go. Nil means Stderr.
	LogOutput io.Writer
}

// App wires dependencies and runs a single command.
type App struct {
	opts    Options
	command []string

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	hash      hash.Hash
	totp      otp.OTP
	jwt       *jwt.Inspector
	encryptor *encrypt.Password
	prompter  prompt.Prompter

	// dispatch
	router *router.Router

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.LogOutput == nil {
		opts.LogOutput = opts.Stderr
	}

	app := &App{opts: opts}

	steps := []func(context.Context) error{
		app.initConfig,
		app.initInstrument,
		app.initLibraries,
		app.initRouter,
		app.initModules,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			app.Stop(ctx)
			return nil, err
		}
	}

	return app, nil
}

// Run dispatches the command and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	return a.router.Run(ctx, a.command)
}

// Stop flushes and closes resources.
func (a *App) Stop(ctx context.Context) {
	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			instrumentLogError(ctx, closer.name, err)
		}
	}
	a.closers = nil
}
