package router

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

// Request is a single command invocation.
type Request struct {
	ctx context.Context

	// Command is the matched command path, e.g. "otp code".
	Command string
	// Args are the arguments after the command path.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Context returns the invocation context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// FlagSet returns an empty flag set named after the command that reports
// parse problems to Stderr.
func (r *Request) FlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(r.Command, flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	return fs
}

// Parse parses the request arguments into fs. Positional leftovers are
// rejected. A help request returns flag.ErrHelp as is.
func (r *Request) Parse(fs *flag.FlagSet) error {
	if err := fs.Parse(r.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return goerror.NewInvalidInput(err)
	}

	if fs.NArg() > 0 {
		return goerror.NewInvalidInput(nil, "args", "unexpected argument "+fs.Arg(0))
	}

	return nil
}
