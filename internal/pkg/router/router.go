package router

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/uid"
	"github.com/shandysiswandi/authkit/internal/pkg/validator"
)

// Exit codes not derived from an error kind.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Handler is the application-style handler used by this router.
//
// It returns a result to print on stdout or an error.
type Handler func(r *Request) (any, error)

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. The first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Config holds dependencies required to build a Router.
type Config struct {
	// Name is the program name shown in usage.
	Name string
	// Config provides runtime configuration values.
	Config config.Config
	// UUID generates invocation correlation IDs.
	UUID uid.StringID
	// Instrument provides tracing and metrics helpers.
	Instrument instrument.Instrumentation
	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type route struct {
	words   []string
	summary string
	handler Handler
}

// Router dispatches command-line arguments to registered subcommands.
type Router struct {
	name   string
	routes []route
	mws    []Middleware
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRouter builds the default application router with standard middleware.
func NewRouter(cfg Config) *Router {
	r := &Router{
		name:   cfg.Name,
		stdin:  cfg.Stdin,
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
	}

	if r.name == "" {
		r.name = "authkit"
	}
	if r.stdin == nil {
		r.stdin = os.Stdin
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}

	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	r.mws = []Middleware{
		middlewareRecoverer,
		middlewareCorrelationID(cfg.UUID),
		middlewareObservability(cfg.Config, ins),
	}

	return r
}

// Handle registers h under a space separated command path such as "otp code".
func (r *Router) Handle(path, summary string, h Handler, mws ...Middleware) {
	r.routes = append(r.routes, route{
		words:   strings.Fields(path),
		summary: summary,
		handler: Chain(h, append(r.mws, mws...)...),
	})
}

// Run dispatches args and returns the process exit code.
func (r *Router) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.usage(r.stderr)
		return ExitUsage
	}

	switch args[0] {
	case "help", "-h", "-help", "--help":
		r.usage(r.stdout)
		return ExitOK
	}

	rt, rest, ok := r.match(args)
	if !ok {
		fmt.Fprintf(r.stderr, "unknown command %q\n\n", strings.Join(args, " "))
		r.usage(r.stderr)
		return ExitUsage
	}

	req := &Request{
		ctx:     ctx,
		Command: strings.Join(rt.words, " "),
		Args:    rest,
		Stdin:   r.stdin,
		Stdout:  r.stdout,
		Stderr:  r.stderr,
	}

	resp, err := rt.handler(req)
	if err != nil {
		return r.writeError(ctx, err)
	}

	return r.writeResult(resp)
}

func (r *Router) match(args []string) (route, []string, bool) {
	var (
		best  route
		found bool
	)

	for _, rt := range r.routes {
		if len(rt.words) > len(args) || (found && len(rt.words) <= len(best.words)) {
			continue
		}

		matched := true
		for i, w := range rt.words {
			if args[i] != w {
				matched = false
				break
			}
		}

		if matched {
			best, found = rt, true
		}
	}

	if !found {
		return route{}, nil, false
	}

	return best, args[len(best.words):], true
}

func (r *Router) usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-config path] <command> [flags]\n\nCommands:\n", r.name)

	lines := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		lines = append(lines, fmt.Sprintf("  %-14s %s", strings.Join(rt.words, " "), rt.summary))
	}
	sort.Strings(lines)

	fmt.Fprintln(w, strings.Join(lines, "\n"))
	fmt.Fprintf(w, "\nRun '%s <command> -h' for command flags.\n", r.name)
}

func (r *Router) writeResult(resp any) int {
	code := ExitOK
	if c, ok := resp.(interface{ ExitCode() int }); ok {
		code = c.ExitCode()
	}

	switch v := resp.(type) {
	case nil:
	case string:
		fmt.Fprintln(r.stdout, v)
	case fmt.Stringer:
		fmt.Fprintln(r.stdout, v.String())
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			slog.Error("failed to encode result to json", "error", err)
			return goerror.ExitCode(goerror.NewServer(err))
		}
		fmt.Fprintln(r.stdout, string(b))
	}

	return code
}

func (r *Router) writeError(ctx context.Context, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "command failed with unexpected error", "error", err)
		fmt.Fprintln(r.stderr, "error: internal error")
		return goerror.ExitCode(err)
	}

	if body := gerr.Body(); len(body) > 0 {
		var buf bytes.Buffer
		if json.Indent(&buf, body, "", "  ") == nil {
			body = buf.Bytes()
		}
		fmt.Fprintln(r.stdout, string(body))
	}

	var errValidate validator.V10ValidationError
	switch {
	case errors.As(err, &errValidate):
		fmt.Fprintln(r.stderr, "error: "+gerr.Msg())
		for _, k := range sortedKeys(errValidate.Values()) {
			fmt.Fprintf(r.stderr, "  %s: %s\n", k, errValidate[k])
		}
	case len(gerr.Fields()) > 0:
		fmt.Fprintln(r.stderr, "error: "+gerr.Msg())
		for _, k := range sortedKeys(gerr.Fields()) {
			fmt.Fprintf(r.stderr, "  %s: %s\n", k, gerr.Fields()[k])
		}
	default:
		fmt.Fprintln(r.stderr, "error: "+gerr.Error())
	}

	return gerr.ExitCode()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
