package router

import (
	"errors"
	"flag"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/authkit/internal/pkg/config"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

func getMaskKeys(cfg config.Config) map[string]struct{} {
	maskKeys := make(map[string]struct{})
	if cfg != nil {
		for _, field := range cfg.GetArray("instrument.log_mask_fields") {
			field = strings.TrimSpace(strings.ToLower(field))
			if field == "" {
				continue
			}
			maskKeys[field] = struct{}{}
		}
	}

	return maskKeys
}

// maskArgs hides the values of flags named in maskKeys, in both "-k v" and
// "-k=v" forms.
func maskArgs(args []string, maskKeys map[string]struct{}) []string {
	masked := make([]string, len(args))
	copy(masked, args)

	if len(maskKeys) == 0 {
		return masked
	}

	for i := 0; i < len(masked); i++ {
		arg := masked[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		name, _, hasValue := strings.Cut(name, "=")
		if _, found := maskKeys[strings.ToLower(name)]; !found {
			continue
		}

		if hasValue {
			masked[i] = arg[:strings.Index(arg, "=")+1] + "***"
			continue
		}

		if i+1 < len(masked) && !strings.HasPrefix(masked[i+1], "-") {
			masked[i+1] = "***"
			i++
		}
	}

	return masked
}

func outcomeCode(resp any, err error) int {
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return goerror.ExitCode(err)
	}
	if c, ok := resp.(interface{ ExitCode() int }); ok {
		return c.ExitCode()
	}
	return ExitOK
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	maskKeys := getMaskKeys(cfg)
	tracer := ins.Tracer("cli.command")
	meter := ins.Meter("cli.command")

	commandCounter, err := meter.Int64Counter("authkit.cli.commands", metric.WithDescription("Number of commands executed"))
	if err != nil {
		slog.Error("failed to create command counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("authkit.cli.duration", metric.WithDescription("Command duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create command duration histogram", "error", err)
	}

	return func(next Handler) Handler {
		return func(r *Request) (any, error) {
			start := time.Now()

			ctx, span := tracer.Start(
				r.Context(),
				r.Command,
				trace.WithAttributes(attribute.String("cli.command", r.Command)),
			)
			defer span.End()

			slog.DebugContext(ctx, "command received", "command", r.Command, "args", maskArgs(r.Args, maskKeys))

			resp, err := next(r.WithContext(ctx))

			code := outcomeCode(resp, err)
			attrs := []attribute.KeyValue{
				attribute.String("cli.command", r.Command),
				attribute.Int("cli.exit_code", code),
			}

			if err != nil && code != ExitOK {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(attrs...)
			if commandCounter != nil {
				commandCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
			}

			slog.DebugContext(
				ctx,
				"command finished",
				"command", r.Command,
				"exit_code", code,
				"latency_ms", time.Since(start).Milliseconds(),
			)

			return resp, err
		}
	}
}
