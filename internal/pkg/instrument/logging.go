package instrument

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const redacted = "***"

// ParseLevel maps a configured level name to a slog level. Unknown names fall
// back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func initLogging(cfg *Config, lp *sdklog.LoggerProvider) {
	slog.SetDefault(slog.New(newHandler(cfg, lp)))
}

// newHandler builds enrich -> redact -> tee(json[, otel]).
func newHandler(cfg *Config, lp *sdklog.LoggerProvider) slog.Handler {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}

	var sink slog.Handler = jsonHandler(out, ParseLevel(cfg.LogLevel))
	if lp != nil {
		sink = teeHandler{sink, otelslog.NewHandler(cfg.ServiceName, otelslog.WithLoggerProvider(lp))}
	}

	return &enrichHandler{
		Handler: &redactHandler{next: sink, keys: newKeySet(cfg.MaskFields)},
		service: cfg.ServiceName,
	}
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}

			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			case slog.SourceKey:
				src, ok := a.Value.Any().(*slog.Source)
				if !ok {
					return a
				}
				idx := strings.LastIndex(src.File, "/internal/")
				if idx == -1 {
					return slog.Attr{}
				}
				return slog.String("file", src.File[idx+1:]+":"+strconv.Itoa(src.Line))
			}
			return a
		},
	})
}

// enrichHandler stamps the correlation id and service name on every record.
type enrichHandler struct {
	slog.Handler
	service string
}

func (h *enrichHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" {
		r.AddAttrs(slog.String("_cID", cID))
	}
	if h.service != "" {
		r.AddAttrs(slog.String("service", h.service))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *enrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &enrichHandler{Handler: h.Handler.WithAttrs(attrs), service: h.service}
}

func (h *enrichHandler) WithGroup(name string) slog.Handler {
	return &enrichHandler{Handler: h.Handler.WithGroup(name), service: h.service}
}

// teeHandler writes each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

// keySet holds lower-cased attribute names whose values are never logged.
type keySet map[string]struct{}

func newKeySet(fields []string) keySet {
	ks := keySet{}
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			ks[f] = struct{}{}
		}
	}
	return ks
}

func (ks keySet) has(key string) bool {
	_, ok := ks[strings.ToLower(key)]
	return ok
}

// redactHandler replaces sensitive values: attributes named in keys, and
// matching members of JSON documents carried as strings or bytes (response
// bodies, request payloads).
type redactHandler struct {
	next slog.Handler
	keys keySet
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, r slog.Record) error {
	if len(h.keys) == 0 {
		return h.next.Handle(ctx, r)
	}

	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.keys.attr(a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.keys.attr(a)
	}
	return &redactHandler{next: h.next.WithAttrs(clean), keys: h.keys}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{next: h.next.WithGroup(name), keys: h.keys}
}

func (ks keySet) attr(a slog.Attr) slog.Attr {
	if ks.has(a.Key) {
		return slog.String(a.Key, redacted)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		members := v.Group()
		clean := make([]slog.Attr, len(members))
		for i, m := range members {
			clean[i] = ks.attr(m)
		}
		a.Value = slog.GroupValue(clean...)
	case slog.KindString:
		if s, ok := ks.document([]byte(v.String())); ok {
			a.Value = slog.StringValue(s)
		}
	case slog.KindAny:
		switch x := v.Any().(type) {
		case []byte:
			if s, ok := ks.document(x); ok {
				a.Value = slog.StringValue(s)
			}
		case map[string]string:
			m := make(map[string]any, len(x))
			for k, s := range x {
				m[k] = s
			}
			a.Value = slog.AnyValue(ks.walk(m))
		case map[string]any, []any:
			a.Value = slog.AnyValue(ks.walk(x))
		}
	}

	return a
}

// document redacts b when it is a JSON object or array.
func (ks keySet) document(b []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return "", false
	}

	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return "", false
	}

	clean, err := json.Marshal(ks.walk(doc))
	if err != nil {
		return "", false
	}
	return string(clean), true
}

func (ks keySet) walk(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			if ks.has(k) {
				out[k] = redacted
				continue
			}
			out[k] = ks.walk(child)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, child := range x {
			out[i] = ks.walk(child)
		}
		return out
	case string:
		// identity service bodies nest JSON documents as strings
		if s, ok := ks.document([]byte(x)); ok {
			return s
		}
		return x
	default:
		return v
	}
}
