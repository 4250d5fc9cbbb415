package instrument

import (
	"context"
	"strings"
)

type correlationKey struct{}

const maxCorrelationIDLen = 128

// SetCorrelationID returns a copy of ctx carrying cid. Values with line breaks
// are dropped and long values are truncated.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	cid = normalizeCorrelationID(cid)
	if cid == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, cid)
}

// GetCorrelationID returns the correlation id stored in ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cid, _ := ctx.Value(correlationKey{}).(string)
	return cid
}

func normalizeCorrelationID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}
