package router

import (
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"github.com/shandysiswandi/authkit/internal/pkg/uid"
)

// middlewareCorrelationID tags every invocation with a fresh id. It travels
// in the context to log records and outbound request headers.
func middlewareCorrelationID(uid uid.StringID) Middleware {
	return func(next Handler) Handler {
		return func(r *Request) (any, error) {
			if uid == nil || instrument.GetCorrelationID(r.Context()) != "" {
				return next(r)
			}

			return next(r.WithContext(instrument.SetCorrelationID(r.Context(), uid.Generate())))
		}
	}
}
