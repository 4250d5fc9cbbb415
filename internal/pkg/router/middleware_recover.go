package router

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/stacktrace"
)

//nolint:err113 // panic value is dynamic
func middlewareRecoverer(next Handler) Handler {
	return func(r *Request) (resp any, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				paths := stacktrace.InternalFrames(2)
				if len(paths) == 0 {
					slog.ErrorContext(r.Context(), "panic on command trace debug", "command", r.Command, "because", rvr, "stack", string(debug.Stack()))
				} else {
					slog.ErrorContext(r.Context(), "panic on command", "command", r.Command, "because", rvr, "stack", paths)
				}

				resp = nil
				err = goerror.NewServer(fmt.Errorf("panic: %v", rvr))
			}
		}()

		return next(r)
	}
}
