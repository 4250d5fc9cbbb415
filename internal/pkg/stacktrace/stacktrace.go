// Package stacktrace trims goroutine stacks down to this module's frames.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 64

// InternalFrames returns "internal/<pkg>/<file>.go:<line>" for each caller
// frame that lives under an internal/ directory. skip counts frames above
// the caller of InternalFrames, like runtime.Callers.
func InternalFrames(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	for {
		f, more := frames.Next()
		if p, ok := shorten(f.File); ok {
			out = append(out, p+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}

	return out
}

func shorten(file string) (string, bool) {
	idx := strings.LastIndex(file, "/internal/")
	if idx == -1 || !strings.HasSuffix(file, ".go") {
		return "", false
	}
	return file[idx+1:], true
}
