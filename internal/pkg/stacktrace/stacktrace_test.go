package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternalFrames(t *testing.T) {
	frames := InternalFrames(0)
	require.NotEmpty(t, frames)
	require.True(t, strings.HasPrefix(frames[0], "internal/pkg/stacktrace/stacktrace_test.go:"), frames[0])
}

func TestShorten(t *testing.T) {
	got, ok := shorten("/home/dev/authkit/internal/pkg/router/router.go")
	require.True(t, ok)
	require.Equal(t, "internal/pkg/router/router.go", got)

	_, ok = shorten("/usr/local/go/src/runtime/panic.go")
	require.False(t, ok)
}
