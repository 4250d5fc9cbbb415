package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerate(t *testing.T) {
	t.Parallel()

	g := NewUUID()
	a, b := g.Generate(), g.Generate()
	require.NotEqual(t, a, b)

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), id.Version())
}
