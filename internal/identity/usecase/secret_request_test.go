package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestRequestSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
	}{
		{name: "fresh token", now: time.Unix(1663062100, 0)},
		{name: "expired token is still sent", now: time.Unix(1663069293, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &fakeAPI{resp: okResponse(`{"statusCode":200,"body":"s3cr3t"}`)}
			f := newFixture(t, api, tt.now, "nduk@duvera.co.uk")

			resp, err := f.uc.RequestSecret(context.Background(), RequestSecretInput{Token: " " + ambroseToken + "\n"})
			require.NoError(t, err)
			require.Equal(t, 200, resp.EffectiveStatus())
			require.Equal(t, ambroseToken, api.token)
		})
	}
}

func TestRequestSecretMalformedToken(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "abc", "a.b", "a..c", "a.b.c.d"} {
		api := &fakeAPI{resp: okResponse(`{}`)}
		f := newFixture(t, api, time.Unix(0, 0), "nduk@duvera.co.uk")

		_, err := f.uc.RequestSecret(context.Background(), RequestSecretInput{Token: token})
		require.ErrorIs(t, err, goerror.ErrInvalidInput, token)
		require.Zero(t, api.calls, token)
	}
}

func TestRequestSecretRejected(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{resp: okResponse(`{"statusCode":403,"body":"Token expired"}`)}
	f := newFixture(t, api, time.Unix(0, 0), "nduk@duvera.co.uk")

	_, err := f.uc.RequestSecret(context.Background(), RequestSecretInput{Token: ambroseToken})
	require.ErrorIs(t, err, goerror.ErrRemote)
	require.Equal(t, 1, api.calls)
}
