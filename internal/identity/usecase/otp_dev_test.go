package usecase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestCurrentCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{}, time.Unix(0, 0), "nduk@duvera.co.uk")

	code, err := f.uc.CurrentCode(context.Background(), "JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	require.Equal(t, "282760", code)

	_, err = f.uc.CurrentCode(context.Background(), "NOT0BASE32")
	require.ErrorIs(t, err, goerror.ErrDecode)
}

func TestVerifyCode(t *testing.T) {
	t.Parallel()

	// Codes for JBSWY3DPEHPK3PXP at steps 0, 1 and 2.
	f := newFixture(t, &fakeAPI{}, time.Unix(0, 0), "nduk@duvera.co.uk")

	tests := []struct {
		code string
		want bool
	}{
		{code: "282760", want: true},
		{code: "996554", want: true},
		{code: "602287", want: false},
		{code: "12345", want: false},
	}

	for _, tt := range tests {
		ok, err := f.uc.VerifyCode(context.Background(), tt.code, "JBSWY3DPEHPK3PXP")
		require.NoError(t, err)
		require.Equal(t, tt.want, ok, tt.code)
	}
}

func TestProvision(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{}, time.Unix(0, 0), "nduk@duvera.co.uk")

	out, err := f.uc.Provision(context.Background(), ProvisionInput{Secret: "JBSWY3DPEHPK3PXP"})
	require.NoError(t, err)
	require.Equal(t, f.qrPath, out.Path)

	u, err := url.Parse(out.URI)
	require.NoError(t, err)
	require.Equal(t, "otpauth", u.Scheme)
	require.Equal(t, "totp", u.Host)
	require.Equal(t, "NDUK", u.Query().Get("issuer"))
	require.Equal(t, "JBSWY3DPEHPK3PXP", u.Query().Get("secret"))

	_, err = os.Stat(f.qrPath)
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.png")
	out, err = f.uc.Provision(context.Background(), ProvisionInput{Secret: "JBSWY3DPEHPK3PXP", Destination: other})
	require.NoError(t, err)
	require.Equal(t, other, out.Path)
	_, err = os.Stat(other)
	require.NoError(t, err)
}

func TestProvisionErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{}, time.Unix(0, 0), "nduk@duvera.co.uk")

	_, err := f.uc.Provision(context.Background(), ProvisionInput{})
	require.ErrorIs(t, err, goerror.ErrInvalidInput)

	_, err = f.uc.Provision(context.Background(), ProvisionInput{Secret: "1111"})
	require.ErrorIs(t, err, goerror.ErrDecode)

	_, err = f.uc.Provision(context.Background(), ProvisionInput{
		Secret:      "JBSWY3DPEHPK3PXP",
		Destination: filepath.Join(t.TempDir(), "missing", "qr.png"),
	})
	require.ErrorIs(t, err, goerror.ErrIO)
}

func TestDigest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{}, time.Unix(0, 0), "nduk@duvera.co.uk")

	got, err := f.uc.Digest(context.Background(), "password2")
	require.NoError(t, err)
	require.Equal(t, digestPassword2, got)

	_, err = f.uc.Digest(context.Background(), "")
	require.ErrorIs(t, err, goerror.ErrInvalidInput)
}
