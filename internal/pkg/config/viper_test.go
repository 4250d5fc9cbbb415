package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const defaultsYAML = `
identity:
  endpoint_url: https://identity.example.com/default
  login_path: /login
mfa:
  totp:
    period: 30
    issuer_name: NDUK
instrument:
  enabled: false
  metric_interval_seconds: 15
  trace_sample_ratio: 0.5
  log_mask_fields: "password, secret_key,,otp "
`

func TestNewViperFromBytes(t *testing.T) {
	t.Parallel()

	cfg, err := NewViperFromBytes("yaml", []byte(defaultsYAML))
	require.NoError(t, err)

	require.Equal(t, "https://identity.example.com/default", cfg.GetString("identity.endpoint_url"))
	require.Equal(t, 30, cfg.GetInt("mfa.totp.period"))
	require.Equal(t, uint(30), cfg.GetUint("mfa.totp.period"))
	require.False(t, cfg.GetBool("instrument.enabled"))
	require.Equal(t, 15*time.Second, cfg.GetSecond("instrument.metric_interval_seconds"))
	require.InDelta(t, 0.5, cfg.GetFloat64("instrument.trace_sample_ratio"), 1e-9)
	require.Equal(t, []string{"password", "secret_key", "otp"}, cfg.GetArray("instrument.log_mask_fields"))
	require.Empty(t, cfg.GetArray("missing.key"))
	require.Empty(t, cfg.GetString("missing.key"))
}

func TestNewViperFromBytesRequiresType(t *testing.T) {
	t.Parallel()

	_, err := NewViperFromBytes(" ", []byte(defaultsYAML))
	require.Error(t, err)
}

func TestNewViperMergesFileOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("identity:\n  endpoint_url: https://override.example.com\n"), 0o600))

	cfg, err := NewViper(path, WithDefaults("yaml", []byte(defaultsYAML)))
	require.NoError(t, err)

	require.Equal(t, "https://override.example.com", cfg.GetString("identity.endpoint_url"))
	require.Equal(t, "/login", cfg.GetString("identity.login_path"))
	require.Equal(t, "NDUK", cfg.GetString("mfa.totp.issuer_name"))
}

func TestNewViperMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := NewViper(path, WithDefaults("yaml", []byte(defaultsYAML)))
	require.Error(t, err)

	cfg, err := NewViper(path, WithDefaults("yaml", []byte(defaultsYAML)), WithOptionalFile())
	require.NoError(t, err)
	require.Equal(t, "NDUK", cfg.GetString("mfa.totp.issuer_name"))
}

func TestNewViperEnvOverride(t *testing.T) {
	t.Setenv("AUTHKIT_IDENTITY_ENDPOINT_URL", "https://env.example.com")
	t.Setenv("AUTHKIT_MFA_TOTP_ISSUER_NAME", "EnvIssuer")

	cfg, err := NewViper("", WithDefaults("yaml", []byte(defaultsYAML)), WithEnvPrefix("AUTHKIT"))
	require.NoError(t, err)

	require.Equal(t, "https://env.example.com", cfg.GetString("identity.endpoint_url"))
	require.Equal(t, "EnvIssuer", cfg.GetString("mfa.totp.issuer_name"))
	require.Equal(t, "/login", cfg.GetString("identity.login_path"))
}
