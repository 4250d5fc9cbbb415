package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

type options struct {
	envPrefix    string
	defaultsType string
	defaults     []byte
	optional     bool
}

// Option customises how configuration is loaded.
type Option func(*options)

// WithEnvPrefix lets environment variables override keys: with prefix
// "AUTHKIT", key "identity.endpoint_url" reads AUTHKIT_IDENTITY_ENDPOINT_URL.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithDefaults seeds every key from an in-memory document of configType
// (e.g. "yaml") before the file is merged over it.
func WithDefaults(configType string, data []byte) Option {
	return func(o *options) {
		o.defaultsType = configType
		o.defaults = data
	}
}

// WithOptionalFile tolerates a missing config file; defaults and
// environment still apply.
func WithOptionalFile() Option {
	return func(o *options) { o.optional = true }
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := newViper(o)

	if len(o.defaults) > 0 {
		d := viper.New()
		d.SetConfigType(o.defaultsType)
		if err := d.ReadConfig(bytes.NewReader(o.defaults)); err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(d.AllSettings()); err != nil {
			return nil, err
		}
	}

	if pathFile == "" {
		return &Viper{v: v}, nil
	}

	v.SetConfigFile(pathFile)
	if err := v.MergeInConfig(); err != nil {
		if o.optional && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config file not found, using defaults", "path", pathFile)
			return &Viper{v: v}, nil
		}
		return nil, err
	}

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte, opts ...Option) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := newViper(o)
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newViper(o options) *viper.Viper {
	v := viper.New()
	if o.envPrefix != "" {
		v.SetEnvPrefix(o.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	return v
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetUint returns the value for key as uint.
func (vc *Viper) GetUint(key string) uint {
	return vc.v.GetUint(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas.
func (vc *Viper) GetArray(key string) []string {
	parts := lo.Map(strings.Split(vc.v.GetString(key), ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}
