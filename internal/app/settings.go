package app

import (
	"github.com/shandysiswandi/authkit/internal/pkg/config"
)

// settings is the validated view of the keys the modules depend on.
type settings struct {
	EndpointURL  string `key:"identity.endpoint_url" validate:"required,url"`
	RegisterPath string `key:"identity.register_path" validate:"required"`
	LoginPath    string `key:"identity.login_path" validate:"required"`
	SecretPath   string `key:"identity.secret_path" validate:"required"`
	AccountLabel string `key:"mfa.totp.account_label" validate:"otplabel"`
	IssuerName   string `key:"mfa.totp.issuer_name" validate:"otplabel"`
	Period       uint   `key:"mfa.totp.period" validate:"gte=1"`
	Digits       int    `key:"mfa.totp.digits" validate:"oneof=6 8"`
	QRPath       string `key:"mfa.qr.path" validate:"required"`
	QRSize       int    `key:"mfa.qr.size" validate:"gte=64,lte=4096"`
	LogLevel     string `key:"instrument.log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

func loadSettings(cfg config.Config) settings {
	return settings{
		EndpointURL:  cfg.GetString("identity.endpoint_url"),
		RegisterPath: cfg.GetString("identity.register_path"),
		LoginPath:    cfg.GetString("identity.login_path"),
		SecretPath:   cfg.GetString("identity.secret_path"),
		AccountLabel: cfg.GetString("mfa.totp.account_label"),
		IssuerName:   cfg.GetString("mfa.totp.issuer_name"),
		Period:       cfg.GetUint("mfa.totp.period"),
		Digits:       cfg.GetInt("mfa.totp.digits"),
		QRPath:       cfg.GetString("mfa.qr.path"),
		QRSize:       cfg.GetInt("mfa.qr.size"),
		LogLevel:     cfg.GetString("instrument.log_level"),
	}
}
