package inbound

import (
	"strings"
)

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

type RegisterResponse struct {
	Body   string
	QRPath string
}

func (r RegisterResponse) String() string {
	return r.Body + "\nCredentials don't exist yet, so user has been created. " +
		"Please scan and add the QR code at " + r.QRPath + " to your list of OTP credentials."
}

type LoginRequest struct {
	Username string
	Password string
	OTP      string
}

type LoginResponse struct {
	Body  string
	Token string
}

func (r LoginResponse) String() string {
	if r.Token == "" {
		return r.Body
	}
	return r.Body + "\ntoken: " + r.Token
}

type SecretResponse struct {
	Body string
}

func (r SecretResponse) String() string {
	return r.Body
}

type OTPVerifyResponse struct {
	Valid bool
}

func (r OTPVerifyResponse) String() string {
	if r.Valid {
		return "valid"
	}
	return "invalid"
}

// ExitCode reports an invalid code as a business failure.
func (r OTPVerifyResponse) ExitCode() int {
	if r.Valid {
		return 0
	}
	return 1
}

type OTPQRResponse struct {
	URI  string
	Path string
}

func (r OTPQRResponse) String() string {
	return strings.Join([]string{"uri: " + r.URI, "qr: " + r.Path}, "\n")
}
