package entity

// RegisterPayload is the body of a registration request.
//
// Field names are fixed by the identity service.
type RegisterPayload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"` // hashed
	SecretKey string `json:"secret_key"`
}

// LoginPayload is the body of a login request.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"` // hashed
	OTP      string `json:"otp"`
}
