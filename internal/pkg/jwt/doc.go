// Package jwt inspects the bearer tokens issued by the identity service.
//
// The client never holds the signing key, so tokens are only parsed for
// shape and claims (subject, role, expiry) and then passed through untouched.
// Nothing here verifies a signature.
package jwt
