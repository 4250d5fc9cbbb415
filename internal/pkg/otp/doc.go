// Package otp provides the second-factor manager: it mints TOTP shared
// secrets, builds the otpauth:// key URI an authenticator app imports,
// renders that URI as a QR image, and computes and validates RFC 6238 codes.
//
// Every operation is a function of its explicit inputs. Only GenerateSecret
// draws randomness and only RenderImage touches the filesystem.
package otp
