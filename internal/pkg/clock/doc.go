// Package clock provides a tiny time abstraction.
//
// TOTP codes and token expiry depend on the current time, so code that needs
// "now" takes a Clocker instead of calling time.Now() directly. Tests pass a
// Fixed clock to pin the TOTP step.
package clock
