// Package uid generates identifiers for outbound requests.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
