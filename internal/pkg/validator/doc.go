// Package validator provides a small validation abstraction for settings and
// dependency structs.
//
// Callers depend on the Validator interface. The go-playground/validator v10
// implementation reports failures keyed by the field's `key` tag, so a bad
// setting is reported under the configuration key the user has to fix.
package validator

// Validator validates a struct and returns a descriptive error on failure.
type Validator interface {
	Validate(data any) error
}
