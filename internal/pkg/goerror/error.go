package goerror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEncoding indicates a value could not be encoded (key URI, QR image).
	ErrEncoding = errors.New("encoding error")

	// ErrDecode indicates a value could not be decoded (base32 secret, ciphertext).
	ErrDecode = errors.New("decode error")

	// ErrIO indicates a filesystem read or write failed.
	ErrIO = errors.New("io error")

	// ErrTransport indicates the identity service could not be reached.
	ErrTransport = errors.New("transport error")

	// ErrRemote indicates the identity service answered with a rejection.
	ErrRemote = errors.New("remote rejected request")

	// ErrInvalidInput indicates the caller supplied unusable input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an unexpected failure.
	ErrInternal = errors.New("internal error")
)

// Kind classifies errors into the buckets callers act on.
type Kind int

const (
	// KindInternal represents an unexpected failure.
	KindInternal Kind = iota
	// KindEncoding represents an encoding failure.
	KindEncoding
	// KindDecode represents a decoding failure.
	KindDecode
	// KindIO represents a filesystem failure.
	KindIO
	// KindTransport represents a network failure before any response.
	KindTransport
	// KindRemote represents a non-success answer from the identity service.
	KindRemote
	// KindInvalidInput represents unusable caller input.
	KindInvalidInput
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "ERROR_KIND_ENCODING"
	case KindDecode:
		return "ERROR_KIND_DECODE"
	case KindIO:
		return "ERROR_KIND_IO"
	case KindTransport:
		return "ERROR_KIND_TRANSPORT"
	case KindRemote:
		return "ERROR_KIND_REMOTE"
	case KindInvalidInput:
		return "ERROR_KIND_INVALID_INPUT"
	case KindInternal:
		return "ERROR_KIND_INTERNAL"
	default:
		return "ERROR_KIND_UNKNOWN"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEncoding:
		return ErrEncoding
	case KindDecode:
		return ErrDecode
	case KindIO:
		return ErrIO
	case KindTransport:
		return ErrTransport
	case KindRemote:
		return ErrRemote
	case KindInvalidInput:
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}

// Error is a structured error used across the application.
//
// It wraps an underlying error while carrying a user-facing message and a
// kind. errors.Is matches both the wrapped error and the kind's sentinel, so
// callers can test errors.Is(err, goerror.ErrDecode) without unwrapping.
type Error struct {
	err    error
	msg    string
	kind   Kind
	status int
	body   []byte
	fields map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case len(e.fields) > 0:
		keys := make([]string, 0, len(e.fields))
		for k := range e.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.fields[k])
		}
		return e.msg + ": " + strings.Join(parts, ", ")
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		return e.kind.sentinel().Error()
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Kind: %s, Status: %d, Message: %s, Underlying Error: %v",
		e.kind.String(),
		e.status,
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Kind returns the error kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Status returns the status reported by the identity service for remote errors.
func (e *Error) Status() int {
	return e.status
}

// Body returns the raw response body for remote errors.
func (e *Error) Body() []byte {
	return e.body
}

// Fields returns validation errors (field to message map), if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.kind.sentinel()
}

// ExitCode maps the error kind to a process exit code.
func (e *Error) ExitCode() int {
	switch e.kind {
	case KindInvalidInput:
		return 2
	case KindEncoding, KindDecode:
		return 3
	case KindIO:
		return 4
	case KindTransport:
		return 5
	case KindRemote:
		return 6
	default:
		return 7
	}
}

func new(err error, msg string, kind Kind) error {
	return &Error{err: err, msg: msg, kind: kind}
}

// NewEncoding creates an encoding error.
func NewEncoding(msg string, err error) error {
	return new(err, msg, KindEncoding)
}

// NewDecode creates a decode error.
func NewDecode(msg string, err error) error {
	return new(err, msg, KindDecode)
}

// NewIO creates a filesystem error.
func NewIO(msg string, err error) error {
	return new(err, msg, KindIO)
}

// NewTransport creates a transport error for a request that got no response.
func NewTransport(err error) error {
	return new(err, "identity service unreachable", KindTransport)
}

// NewRemote creates a rejection error carrying the identity service status and body.
func NewRemote(msg string, status int, body []byte) error {
	return &Error{msg: fmt.Sprintf("%s (status %d)", msg, status), kind: KindRemote, status: status, body: body}
}

// NewServer creates an internal error wrapping err.
func NewServer(err error) error {
	return new(err, "internal error", KindInternal)
}

// NewInvalidInput creates an invalid-input error from an underlying error or
// from field/message pairs.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return new(err, "validation error", KindInvalidInput)
	}

	if len(kv)%2 != 0 {
		return new(nil, "invalid input", KindInvalidInput)
	}

	errCustomValidate := &Error{msg: "validation error", kind: KindInvalidInput, fields: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		errCustomValidate.fields[kv[i]] = kv[i+1]
	}

	return errCustomValidate
}

// ExitCode returns the process exit code for err; nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.ExitCode()
	}

	return 7
}
