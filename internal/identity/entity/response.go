package entity

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// StatusOK is the effective status of an accepted request.
const StatusOK = 200

// tokenKeys lists the body fields that may carry a bearer token, in lookup order.
var tokenKeys = []string{"token", "jwt", "jwt-token", "access_token"}

// Response is what the identity service answered.
type Response struct {
	// HTTPStatus is the status line code.
	HTTPStatus int
	// Body is the raw response body.
	Body []byte
}

// envelope mirrors the API gateway proxy response the service replies with.
type envelope struct {
	StatusCode *int            `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// EffectiveStatus returns the body's statusCode when present, else the HTTP status.
func (r *Response) EffectiveStatus() int {
	var env envelope
	if err := json.Unmarshal(r.Body, &env); err == nil && env.StatusCode != nil {
		return *env.StatusCode
	}
	return r.HTTPStatus
}

// OK reports whether the effective status is 200.
func (r *Response) OK() bool {
	return r.EffectiveStatus() == StatusOK
}

// Token extracts a bearer token from the body on a best-effort basis.
//
// It looks at the well-known token fields at the top level, then inside the
// envelope's body, which may be a JSON object, a JSON-encoded string holding
// an object, or the token itself. It returns "" when nothing token-shaped is found.
func (r *Response) Token() string {
	return findToken(r.Body, 0)
}

// Pretty returns the body indented when it is JSON, else the body as is.
func (r *Response) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
		return string(r.Body)
	}
	return buf.String()
}

func findToken(raw []byte, depth int) string {
	if depth > 2 || len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if looksLikeToken(str) {
			return strings.TrimSpace(str)
		}
		return findToken([]byte(str), depth+1)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}

	for _, k := range tokenKeys {
		var v string
		if err := json.Unmarshal(obj[k], &v); err == nil && looksLikeToken(v) {
			return strings.TrimSpace(v)
		}
	}

	return findToken(obj["body"], depth+1)
}

func looksLikeToken(s string) bool {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\r\n{}\"") {
			return false
		}
	}
	return true
}
