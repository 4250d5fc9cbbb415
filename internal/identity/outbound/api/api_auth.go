package api

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"go.opentelemetry.io/otel/attribute"
)

// Register posts a registration payload.
func (a *API) Register(ctx context.Context, in entity.RegisterPayload) (resp *entity.Response, err error) {
	ctx, span := a.startSpan(ctx, "Register")
	defer func() { a.endSpan(span, err) }()

	r := a.newRequest(ctx).SetBodyJsonMarshal(in)
	return a.send(ctx, "register", http.MethodPost, a.cfg.RegisterPath, r)
}

// Login posts a login payload.
func (a *API) Login(ctx context.Context, in entity.LoginPayload) (resp *entity.Response, err error) {
	ctx, span := a.startSpan(ctx, "Login")
	defer func() { a.endSpan(span, err) }()

	r := a.newRequest(ctx).SetBodyJsonMarshal(in)
	return a.send(ctx, "login", http.MethodPost, a.cfg.LoginPath, r)
}

// RequestSecret fetches the caller's secret using a bearer token.
func (a *API) RequestSecret(ctx context.Context, token string) (resp *entity.Response, err error) {
	ctx, span := a.startSpan(ctx, "RequestSecret")
	defer func() { a.endSpan(span, err) }()

	span.SetAttributes(attribute.Int("token.length", len(token)))

	r := a.newRequest(ctx).SetHeader(HeaderJWTToken, token)
	return a.send(ctx, "secret_request", http.MethodGet, a.cfg.SecretPath, r)
}
