package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/shandysiswandi/authkit/internal/identity/entity"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
	"github.com/shandysiswandi/authkit/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// HeaderCorrelationID carries the invocation's correlation id to the service.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderJWTToken carries the bearer token on secret requests.
	HeaderJWTToken = "jwt-token"
)

// ErrEndpointRequired is returned when no endpoint URL is configured.
var ErrEndpointRequired = errors.New("identity endpoint url is required")

// Config points the client at the identity service.
type Config struct {
	EndpointURL  string
	RegisterPath string
	LoginPath    string
	SecretPath   string
	UserAgent    string
}

// API talks to the remote identity service over HTTP.
//
// Every call is a single request. Any response the service sends back,
// including 4xx and 5xx, is returned for the caller to judge; only failures
// to get a response at all become errors.
type API struct {
	client   *req.Client
	cfg      Config
	ins      instrument.Instrumentation
	requests metric.Int64Counter
}

// NewAPI builds an API client.
func NewAPI(cfg Config, ins instrument.Instrumentation) (*API, error) {
	if strings.TrimSpace(cfg.EndpointURL) == "" {
		return nil, ErrEndpointRequired
	}
	if _, err := url.Parse(cfg.EndpointURL); err != nil {
		return nil, err
	}

	requests, err := ins.Meter("identity.outbound.api").Int64Counter(
		"authkit.identity.requests",
		metric.WithDescription("Requests sent to the identity service."),
	)
	if err != nil {
		return nil, err
	}

	client := req.C().
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetCommonHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetUserAgent(cfg.UserAgent)
	}

	return &API{client: client, cfg: cfg, ins: ins, requests: requests}, nil
}

func (a *API) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return a.ins.Tracer("identity.outbound.api").Start(ctx, name)
}

func (a *API) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (a *API) url(path string) (string, error) {
	return url.JoinPath(a.cfg.EndpointURL, path)
}

func (a *API) newRequest(ctx context.Context) *req.Request {
	r := a.client.R().SetContext(ctx)
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		r.SetHeader(HeaderCorrelationID, cID)
	}
	return r
}

func (a *API) send(ctx context.Context, op, method, path string, r *req.Request) (*entity.Response, error) {
	target, err := a.url(path)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	resp, err := r.Send(method, target)
	if err != nil {
		a.requests.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("outcome", "transport_error"),
		))
		return nil, goerror.NewTransport(err)
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, goerror.NewTransport(err)
	}

	out := &entity.Response{HTTPStatus: resp.GetStatusCode(), Body: body}
	a.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Int("status", out.EffectiveStatus()),
	))

	return out, nil
}
