package rtdb

import (
	"context"

	apperrors "github.com/kbukum/firekit/errors"
	"github.com/kbukum/firekit/httpclient"
	"github.com/kbukum/firekit/logger"
	"github.com/kbukum/firekit/observability"
)

// Doer performs one HTTP exchange. *httpclient.Adapter satisfies it.
//
// A non-2xx response may be reported either as a nil error with the
// response, or as an error alongside the response; both are treated as a
// status-level failure.
type Doer interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// Client is a fluent Realtime Database client bound to one endpoint.
type Client struct {
	endpoint string
	location []string
	query    query

	transport   Doer
	log         *logger.Logger
	metrics     *observability.Metrics
	legacyPatch bool
}

type options struct {
	transport   Doer
	httpConfig  httpclient.Config
	httpOpts    []httpclient.Option
	log         *logger.Logger
	metrics     *observability.Metrics
	strict      bool
	legacyPatch bool
}

// Option configures a Client.
type Option func(*options)

// WithTransport sets the collaborator that performs exchanges. It takes
// precedence over WithHTTPConfig.
func WithTransport(d Doer) Option {
	return func(o *options) { o.transport = d }
}

// WithHTTPConfig configures the default httpclient.Adapter transport.
func WithHTTPConfig(cfg httpclient.Config) Option {
	return func(o *options) { o.httpConfig = cfg }
}

// WithHTTPOptions adds adapter options to the default transport.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.httpOpts = append(o.httpOpts, opts...) }
}

// WithLogger sets the logger used for per-call debug output.
// Defaults to logger.Get("rtdb").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records request metrics for every verb call.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithStrictEndpoint requires the endpoint to be exactly
// https://<name>.firebaseio.com/.
func WithStrictEndpoint() Option {
	return func(o *options) { o.strict = true }
}

// WithLegacyPatch makes Patch send POST instead of PATCH.
func WithLegacyPatch() Option {
	return func(o *options) { o.legacyPatch = true }
}

// New validates endpoint and returns a Client with no location segments
// and no modifiers set. The endpoint is never re-checked.
func New(endpoint string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateEndpoint(endpoint, o.strict); err != nil {
		return nil, err
	}

	if o.transport == nil {
		cfg := o.httpConfig
		if cfg.Name == "" {
			cfg.Name = "rtdb"
		}
		adapter, err := httpclient.New(cfg, o.httpOpts...)
		if err != nil {
			return nil, apperrors.InvalidConfig("invalid http configuration").WithCause(err)
		}
		o.transport = adapter
	}
	if o.log == nil {
		o.log = logger.Get("rtdb")
	}

	return &Client{
		endpoint:    endpoint,
		transport:   o.transport,
		log:         o.log,
		metrics:     o.metrics,
		legacyPatch: o.legacyPatch,
	}, nil
}

// Endpoint returns the validated endpoint.
func (c *Client) Endpoint() string { return c.endpoint }

// Location returns a copy of the location segments.
func (c *Client) Location() []string {
	out := make([]string, len(c.location))
	copy(out, c.location)
	return out
}

// Child appends one location segment verbatim.
func (c *Client) Child(segment string) *Client {
	c.location = append(c.location, segment)
	return c
}

// ClearLocations removes every location segment.
func (c *Client) ClearLocations() *Client {
	c.location = nil
	return c
}

// Close releases idle connections of the transport when it supports it.
// The client stays usable; later calls open new connections.
func (c *Client) Close(ctx context.Context) error {
	if cl, ok := c.transport.(interface{ Close(context.Context) error }); ok {
		return cl.Close(ctx)
	}
	return nil
}

// Ref returns an independent Client for the same endpoint and transport
// with the given location segments and no modifiers.
func (c *Client) Ref(segments ...string) *Client {
	loc := make([]string, len(segments))
	copy(loc, segments)
	return &Client{
		endpoint:    c.endpoint,
		location:    loc,
		transport:   c.transport,
		log:         c.log,
		metrics:     c.metrics,
		legacyPatch: c.legacyPatch,
	}
}
