package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/http2"

	"github.com/kbukum/firekit/resilience"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithRoundTripper replaces the adapter's transport. TLS settings from the
// config are not applied to a replaced transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) {
		if rt != nil {
			a.httpClient.Transport = rt
		}
	}
}

// Adapter is a configurable HTTP adapter with default headers, TLS and
// client-side rate limiting. It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	rl         *resilience.RateLimiter
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Apply TLS configuration
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	if cfg.HTTP2 != nil {
		h2, err := http2.ConfigureTransports(transport)
		if err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
		h2.ReadIdleTimeout = cfg.HTTP2.ReadIdleTimeout
		h2.PingTimeout = cfg.HTTP2.PingTimeout
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}

	if cfg.RateLimiter != nil {
		rlCfg := *cfg.RateLimiter
		if rlCfg.Name == "" {
			rlCfg.Name = cfg.Name
		}
		a.rl = resilience.NewRateLimiter(rlCfg)
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Do executes one HTTP exchange and returns the complete response.
//
// A non-2xx status returns both the response and a classified *Error.
// A body read failure returns the partial response and a KindBody error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.rl != nil {
		if err := a.rl.Wait(ctx); err != nil {
			return nil, newError(KindTimeout, fmt.Errorf("rate limiter: %w", err))
		}
	}

	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, newError(KindTimeout, err)
		}
		return nil, newError(KindConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Body = body
		return result, &Error{Kind: KindBody, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}
	result.Body = body

	if classErr := ClassifyStatus(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}

	return result, nil
}

// Close releases idle connections held by the adapter.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	if req.Method == "" {
		return nil, newError(KindRequest, errors.New("HTTP method is required"))
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, newError(KindRequest, fmt.Errorf("encode body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, newError(KindRequest, fmt.Errorf("create request: %w", err))
	}

	if a.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}

	// Apply default headers
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain; charset=utf-8", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// isTimeout reports whether err is a network timeout, including the
// http.Client timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
