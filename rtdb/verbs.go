package rtdb

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/kbukum/firekit/errors"
	"github.com/kbukum/firekit/httpclient"
	"github.com/kbukum/firekit/logger"
	"github.com/kbukum/firekit/observability"
)

const serviceName = "firekit"

// Operation names, used in errors, logs, spans and metrics.
const (
	OpGet    = "get"
	OpPut    = "put"
	OpPost   = "post"
	OpPatch  = "patch"
	OpDelete = "delete"
)

// Get reads the value at the composed URL and returns the response body.
// Invalid UTF-8 in the body is replaced with U+FFFD.
func (c *Client) Get(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, OpGet, http.MethodGet, nil, true)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(resp.Body), "�"), nil
}

// Put replaces the value at the composed URL with body.
func (c *Client) Put(ctx context.Context, body string) (*Client, error) {
	if _, err := c.do(ctx, OpPut, http.MethodPut, &body, false); err != nil {
		return nil, err
	}
	return c, nil
}

// Post creates a child with a server-generated key under the composed URL.
func (c *Client) Post(ctx context.Context, body string) (*Client, error) {
	if _, err := c.do(ctx, OpPost, http.MethodPost, &body, false); err != nil {
		return nil, err
	}
	return c, nil
}

// Patch merges body into the value at the composed URL. It sends PATCH, or
// POST when the client was built WithLegacyPatch.
func (c *Client) Patch(ctx context.Context, body string) (*Client, error) {
	method := http.MethodPatch
	if c.legacyPatch {
		method = http.MethodPost
	}
	if _, err := c.do(ctx, OpPatch, method, &body, false); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the value at the composed URL.
func (c *Client) Delete(ctx context.Context) (*Client, error) {
	if _, err := c.do(ctx, OpDelete, http.MethodDelete, nil, false); err != nil {
		return nil, err
	}
	return c, nil
}

// do issues exactly one exchange. needBody makes a body read failure fatal.
func (c *Client) do(ctx context.Context, op, method string, body *string, needBody bool) (*httpclient.Response, error) {
	target := c.URL()
	requestID := uuid.NewString()

	oc := observability.NewOperationContext(serviceName, op, requestID, c.metrics)
	oc.Method = method
	oc.URL = target
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanPrefix+op)

	req := httpclient.Request{Method: method, URL: target}
	if body != nil {
		req.Body = []byte(*body)
		req.Headers = map[string]string{"Content-Type": "application/json"}
	}

	resp, err := c.transport.Do(ctx, req)
	err = classify(op, resp, err, needBody)

	var code string
	if resp != nil {
		oc.HTTPStatus = resp.StatusCode
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	oc.EndOperation(ctx, span, err, code)

	c.logCall(ctx, oc, err)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// classify maps a transport outcome onto the package error taxonomy.
func classify(op string, resp *httpclient.Response, err error, needBody bool) error {
	if resp != nil && !resp.IsSuccess() {
		cause := err
		if cause == nil {
			cause = httpclient.ClassifyStatus(resp.StatusCode, resp.Body)
		}
		return withKind(apperrors.UnexpectedStatus(op, resp.StatusCode, resp.Body).WithCause(cause))
	}
	if err == nil {
		if resp == nil {
			return apperrors.TransportFailed(op, errors.New("transport returned no response"))
		}
		return nil
	}
	if httpclient.IsBody(err) && resp != nil {
		if needBody {
			return withKind(apperrors.BodyReadFailed(op, err))
		}
		return nil
	}
	return withKind(apperrors.TransportFailed(op, err))
}

// withKind copies the transport failure kind into the error details.
func withKind(appErr *apperrors.AppError) *apperrors.AppError {
	if k := httpclient.KindOf(appErr.Cause); k != 0 {
		appErr.WithDetail(DetailKind, k.String())
	}
	return appErr
}

func (c *Client) logCall(ctx context.Context, oc *observability.OperationContext, err error) {
	if !c.log.Enabled(zerolog.DebugLevel) {
		return
	}
	fields := logger.DurationFields(oc.OperationName, time.Since(oc.StartTime))
	fields[logger.FieldRequestID] = oc.RequestID
	fields[logger.FieldMethod] = oc.Method
	fields[logger.FieldURL] = oc.URL
	fields[logger.FieldStatus] = oc.HTTPStatus
	if err != nil {
		if k := httpclient.KindOf(err); k != 0 {
			fields[logger.FieldKind] = k.String()
		}
		c.log.WithContext(ctx).WithError(err).Debug("rtdb request failed", fields)
		return
	}
	c.log.WithContext(ctx).Debug("rtdb request", fields)
}
