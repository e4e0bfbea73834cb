package rtdb

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/kbukum/firekit/errors"
)

// PostName creates a child like Post and returns the key the server
// generated for it, read from the {"name": "<key>"} response.
func (c *Client) PostName(ctx context.Context, body string) (string, error) {
	resp, err := c.do(ctx, OpPost, http.MethodPost, &body, true)
	if err != nil {
		return "", err
	}
	var out struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", apperrors.DecodeFailed(err)
	}
	return out.Name, nil
}

// GetJSON reads the value at the client's URL and decodes it into T.
// A missing value decodes as the zero T.
func GetJSON[T any](ctx context.Context, c *Client) (T, error) {
	var v T
	body, err := c.Get(ctx)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return v, apperrors.DecodeFailed(err)
	}
	return v, nil
}

// PutJSON encodes v and replaces the value at the client's URL with it.
func PutJSON(ctx context.Context, c *Client, v any) error {
	body, err := encode(v)
	if err != nil {
		return err
	}
	_, err = c.Put(ctx, body)
	return err
}

// PatchJSON encodes v and merges it into the value at the client's URL.
func PatchJSON(ctx context.Context, c *Client, v any) error {
	body, err := encode(v)
	if err != nil {
		return err
	}
	_, err = c.Patch(ctx, body)
	return err
}

// PostJSON encodes v, creates it as a new child and returns the generated key.
func PostJSON(ctx context.Context, c *Client, v any) (string, error) {
	body, err := encode(v)
	if err != nil {
		return "", err
	}
	return c.PostName(ctx, body)
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.EncodeFailed(err)
	}
	return string(data), nil
}
