package rtdb

import (
	"context"
	"encoding/json"

	"github.com/theory/jsonpath"

	apperrors "github.com/kbukum/firekit/errors"
)

// Select reads the value at the client's URL and returns the nodes the
// JSONPath expression selects from it. The expression is parsed before any
// request is made.
//
//	names, err := db.Child("dinosaurs").Select(ctx, "$.*.name")
func (c *Client) Select(ctx context.Context, expr string) ([]any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, apperrors.InvalidQuery(expr, err)
	}

	body, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, apperrors.DecodeFailed(err)
	}
	return path.Select(data), nil
}
