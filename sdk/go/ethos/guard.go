package ethos

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ndelias/ethos/internal/review"
)

// ToolFunc is the function signature that Wrap guards. The caller
// provides the raw record the tool intends to act on.
type ToolFunc func(ctx context.Context, record map[string]any) (any, error)

// Wrap returns a new ToolFunc that evaluates the record before calling
// fn. If the decision defers, a pending review is filed under a key
// derived from the record and a *DeferredError is returned without
// calling fn. Once the review is approved, a retry with the same record
// proceeds; one-time approvals are consumed on use.
func (c *Client) Wrap(fn ToolFunc) ToolFunc {
	return func(ctx context.Context, record map[string]any) (any, error) {
		result, err := c.Evaluate(record, nil)
		if err != nil {
			return nil, err
		}

		if !result.Deferred {
			return fn(ctx, record)
		}

		key := reviewKey(record)

		c.mu.Lock()
		defer c.mu.Unlock()

		status, err := c.reviews.Check(key)
		if err == nil && status == review.StatusApproved {
			c.reviews.Consume(key)
			return fn(ctx, record)
		}
		if status != review.StatusPending && status != review.StatusDenied {
			c.reviews.Request(key, result.Reason, result.RunID, result.Category, result.Confidence)
		}

		return nil, &DeferredError{Result: result, ReviewKey: key}
	}
}

// reviewKey derives a stable key from the record so a retry after
// approval maps to the same review. Go's map marshaling sorts keys,
// which makes the JSON canonical.
func reviewKey(record map[string]any) string {
	data, err := json.Marshal(record)
	if err != nil {
		data = []byte{}
	}
	sum := sha256.Sum256(data)
	return "sdk-" + hex.EncodeToString(sum[:8])
}
