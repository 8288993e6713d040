package wrap

import (
	"context"
	"errors"
)

// Error wraps an error with the current LogCtx from the context
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	c := LogCtx{}
	if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		c = x
	}

	// err may already chain through an earlier wrapper (repo wraps, then
	// the service wraps the repo error again). That inner wrapper must
	// never be mutated: err can itself wrap it, and pointing it back at
	// err would make the chain cyclic. Merge its fields and wrap fresh.
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		if c.Action == "" {
			c.Action = e.logCtx.Action
		}
		if c.UserID == "" {
			c.UserID = e.logCtx.UserID
		}
		if c.RequestID == "" {
			c.RequestID = e.logCtx.RequestID
		}
		if c.WalkID == "" {
			c.WalkID = e.logCtx.WalkID
		}
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: c,
	}
}
