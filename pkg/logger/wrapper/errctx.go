package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx carries the LogCtx captured at the failure site so the
// caller can log with the same fields.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// ErrorCtx merges the LogCtx carried by err (if any) into ctx. Fields already
// set on ctx, such as the request id, take precedence over the error's.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		lc, ok := ctx.Value(LogCtxKey).(LogCtx)
		if !ok {
			return context.WithValue(ctx, LogCtxKey, e.logCtx)
		}
		if lc.Action == "" {
			lc.Action = e.logCtx.Action
		}
		if lc.UserID == "" {
			lc.UserID = e.logCtx.UserID
		}
		if lc.RequestID == "" {
			lc.RequestID = e.logCtx.RequestID
		}
		if lc.WalkID == "" {
			lc.WalkID = e.logCtx.WalkID
		}
		return context.WithValue(ctx, LogCtxKey, lc)
	}
	return ctx
}
