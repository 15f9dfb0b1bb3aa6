package httpx

import "context"

type ctxKey string

const CtxKeyAccountID ctxKey = "account_id"

// AccountIDFromContext returns the authenticated account id, if any.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(int64)
	return id, ok
}
