package requestid

import (
	"context"

	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// MaxLen bounds caller supplied ids. It matches the audit_logs.request_id column.
const MaxLen = 64

type ctxKey struct{}

func New() string {
	return uuid.NewString()
}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
