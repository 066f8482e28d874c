package auth

import "context"

type operatorKey struct{}

func WithOperator(ctx context.Context, operatorID int64) context.Context {
	return context.WithValue(ctx, operatorKey{}, operatorID)
}

// OperatorFromContext returns 0 when the request is unauthenticated.
func OperatorFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(operatorKey{}).(int64)
	return id
}
