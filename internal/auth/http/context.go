package http

import (
	"context"

	"github.com/stackmill/gatehouse/internal/auth/domain"
)

type ctxKey string

const (
	// ctxKeyRequestAccount is the identity resolved for the caller, if any.
	ctxKeyRequestAccount ctxKey = "request_account"
	// ctxKeyTargetAccount is the account a route's {nickname} parameter
	// names, attached by ReqUser.
	ctxKeyTargetAccount ctxKey = "target_account"
)

// WithRequestAccount returns a new context carrying the resolved identity.
// Contexts are never mutated in place; each guard threads a fresh value.
func WithRequestAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, ctxKeyRequestAccount, a)
}

// RequestAccount returns the caller's resolved identity, if one is attached.
func RequestAccount(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(ctxKeyRequestAccount).(domain.Account)
	return a, ok
}

// WithTargetAccount returns a new context carrying the route's target user.
func WithTargetAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, ctxKeyTargetAccount, a)
}

// TargetAccount returns the account the route addresses, if attached.
func TargetAccount(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(ctxKeyTargetAccount).(domain.Account)
	return a, ok
}
