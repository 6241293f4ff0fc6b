// Package tx carries database transactions through context so stores can
// participate in a caller-opened transaction without knowing who opened it.
package tx

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type ctxKey struct{}

var txKey = ctxKey{}

// Runner executes a function inside a transaction boundary. The postgres
// implementation opens a real transaction; Passthrough is used with in-memory
// stores where writes apply immediately.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithTx stores a pgx transaction in context for downstream store usage.
func WithTx(ctx context.Context, t pgx.Tx) context.Context {
	if t == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, t)
}

// From extracts a pgx transaction from context if present.
func From(ctx context.Context) (pgx.Tx, bool) {
	t, ok := ctx.Value(txKey).(pgx.Tx)
	return t, ok
}

// Passthrough runs the callback without a transaction. Errors still abort the
// caller's flow; partial effects are acceptable only for in-memory stores.
type Passthrough struct{}

func (Passthrough) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
