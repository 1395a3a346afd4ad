package domain

import "context"

// Transactor runs fn inside a single unit of work. Repositories called with
// the ctx passed to fn participate in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
