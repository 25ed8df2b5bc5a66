package repositories

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned when an insert hits a unique constraint
var ErrDuplicateKey = errors.New("duplicate key")

// Transactor runs fn inside a single database transaction. Repositories called
// with the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
