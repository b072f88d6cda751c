package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

// TransactionManager executes a function within a database transaction,
// passing the transaction handle through the opaque Tx argument.
//
// Use cases stay free of storage types: repositories accept a Tx and
// detect the concrete handle (e.g. pgx.Tx) implementation-side, and they
// MUST gracefully accept a nil Tx for the non-transactional path.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
