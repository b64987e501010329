package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBTX is the common query surface of *sqlx.DB and *sqlx.Tx, so repositories
// transparently join an in-flight transaction when one is carried in the
// context.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)
