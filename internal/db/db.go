// Package db owns the Postgres connection pool and the serializable
// transaction runner the write paths go through.
package db

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const txMaxAttempts = 5

type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type SQLXTxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) SQLXTxRunner {
	return SQLXTxRunner{db: db}
}

func (r SQLXTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return WithTx(ctx, r.db, fn)
}

func Connect(databaseURL string) (*sqlx.DB, error) {
	pool, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(30)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxIdleTime(5 * time.Minute)
	pool.SetConnMaxLifetime(30 * time.Minute)
	return pool, nil
}

// WithTx runs fn inside a serializable transaction, retrying on
// serialization failures and deadlocks until the attempt cap.
func WithTx(ctx context.Context, pool *sqlx.DB, fn func(*sqlx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		var retryable bool
		retryable, err = runTx(ctx, pool, fn)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		if attempt < txMaxAttempts {
			backoff(attempt)
		}
	}
	return err
}

func runTx(ctx context.Context, pool *sqlx.DB, fn func(*sqlx.Tx) error) (bool, error) {
	tx, err := pool.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return false, err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return isRetryable(err), err
	}
	if err := tx.Commit(); err != nil {
		return isRetryable(err), err
	}
	return false, nil
}

// 40001 serialization_failure, 40P01 deadlock_detected.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

func backoff(attempt int) {
	wait := time.Duration(attempt*attempt) * 20 * time.Millisecond
	wait += time.Duration(rand.Int63n(int64(10 * time.Millisecond)))
	time.Sleep(wait)
}
