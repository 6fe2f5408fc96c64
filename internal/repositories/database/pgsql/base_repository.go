package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes mapped to application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a committed transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// withTx runs fn inside a transaction and commits when it returns nil.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// mapDBError converts constraint violations into application errors and wraps everything else as internal.
func mapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		case pgInvalidText:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, msg, pgErr.Message)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}

// notFoundOr maps pgx.ErrNoRows to a not-found error for the given resource.
// An id that is not a valid uuid cannot exist either.
func notFoundOr(err error, kind, id string) error {
	var pgErr *pgconn.PgError
	if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == pgInvalidText) {
		return apperrors.NewNotFoundError(kind, id)
	}
	return mapDBError(err, "failed to find "+kind+" "+id)
}

// expectOneRow turns a zero-row update or delete into a not-found error.
func expectOneRow(tag pgconn.CommandTag, kind, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(kind, id)
	}
	return nil
}

// execBatch sends b and checks every queued statement.
func execBatch(ctx context.Context, q querier, b *pgx.Batch, msg string) error {
	if b.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, b)
	var batchErr error
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = mapDBError(err, msg)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapDBError(err, msg)
	}
	return batchErr
}
