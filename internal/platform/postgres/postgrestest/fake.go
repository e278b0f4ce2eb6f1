// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgrestest provides a scripted [postgres.Conn] for repository
// tests that need to see how driver errors are mapped without a database.
package postgrestest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnsupported is returned by operations the fake does not script.
var ErrUnsupported = errors.New("postgrestest: operation not supported")

// UniqueViolation builds the driver error PostgreSQL raises for SQLSTATE 23505.
func UniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: constraint,
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
	}
}

// Conn answers every statement with Err. When Err is nil, Exec reports
// RowsAffected and QueryRow yields [pgx.ErrNoRows].
type Conn struct {
	Err          error
	RowsAffected int64

	mu         sync.Mutex
	statements []string
}

// Statements returns the SQL seen so far, in order.
func (conn *Conn) Statements() []string {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	return append([]string(nil), conn.statements...)
}

func (conn *Conn) record(sql string) {
	conn.mu.Lock()
	conn.statements = append(conn.statements, sql)
	conn.mu.Unlock()
}

// Exec implements [postgres.DBTX].
func (conn *Conn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	conn.record(sql)
	if conn.Err != nil {
		return pgconn.CommandTag{}, conn.Err
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", conn.RowsAffected)), nil
}

// Query implements [postgres.DBTX].
func (conn *Conn) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	conn.record(sql)
	if conn.Err != nil {
		return nil, conn.Err
	}
	return nil, ErrUnsupported
}

// QueryRow implements [postgres.DBTX].
func (conn *Conn) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	conn.record(sql)
	if conn.Err != nil {
		return row{err: conn.Err}
	}
	return row{err: pgx.ErrNoRows}
}

// Begin implements [postgres.TxBeginner].
func (conn *Conn) Begin(context.Context) (pgx.Tx, error) {
	return nil, ErrUnsupported
}

type row struct{ err error }

func (r row) Scan(...any) error { return r.err }
