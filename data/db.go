/*
Copyright 2024 - 2026 the ChatterNet authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package data implements the SQLite store: documents addressed by ID
// plus the relations that index them for delivery.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultOptions is the default SQLite connection string options.
const DefaultOptions = "_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

// DBTX is the query surface shared by [sql.DB] and [sql.Tx]: store
// operations run either directly on a pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is a handle to the store.
//
// Reads is a read-only pool for concurrent queries. Writes is capped at
// a single connection, serializing writers ahead of SQLite's own lock.
type DB struct {
	Reads  *sql.DB
	Writes *sql.DB
}

// Open opens the store at path, creating tables if needed.
//
// options is appended to the connection string; pass [DefaultOptions]
// unless the deployment tunes SQLite itself.
func Open(ctx context.Context, path, options string) (*DB, error) {
	writes, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", path, options))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	writes.SetMaxOpenConns(1)

	if err := CreateTables(ctx, writes); err != nil {
		writes.Close()
		return nil, fmt.Errorf("failed to create tables in %s: %w", path, err)
	}

	reads, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&%s", path, options))
	if err != nil {
		writes.Close()
		return nil, fmt.Errorf("failed to open %s for reading: %w", path, err)
	}

	return &DB{Reads: reads, Writes: writes}, nil
}

// OpenMemory opens a store that lives only as long as the process.
func OpenMemory(ctx context.Context) (*DB, error) {
	// a unique name so concurrent stores don't share the cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", uuid.NewString(), DefaultOptions)

	writes, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}
	writes.SetMaxOpenConns(1)
	writes.SetMaxIdleConns(1)
	writes.SetConnMaxLifetime(0)
	writes.SetConnMaxIdleTime(0)

	if err := CreateTables(ctx, writes); err != nil {
		writes.Close()
		return nil, fmt.Errorf("failed to create tables in in-memory store: %w", err)
	}

	reads, err := sql.Open("sqlite3", dsn)
	if err != nil {
		writes.Close()
		return nil, fmt.Errorf("failed to open in-memory store for reading: %w", err)
	}

	return &DB{Reads: reads, Writes: writes}, nil
}

// Begin starts a write transaction.
func (db *DB) Begin(ctx context.Context) (*sql.Tx, error) {
	return db.Writes.BeginTx(ctx, nil)
}

// Close closes both pools.
func (db *DB) Close() error {
	return errors.Join(db.Reads.Close(), db.Writes.Close())
}
