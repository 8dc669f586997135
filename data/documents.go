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

package data

import (
	"context"
	"encoding/json"
)

// PutDocument stores a document, overwriting a previous version.
func PutDocument(ctx context.Context, db DBTX, id string, document json.RawMessage) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO documents(document_id, document) VALUES($1, $2)`,
		id,
		string(document),
	)
	return err
}

// PutDocumentIfNew stores a document unless one is already stored under
// the same ID. Content-addressed documents never change, so the stored
// version is always as good as the incoming one.
func PutDocumentIfNew(ctx context.Context, db DBTX, id string, document json.RawMessage) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO documents(document_id, document) VALUES($1, $2)`,
		id,
		string(document),
	)
	return err
}

// GetDocument fetches a document by ID.
//
// The error is [database/sql.ErrNoRows] if no document is stored under id.
func GetDocument(ctx context.Context, db DBTX, id string) (json.RawMessage, error) {
	var document []byte
	if err := db.QueryRowContext(
		ctx,
		`SELECT document FROM documents WHERE document_id = $1`,
		id,
	).Scan(&document); err != nil {
		return nil, err
	}

	return document, nil
}

// HasDocument determines if a document is stored under an ID.
func HasDocument(ctx context.Context, db DBTX, id string) (bool, error) {
	var has bool
	if err := db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE document_id = $1)`,
		id,
	).Scan(&has); err != nil {
		return false, err
	}

	return has, nil
}

// DeleteDocument removes a document.
func DeleteDocument(ctx context.Context, db DBTX, id string) error {
	_, err := db.ExecContext(
		ctx,
		`DELETE FROM documents WHERE document_id = $1`,
		id,
	)
	return err
}
