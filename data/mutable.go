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

import "context"

// PutMutableModified records when a mutable document was last modified.
func PutMutableModified(ctx context.Context, db DBTX, id string, modified int64) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO mutables_modified(id, modified) VALUES($1, $2)`,
		id,
		modified,
	)
	return err
}

// GetMutableModified fetches when a mutable document was last modified.
//
// The error is [database/sql.ErrNoRows] if id was never modified.
func GetMutableModified(ctx context.Context, db DBTX, id string) (int64, error) {
	var modified int64
	if err := db.QueryRowContext(
		ctx,
		`SELECT modified FROM mutables_modified WHERE id = $1`,
		id,
	).Scan(&modified); err != nil {
		return 0, err
	}

	return modified, nil
}
