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

package dbx

import (
	"context"
	"database/sql"
)

// Queryer runs SQL queries: both [sql.DB] and [sql.Tx] satisfy it.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QueryCollectCount runs a SQL query and reads the results into a slice.
//
// count is the expected number of rows.
//
// The columns of each row are assigned to visible fields of T.
func QueryCollectCount[T any](
	ctx context.Context,
	db Queryer,
	count int,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	return CollectRows[T](rows, count)
}

// QueryCollect runs a SQL query and reads the results into a slice.
//
// The columns of each row are assigned to visible fields of T.
func QueryCollect[T any](
	ctx context.Context,
	db Queryer,
	query string,
	args ...any,
) ([]T, error) {
	return QueryCollectCount[T](
		ctx,
		db,
		1,
		query,
		args...,
	)
}
