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

// Package dbx reduces the boilerplate of scanning SQL rows.
package dbx

import (
	"database/sql"
	"reflect"
)

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

func scanRow[T any](rows *sql.Rows, row *T) error {
	v := reflect.ValueOf(row).Elem()

	if v.Kind() != reflect.Struct || reflect.PointerTo(v.Type()).Implements(scannerType) {
		return rows.Scan(row)
	}

	fields := make([]any, 0, v.NumField())
	for i := range v.NumField() {
		if v.Type().Field(i).IsExported() {
			fields = append(fields, v.Field(i).Addr().Interface())
		}
	}

	return rows.Scan(fields...)
}

// ScanRows reads the results of a SQL query and calls collect for each row.
//
// If T is a struct, the columns of each row are assigned to visible fields of T.
//
// T must not be a pointer.
func ScanRows[T any](rows *sql.Rows, collect func(T)) error {
	for rows.Next() {
		var row T
		if err := scanRow(rows, &row); err != nil {
			return err
		}

		collect(row)
	}

	return rows.Err()
}

// CollectRows reads the results of a SQL query into a slice.
//
// expected is the expected number of rows.
func CollectRows[T any](rows *sql.Rows, expected int) ([]T, error) {
	scanned := make([]T, 0, expected)

	if err := ScanRows(
		rows,
		func(row T) {
			scanned = append(scanned, row)
		},
	); err != nil {
		return nil, err
	}

	return scanned, nil
}
