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

package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chatternet/chatternet-server-http-sub000/data"
)

// ErrStale indicates an update older than the current state of the
// object it modifies.
var ErrStale = errors.New("modification is stale")

// UseMutable guards an update to an object addressed by a fixed ID
// rather than by content.
//
// Content-addressed documents don't need this: changing one changes
// its ID. An object with a fixed ID can be overwritten by a delayed or
// replayed update, so each update carries a timestamp and loses to any
// later one already applied.
func UseMutable(ctx context.Context, db data.DBTX, id string, modified int64) error {
	current, err := data.GetMutableModified(ctx, db, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to fetch modification time of %s: %w", id, err)
	}

	if err == nil && current > modified {
		return fmt.Errorf("%w: %s was modified at %d", ErrStale, id, current)
	}

	if err := data.PutMutableModified(ctx, db, id, modified); err != nil {
		return fmt.Errorf("failed to store modification time of %s: %w", id, err)
	}

	return nil
}
