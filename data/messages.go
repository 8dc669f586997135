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

// PutMessageID records an ingested message and its author, assigning
// the next timeline index. Re-inserting a known message keeps the
// original index.
func PutMessageID(ctx context.Context, db DBTX, messageID, actorID string) error {
	_, err := db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO messages(message_id, actor_id) VALUES($1, $2)`,
		messageID,
		actorID,
	)
	return err
}

// HasMessage determines if a message was ingested before.
func HasMessage(ctx context.Context, db DBTX, messageID string) (bool, error) {
	var has bool
	if err := db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM messages WHERE message_id = $1)`,
		messageID,
	).Scan(&has); err != nil {
		return false, err
	}

	return has, nil
}

// DeleteMessage removes a message from the timeline.
func DeleteMessage(ctx context.Context, db DBTX, messageID string) error {
	_, err := db.ExecContext(
		ctx,
		`DELETE FROM messages WHERE message_id = $1`,
		messageID,
	)
	return err
}
