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

	"github.com/chatternet/chatternet-server-http-sub000/dbx"
)

// PutMessageBody records that a message references a body document.
//
// createdBy, when not empty, is the actor the reference is attributed
// to; lookups of documents created by a specific actor filter on it.
func PutMessageBody(ctx context.Context, db DBTX, messageID, bodyID, createdBy string) error {
	joint, err := JointID(messageID, bodyID)
	if err != nil {
		return err
	}

	var by any
	if createdBy != "" {
		by = createdBy
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO messages_bodies(joint_id, message_id, body_id, created_by) VALUES($1, $2, $3, $4)`,
		joint,
		messageID,
		bodyID,
		by,
	)
	return err
}

// GetMessageBodies returns the body documents a message references, in
// insertion order.
func GetMessageBodies(ctx context.Context, db DBTX, messageID string) ([]string, error) {
	return dbx.QueryCollect[string](
		ctx,
		db,
		`SELECT body_id FROM messages_bodies WHERE message_id = $1 ORDER BY rowid`,
		messageID,
	)
}

// GetBodyMessages returns the messages referencing a body document, in
// insertion order.
//
// createdBy, when not empty, restricts the listing to references
// attributed to one actor.
func GetBodyMessages(ctx context.Context, db DBTX, bodyID, createdBy string) ([]string, error) {
	if createdBy == "" {
		return dbx.QueryCollect[string](
			ctx,
			db,
			`SELECT message_id FROM messages_bodies WHERE body_id = $1 ORDER BY rowid`,
			bodyID,
		)
	}

	return dbx.QueryCollect[string](
		ctx,
		db,
		`SELECT message_id FROM messages_bodies WHERE body_id = $1 AND created_by = $2 ORDER BY rowid`,
		bodyID,
		createdBy,
	)
}

// HasMessageWithBody determines if any message still references a body
// document.
func HasMessageWithBody(ctx context.Context, db DBTX, bodyID string) (bool, error) {
	var has bool
	if err := db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM messages_bodies WHERE body_id = $1)`,
		bodyID,
	).Scan(&has); err != nil {
		return false, err
	}

	return has, nil
}

// DeleteMessageBodies removes all body rows of a message.
func DeleteMessageBodies(ctx context.Context, db DBTX, messageID string) error {
	_, err := db.ExecContext(
		ctx,
		`DELETE FROM messages_bodies WHERE message_id = $1`,
		messageID,
	)
	return err
}
