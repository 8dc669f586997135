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
	"database/sql"
	"fmt"
)

// every statement is idempotent: opening a store that already has
// tables is a no-op
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents(document_id TEXT NOT NULL PRIMARY KEY, document JSON NOT NULL)`,

	`CREATE TABLE IF NOT EXISTS messages(idx INTEGER PRIMARY KEY AUTOINCREMENT, message_id TEXT NOT NULL UNIQUE, actor_id TEXT NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS messagesactor ON messages(actor_id)`,

	`CREATE TABLE IF NOT EXISTS messages_audiences(joint_id TEXT NOT NULL PRIMARY KEY, message_id TEXT NOT NULL, audience_id TEXT NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS messagesaudiencesmessage ON messages_audiences(message_id)`,
	`CREATE INDEX IF NOT EXISTS messagesaudiencesaudience ON messages_audiences(audience_id)`,

	`CREATE TABLE IF NOT EXISTS messages_bodies(joint_id TEXT NOT NULL PRIMARY KEY, message_id TEXT NOT NULL, body_id TEXT NOT NULL, created_by TEXT)`,
	`CREATE INDEX IF NOT EXISTS messagesbodiesmessage ON messages_bodies(message_id)`,
	`CREATE INDEX IF NOT EXISTS messagesbodiesbody ON messages_bodies(body_id)`,

	`CREATE TABLE IF NOT EXISTS actors_audiences(joint_id TEXT NOT NULL PRIMARY KEY, actor_id TEXT NOT NULL, audience_id TEXT NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS actorsaudiencesactor ON actors_audiences(actor_id)`,
	`CREATE INDEX IF NOT EXISTS actorsaudiencesaudience ON actors_audiences(audience_id)`,

	`CREATE TABLE IF NOT EXISTS actors_followings(idx INTEGER PRIMARY KEY AUTOINCREMENT, joint_id TEXT NOT NULL UNIQUE, actor_id TEXT NOT NULL, following_id TEXT NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS actorsfollowingsactor ON actors_followings(actor_id)`,
	`CREATE INDEX IF NOT EXISTS actorsfollowingsfollowing ON actors_followings(following_id)`,

	`CREATE TABLE IF NOT EXISTS mutables_modified(id TEXT NOT NULL PRIMARY KEY, modified INTEGER NOT NULL)`,
}

// CreateTables creates all tables and indexes that don't exist yet.
func CreateTables(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to run %s: %w", q, err)
		}
	}

	return nil
}
