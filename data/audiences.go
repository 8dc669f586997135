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

// PutMessageAudience records that a message is addressed to an audience URI.
func PutMessageAudience(ctx context.Context, db DBTX, messageID, audienceID string) error {
	joint, err := JointID(messageID, audienceID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO messages_audiences(joint_id, message_id, audience_id) VALUES($1, $2, $3)`,
		joint,
		messageID,
		audienceID,
	)
	return err
}

// GetMessageAudiences returns the audience URIs of a message, in insertion order.
func GetMessageAudiences(ctx context.Context, db DBTX, messageID string) ([]string, error) {
	return dbx.QueryCollect[string](
		ctx,
		db,
		`SELECT audience_id FROM messages_audiences WHERE message_id = $1 ORDER BY rowid`,
		messageID,
	)
}

// DeleteMessageAudiences removes all audience rows of a message.
func DeleteMessageAudiences(ctx context.Context, db DBTX, messageID string) error {
	_, err := db.ExecContext(
		ctx,
		`DELETE FROM messages_audiences WHERE message_id = $1`,
		messageID,
	)
	return err
}

// PutActorAudience subscribes an actor to an audience URI: messages
// addressed to it start appearing in the actor's inbox.
func PutActorAudience(ctx context.Context, db DBTX, actorID, audienceID string) error {
	joint, err := JointID(actorID, audienceID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO actors_audiences(joint_id, actor_id, audience_id) VALUES($1, $2, $3)`,
		joint,
		actorID,
		audienceID,
	)
	return err
}

// DeleteActorAudience unsubscribes an actor from an audience URI.
func DeleteActorAudience(ctx context.Context, db DBTX, actorID, audienceID string) error {
	joint, err := JointID(actorID, audienceID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(
		ctx,
		`DELETE FROM actors_audiences WHERE joint_id = $1`,
		joint,
	)
	return err
}

// GetActorAudiences returns the audience URIs an actor subscribes to,
// in insertion order.
func GetActorAudiences(ctx context.Context, db DBTX, actorID string) ([]string, error) {
	return dbx.QueryCollect[string](
		ctx,
		db,
		`SELECT audience_id FROM actors_audiences WHERE actor_id = $1 ORDER BY rowid`,
		actorID,
	)
}
