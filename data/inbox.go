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

	"github.com/chatternet/chatternet-server-http-sub000/dbx"
)

type inboxRow struct {
	Idx      int64
	Document []byte
}

func collectDocumentPage(rows []inboxRow) *DocumentPage {
	if len(rows) == 0 {
		return nil
	}

	page := DocumentPage{
		Items:   make([]json.RawMessage, 0, len(rows)),
		LowIdx:  rows[len(rows)-1].Idx,
		HighIdx: rows[0].Idx,
	}
	for _, r := range rows {
		page.Items = append(page.Items, r.Document)
	}

	return &page
}

// A message is in an actor's inbox if the author is the actor itself or
// someone the actor follows, and at least one addressed audience is the
// actor itself or an audience the actor subscribes to. Both legs must
// hold: following someone doesn't expose their private messages, and
// being addressed doesn't matter unless the author is followed.

// GetInbox returns one page of the messages visible to an actor, newest
// first.
//
// startIdx optionally caps the page at a previous page's boundary.
// The page is nil when there are no rows left.
func GetInbox(ctx context.Context, db DBTX, actorID string, count int, startIdx *int64) (*DocumentPage, error) {
	rows, err := dbx.QueryCollectCount[inboxRow](
		ctx,
		db,
		count,
		`
		SELECT messages.idx, documents.document FROM messages
		JOIN documents ON documents.document_id = messages.message_id
		WHERE
			(
				messages.actor_id = $1
				OR EXISTS (
					SELECT 1 FROM actors_followings
					WHERE actors_followings.actor_id = $1 AND actors_followings.following_id = messages.actor_id
				)
			)
			AND EXISTS (
				SELECT 1 FROM messages_audiences
				WHERE messages_audiences.message_id = messages.message_id
				AND (
					messages_audiences.audience_id = $1
					OR messages_audiences.audience_id IN (
						SELECT audience_id FROM actors_audiences WHERE actors_audiences.actor_id = $1
					)
				)
			)
			AND ($2 IS NULL OR messages.idx <= $2)
		ORDER BY messages.idx DESC
		LIMIT $3
		`,
		actorID,
		startIdx,
		count,
	)
	if err != nil {
		return nil, err
	}

	return collectDocumentPage(rows), nil
}

// GetInboxFrom returns one page of the messages by one author visible
// to an actor, newest first.
//
// Unlike [GetInbox] there is no follow requirement, and messages the
// author addressed to their own followers are visible too: this is the
// preview a prospective follower sees.
func GetInboxFrom(ctx context.Context, db DBTX, actorID, fromActorID string, count int, startIdx *int64) (*DocumentPage, error) {
	rows, err := dbx.QueryCollectCount[inboxRow](
		ctx,
		db,
		count,
		`
		SELECT messages.idx, documents.document FROM messages
		JOIN documents ON documents.document_id = messages.message_id
		WHERE
			messages.actor_id = $2
			AND EXISTS (
				SELECT 1 FROM messages_audiences
				WHERE messages_audiences.message_id = messages.message_id
				AND (
					messages_audiences.audience_id = $1
					OR messages_audiences.audience_id = $2 || '/followers'
					OR messages_audiences.audience_id IN (
						SELECT audience_id FROM actors_audiences WHERE actors_audiences.actor_id = $1
					)
				)
			)
			AND ($3 IS NULL OR messages.idx <= $3)
		ORDER BY messages.idx DESC
		LIMIT $4
		`,
		actorID,
		fromActorID,
		startIdx,
		count,
	)
	if err != nil {
		return nil, err
	}

	return collectDocumentPage(rows), nil
}

// InboxContains determines if a message is visible to an actor.
func InboxContains(ctx context.Context, db DBTX, actorID, messageID string) (bool, error) {
	var contains bool
	if err := db.QueryRowContext(
		ctx,
		`
		SELECT EXISTS (
			SELECT 1 FROM messages
			WHERE
				messages.message_id = $2
				AND (
					messages.actor_id = $1
					OR EXISTS (
						SELECT 1 FROM actors_followings
						WHERE actors_followings.actor_id = $1 AND actors_followings.following_id = messages.actor_id
					)
				)
				AND EXISTS (
					SELECT 1 FROM messages_audiences
					WHERE messages_audiences.message_id = messages.message_id
					AND (
						messages_audiences.audience_id = $1
						OR messages_audiences.audience_id IN (
							SELECT audience_id FROM actors_audiences WHERE actors_audiences.actor_id = $1
						)
					)
				)
		)
		`,
		actorID,
		messageID,
	).Scan(&contains); err != nil {
		return false, err
	}

	return contains, nil
}
