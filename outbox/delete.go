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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/data"
)

// deleteTarget removes the message a Delete activity points to, along
// with its relation rows and any body document no other message still
// references.
//
// Only the original author can delete a message. Deleting an unknown
// message succeeds without doing anything: the target is already gone.
func (o *Outbox) deleteTarget(ctx context.Context, tx *sql.Tx, msg *ap.Message) error {
	if len(msg.Object) != 1 {
		return fmt.Errorf("%w: Delete must have exactly one object", ap.ErrInvalidMessage)
	}
	targetID := msg.Object[0]

	raw, err := data.GetDocument(ctx, tx, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", targetID, err)
	}

	var target ap.Message
	if err := json.Unmarshal(raw, &target); err != nil {
		return fmt.Errorf("%w: %s is not a message: %w", ap.ErrInvalidMessage, targetID, err)
	}

	if target.Actor != msg.Actor {
		return fmt.Errorf("%w: %s cannot delete a message by %s", ap.ErrInvalidMessage, msg.Actor, target.Actor)
	}

	// deleting a Follow revokes its subscriptions
	if target.Type == ap.FollowActivity {
		for _, followed := range target.Object {
			if err := data.DeleteActorFollowing(ctx, tx, target.Actor, followed); err != nil {
				return fmt.Errorf("failed to delete follow of %s: %w", followed, err)
			}

			if err := data.DeleteActorAudience(ctx, tx, target.Actor, ap.FollowersURI(followed)); err != nil {
				return fmt.Errorf("failed to unsubscribe from followers of %s: %w", followed, err)
			}
		}
	}

	bodies, err := data.GetMessageBodies(ctx, tx, targetID)
	if err != nil {
		return fmt.Errorf("failed to list bodies of %s: %w", targetID, err)
	}

	if err := data.DeleteDocument(ctx, tx, targetID); err != nil {
		return fmt.Errorf("failed to delete document of %s: %w", targetID, err)
	}

	if err := data.DeleteMessage(ctx, tx, targetID); err != nil {
		return fmt.Errorf("failed to delete %s: %w", targetID, err)
	}

	if err := data.DeleteMessageAudiences(ctx, tx, targetID); err != nil {
		return fmt.Errorf("failed to delete audiences of %s: %w", targetID, err)
	}

	if err := data.DeleteMessageBodies(ctx, tx, targetID); err != nil {
		return fmt.Errorf("failed to delete bodies of %s: %w", targetID, err)
	}

	for _, body := range bodies {
		referenced, err := data.HasMessageWithBody(ctx, tx, body)
		if err != nil {
			return fmt.Errorf("failed to check references to %s: %w", body, err)
		}
		if referenced {
			continue
		}

		if err := data.DeleteDocument(ctx, tx, body); err != nil {
			return fmt.Errorf("failed to delete orphan %s: %w", body, err)
		}
	}

	slog.Info("Deleted message", "id", targetID, "actor", msg.Actor)
	return nil
}
