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

// Package outbox ingests messages posted by actors.
//
// Ingestion is one transaction: the message, its audience and body
// rows, the side effects of its activity type and any message the
// server relays on its behalf all commit together or not at all.
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
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
)

var (
	// ErrAlreadyKnown indicates a message that was ingested before.
	// It is not a failure: the first ingestion did everything.
	ErrAlreadyKnown = errors.New("message is already known")

	// ErrWrongActor indicates a message whose actor is not the actor
	// of the DID that submitted it.
	ErrWrongActor = errors.New("message actor does not match the submitting DID")
)

// Outbox ingests messages on behalf of a server identified by a key.
type Outbox struct {
	DB     *data.DB
	Server didkey.Key
}

// Ingest validates a message submitted by a DID and persists it with
// the side effects of its activity type.
//
// Returns [ErrAlreadyKnown] if the message was ingested before; the
// caller should treat that as an idempotent success. Any other error
// leaves no trace of the message.
func (o *Outbox) Ingest(ctx context.Context, viaDID string, msg *ap.Message) error {
	if _, err := didkey.Decode(viaDID); err != nil {
		return err
	}

	if msg.Actor != didkey.ActorID(viaDID) {
		return fmt.Errorf("%w: %s is not %s", ErrWrongActor, msg.Actor, didkey.ActorID(viaDID))
	}

	if err := msg.Verify(); err != nil {
		return err
	}

	tx, err := o.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ingestion of %s: %w", msg.ID, err)
	}
	defer tx.Rollback()

	known, err := data.HasMessage(ctx, tx, msg.ID)
	if err != nil {
		return fmt.Errorf("failed to check if %s is known: %w", msg.ID, err)
	}
	if known {
		return ErrAlreadyKnown
	}

	if err := store(ctx, tx, msg); err != nil {
		return err
	}

	switch msg.Type {
	case ap.FollowActivity:
		if err := follow(ctx, tx, msg); err != nil {
			return err
		}

	case ap.DeleteActivity:
		if err := o.deleteTarget(ctx, tx, msg); err != nil {
			return err
		}
	}

	if msg.Type != ap.ViewActivity {
		if err := o.autoView(ctx, tx, msg); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingestion of %s: %w", msg.ID, err)
	}

	slog.Info("Ingested message", "id", msg.ID, "type", msg.Type, "actor", msg.Actor)
	return nil
}

// store persists a message: the audience and body rows, the document
// and the timeline row that assigns the index. This is the common path
// every activity type takes, including messages the server synthesizes.
func store(ctx context.Context, tx *sql.Tx, msg *ap.Message) error {
	for _, audience := range msg.Audiences() {
		if err := data.PutMessageAudience(ctx, tx, msg.ID, audience); err != nil {
			return fmt.Errorf("failed to store audience of %s: %w", msg.ID, err)
		}
	}

	for _, body := range msg.Object {
		if err := data.PutMessageBody(ctx, tx, msg.ID, body, msg.Actor); err != nil {
			return fmt.Errorf("failed to store body of %s: %w", msg.ID, err)
		}
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", msg.ID, err)
	}

	if err := data.PutDocumentIfNew(ctx, tx, msg.ID, raw); err != nil {
		return fmt.Errorf("failed to store document of %s: %w", msg.ID, err)
	}

	if err := data.PutMessageID(ctx, tx, msg.ID, msg.Actor); err != nil {
		return fmt.Errorf("failed to store %s: %w", msg.ID, err)
	}

	return nil
}

// follow subscribes the actor to each followed object and to the
// messages addressed to its followers.
func follow(ctx context.Context, tx *sql.Tx, msg *ap.Message) error {
	for _, followed := range msg.Object {
		if err := data.PutActorFollowing(ctx, tx, msg.Actor, followed); err != nil {
			return fmt.Errorf("failed to store follow of %s: %w", followed, err)
		}

		if err := data.PutActorAudience(ctx, tx, msg.Actor, ap.FollowersURI(followed)); err != nil {
			return fmt.Errorf("failed to subscribe to followers of %s: %w", followed, err)
		}
	}

	return nil
}
