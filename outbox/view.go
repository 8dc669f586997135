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
	"fmt"
	"log/slog"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/data"
)

// autoView relays a message the server can see to the server's own
// followers.
//
// The server follows a handful of actors; anybody can follow the
// server. A View carries the bodies of the original message and points
// back at it through origin, so followers of the server receive posts
// by actors they never followed, without touching those actors'
// audiences.
//
// The View goes through the common storage path only: a View of a View
// is never synthesized.
func (o *Outbox) autoView(ctx context.Context, tx *sql.Tx, msg *ap.Message) error {
	server := o.Server.ActorID()
	if msg.Actor == server {
		return nil
	}

	sees, err := data.InboxContains(ctx, tx, server, msg.ID)
	if err != nil {
		return fmt.Errorf("failed to check visibility of %s: %w", msg.ID, err)
	}
	if !sees {
		return nil
	}

	view, err := ap.BuildMessage(
		o.Server,
		ap.ViewActivity,
		msg.Object,
		ap.MessageOptions{
			Origin:   msg.ID,
			Audience: []string{ap.FollowersURI(server)},
		},
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to build view of %s: %w", msg.ID, err)
	}

	if err := store(ctx, tx, view); err != nil {
		return fmt.Errorf("failed to store view of %s: %w", msg.ID, err)
	}

	slog.Debug("Relayed message", "origin", msg.ID, "view", view.ID)
	return nil
}
