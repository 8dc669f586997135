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

// editdb edits a chatternet database directly, bypassing the HTTP
// surface: it follows actors on the server's behalf and inspects
// follow edges.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/cfg"
	"github.com/chatternet/chatternet-server-http-sub000/data"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/chatternet/chatternet-server-http-sub000/outbox"
	"github.com/spf13/cobra"
)

var (
	keyPath string
	dbPath  string
)

func openStore(cmd *cobra.Command) (*data.DB, didkey.Key, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, didkey.Key{}, fmt.Errorf("failed to read %s: %w", keyPath, err)
	}

	key, err := didkey.FromJWK(raw)
	if err != nil {
		return nil, didkey.Key{}, fmt.Errorf("failed to parse %s: %w", keyPath, err)
	}

	var c cfg.Config
	c.FillDefaults()

	db, err := data.Open(cmd.Context(), dbPath, c.DatabaseOptions)
	if err != nil {
		return nil, didkey.Key{}, err
	}

	return db, key, nil
}

var root = &cobra.Command{
	Use:          "editdb",
	Short:        "Edit a chatternet database",
	SilenceUsage: true,
}

var follow = &cobra.Command{
	Use:   "follow actor-id",
	Short: "Follow an actor on the server's behalf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, key, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		if _, err := didkey.DIDFromActorID(args[0]); err != nil {
			return err
		}

		msg, err := ap.BuildMessage(key, ap.FollowActivity, []string{args[0]}, ap.MessageOptions{}, time.Now())
		if err != nil {
			return err
		}

		o := outbox.Outbox{DB: db, Server: key}
		if err := o.Ingest(cmd.Context(), key.DID, msg); err != nil {
			return err
		}

		fmt.Println(msg.ID)
		return nil
	},
}

func printFollows(cmd *cobra.Command, actorID string) error {
	db, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	followings, err := data.GetActorFollowings(cmd.Context(), db.Reads, actorID)
	if err != nil {
		return err
	}

	for _, id := range followings {
		fmt.Println(id)
	}
	return nil
}

var listFollows = &cobra.Command{
	Use:   "list-follows actor-id",
	Short: "List the actors an actor follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := didkey.DIDFromActorID(args[0]); err != nil {
			return err
		}

		return printFollows(cmd, args[0])
	},
}

var listServerFollows = &cobra.Command{
	Use:   "list-server-follows",
	Short: "List the actors the server follows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(keyPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", keyPath, err)
		}

		key, err := didkey.FromJWK(raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", keyPath, err)
		}

		return printFollows(cmd, key.ActorID())
	},
}

func main() {
	root.PersistentFlags().StringVar(&keyPath, "key", "key.jwk", "server key path")
	root.PersistentFlags().StringVar(&dbPath, "db", "db.sqlite3", "database path")
	root.AddCommand(follow, listFollows, listServerFollows)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
