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

// chatternet is the server: it custodies documents and relations for
// the actors that post through it and relays messages to its followers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/cfg"
	"github.com/chatternet/chatternet-server-http-sub000/data"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/chatternet/chatternet-server-http-sub000/outbox"
	"github.com/chatternet/chatternet-server-http-sub000/server"
)

const version = "0.3.0"

var (
	port      = flag.Int("port", 3030, "listening port")
	actorPath = flag.String("actor", "actor.json", "server actor document path")
	keyPath   = flag.String("key", "key.jwk", "server key path")
	dbPath    = flag.String("db", "db.sqlite3", "database path")
	cfgPath   = flag.String("cfg", "", "configuration file path")
	loopback  = flag.Bool("loopback", false, "listen on the loopback interface only")
)

func loadIdentity() (didkey.Key, *ap.Actor, error) {
	rawKey, err := os.ReadFile(*keyPath)
	if err != nil {
		return didkey.Key{}, nil, fmt.Errorf("failed to read %s: %w", *keyPath, err)
	}

	key, err := didkey.FromJWK(rawKey)
	if err != nil {
		return didkey.Key{}, nil, fmt.Errorf("failed to parse %s: %w", *keyPath, err)
	}

	rawActor, err := os.ReadFile(*actorPath)
	if err != nil {
		return didkey.Key{}, nil, fmt.Errorf("failed to read %s: %w", *actorPath, err)
	}

	var actor ap.Actor
	if err := json.Unmarshal(rawActor, &actor); err != nil {
		return didkey.Key{}, nil, fmt.Errorf("failed to parse %s: %w", *actorPath, err)
	}

	if err := actor.Verify(); err != nil {
		return didkey.Key{}, nil, fmt.Errorf("server actor is not valid: %w", err)
	}

	if actor.ID != key.ActorID() {
		return didkey.Key{}, nil, fmt.Errorf("%s belongs to %s, not to the key in %s", *actorPath, actor.ID, *keyPath)
	}

	return key, &actor, nil
}

func run(ctx context.Context) error {
	live, err := cfg.NewLive(slog.Default(), *cfgPath)
	if err != nil {
		return err
	}
	defer live.Close()

	c := live.Current()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     slog.Level(c.LogLevel),
		AddSource: slog.Level(c.LogLevel) <= slog.LevelDebug,
	})))

	key, actor, err := loadIdentity()
	if err != nil {
		return err
	}

	if actor.URL == "" {
		return fmt.Errorf("server actor %s has no URL", actor.ID)
	}

	base, err := url.Parse(actor.URL)
	if err != nil {
		return fmt.Errorf("failed to parse server URL %s: %w", actor.URL, err)
	}

	prefix := base.Path
	if prefix == "" || prefix == "/" {
		prefix = "/ap"
	}

	db, err := data.Open(ctx, *dbPath, c.DatabaseOptions)
	if err != nil {
		return err
	}
	defer db.Close()

	// the server's own documents are served like anybody else's
	rawActor, err := json.Marshal(actor)
	if err != nil {
		return fmt.Errorf("failed to serialize server actor: %w", err)
	}
	if err := data.PutDocument(ctx, db.Writes, actor.ID, rawActor); err != nil {
		return fmt.Errorf("failed to store server actor: %w", err)
	}

	addr := fmt.Sprintf(":%d", *port)
	if *loopback {
		addr = fmt.Sprintf("127.0.0.1:%d", *port)
	}

	slog.Info("Starting", "version", version, "actor", actor.ID, "url", actor.URL)

	s := server.Server{
		Version: version,
		Prefix:  prefix,
		Cfg:     live,
		DB:      db,
		Outbox:  &outbox.Outbox{DB: db, Server: key},
	}
	return s.ListenAndServe(ctx, addr)
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("Failed to run server", "error", err)
		os.Exit(1)
	}
}
