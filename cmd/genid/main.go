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

// genid generates a server identity: an Ed25519 key in a JWK file and
// the signed actor document the key controls.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
)

var (
	name      = flag.String("name", "", "server name, up to 30 characters")
	serverURL = flag.String("url", "http://127.0.0.1:3030/ap", "base URL the server is reachable at")
	keyPath   = flag.String("key", "key.jwk", "server key output path")
	actorPath = flag.String("actor", "actor.json", "server actor document output path")
)

func run() error {
	key, err := didkey.Generate()
	if err != nil {
		return err
	}

	actor, err := ap.BuildActor(key, ap.Service, *name, *serverURL, time.Now())
	if err != nil {
		return err
	}

	jwkKey, err := key.JWK()
	if err != nil {
		return err
	}

	rawKey, err := json.Marshal(jwkKey)
	if err != nil {
		return fmt.Errorf("failed to serialize key: %w", err)
	}

	rawActor, err := json.MarshalIndent(actor, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize actor: %w", err)
	}

	// the key never travels: owner-only permissions
	if err := os.WriteFile(*keyPath, rawKey, 0600); err != nil {
		return err
	}

	if err := os.WriteFile(*actorPath, rawActor, 0644); err != nil {
		return err
	}

	fmt.Println(actor.ID)
	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
