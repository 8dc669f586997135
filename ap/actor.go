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

package ap

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/chatternet/chatternet-server-http-sub000/proof"
)

// MaxNameLength is the maximum length of an actor or tag name, in code points.
const MaxNameLength = 30

type ActorType string

const (
	Application  ActorType = "Application"
	Group        ActorType = "Group"
	Organization ActorType = "Organization"
	Person       ActorType = "Person"
	Service      ActorType = "Service"
)

func (t ActorType) Valid() bool {
	switch t {
	case Application, Group, Organization, Person, Service:
		return true
	}
	return false
}

// ErrInvalidActor indicates an actor that fails validation.
var ErrInvalidActor = errors.New("invalid actor")

// Actor is the public face of a DID: a signed record binding a name and
// a type to the DID's one identity. The inbox, outbox, following and
// followers URIs carry no information of their own because they are
// derived from the ID, but they are spelled out (and signed) so the
// record is a plain ActivityPub actor to foreign consumers.
type Actor struct {
	Context   any         `json:"@context"`
	ID        string      `json:"id"`
	Type      ActorType   `json:"type"`
	Inbox     string      `json:"inbox"`
	Outbox    string      `json:"outbox"`
	Following string      `json:"following"`
	Followers string      `json:"followers"`
	Name      string      `json:"name,omitempty"`
	URL       string      `json:"url,omitempty"`
	Proof     proof.Proof `json:"proof,omitzero"`
}

// BuildActor builds and signs the actor controlled by a key.
//
// name and url are optional.
func BuildActor(key didkey.Key, typ ActorType, name, url string, now time.Time) (*Actor, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidActor, typ)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidActor)
	}

	if url != "" {
		if err := ValidateURI(url); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidActor, err)
		}
	}

	id := key.ActorID()
	actor := Actor{
		Context:   DefaultContext,
		ID:        id,
		Type:      typ,
		Inbox:     InboxURI(id),
		Outbox:    OutboxURI(id),
		Following: FollowingURI(id),
		Followers: FollowersURI(id),
		Name:      name,
		URL:       url,
	}

	p, err := proof.Create(key, now, &actor)
	if err != nil {
		return nil, fmt.Errorf("failed to sign actor: %w", err)
	}

	actor.Proof = p
	return &actor, nil
}

// Verify validates the actor record: the ID form, the derived URIs, the
// name length and the proof, which must be signed by the DID that owns
// the ID.
func (a *Actor) Verify() error {
	did, err := didkey.DIDFromActorID(a.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, err)
	}

	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown type %s", ErrInvalidActor, a.Type)
	}

	if utf8.RuneCountInString(a.Name) > MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidActor)
	}

	if a.Inbox != InboxURI(a.ID) || a.Outbox != OutboxURI(a.ID) || a.Following != FollowingURI(a.ID) || a.Followers != FollowersURI(a.ID) {
		return fmt.Errorf("%w: derived URIs do not match ID", ErrInvalidActor)
	}

	if a.URL != "" {
		if err := ValidateURI(a.URL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidActor, err)
		}
	}

	record, err := generic(a)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, err)
	}

	if err := proof.Verify(record, a.Proof); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, err)
	}

	signer, err := proof.VerifierDID(a.Proof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, err)
	}

	if signer != did {
		return fmt.Errorf("%w: signed by %s instead of %s", ErrInvalidActor, signer, did)
	}

	return nil
}
