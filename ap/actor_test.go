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
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/stretchr/testify/assert"
)

func TestBuildActor_HappyFlow(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Person, "alice", "", time.Now())
	assert.NoError(err)

	assert.Equal(key.ActorID(), actor.ID)
	assert.Equal(actor.ID+"/inbox", actor.Inbox)
	assert.Equal(actor.ID+"/outbox", actor.Outbox)
	assert.Equal(actor.ID+"/following", actor.Following)
	assert.Equal(actor.ID+"/followers", actor.Followers)
	assert.NoError(actor.Verify())
}

func TestBuildActor_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Service, "server", "http://127.0.0.1:3030/ap", time.Now())
	assert.NoError(err)

	raw, err := json.Marshal(actor)
	assert.NoError(err)

	var parsed Actor
	assert.NoError(json.Unmarshal(raw, &parsed))
	assert.NoError(parsed.Verify())

	again, err := json.Marshal(&parsed)
	assert.NoError(err)
	assert.Equal(string(raw), string(again))
}

func TestBuildActor_NameTooLong(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	_, err = BuildActor(key, Person, strings.Repeat("a", MaxNameLength+1), "", time.Now())
	assert.ErrorIs(err, ErrInvalidActor)
}

func TestBuildActor_NameLengthInCodePoints(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	// 30 code points but 60 bytes
	actor, err := BuildActor(key, Person, strings.Repeat("é", MaxNameLength), "", time.Now())
	assert.NoError(err)
	assert.NoError(actor.Verify())
}

func TestBuildActor_UnknownType(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	_, err = BuildActor(key, ActorType("Robot"), "", "", time.Now())
	assert.ErrorIs(err, ErrInvalidActor)
}

func TestActorVerify_TamperedName(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Person, "alice", "", time.Now())
	assert.NoError(err)

	actor.Name = "mallory"
	assert.ErrorIs(actor.Verify(), ErrInvalidActor)
}

func TestActorVerify_TamperedURIs(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	other, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Person, "alice", "", time.Now())
	assert.NoError(err)

	actor.Inbox = other.ActorID() + "/inbox"
	assert.ErrorIs(actor.Verify(), ErrInvalidActor)
}

func TestActorVerify_ForeignSigner(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	other, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Person, "alice", "", time.Now())
	assert.NoError(err)

	// a record fully signed by another DID must not validate for this ID
	forged := *actor
	forged.ID = other.ActorID()
	forged.Inbox = InboxURI(forged.ID)
	forged.Outbox = OutboxURI(forged.ID)
	forged.Following = FollowingURI(forged.ID)
	forged.Followers = FollowersURI(forged.ID)
	assert.ErrorIs(forged.Verify(), ErrInvalidActor)
}

func TestActorVerify_IDNotActorPath(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	actor, err := BuildActor(key, Person, "alice", "", time.Now())
	assert.NoError(err)

	actor.ID = key.DID
	assert.ErrorIs(actor.Verify(), ErrInvalidActor)
}
