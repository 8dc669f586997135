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
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenMemory(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestDocuments_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutDocument(ctx, db.Writes, "urn:cid:za", json.RawMessage(`{"id":"urn:cid:za","content":"hi"}`)))

	doc, err := GetDocument(ctx, db.Reads, "urn:cid:za")
	assert.NoError(err)
	assert.JSONEq(`{"id":"urn:cid:za","content":"hi"}`, string(doc))

	has, err := HasDocument(ctx, db.Reads, "urn:cid:za")
	assert.NoError(err)
	assert.True(has)
}

func TestDocuments_GetMissing(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)

	_, err := GetDocument(t.Context(), db.Reads, "urn:cid:missing")
	assert.ErrorIs(err, sql.ErrNoRows)
}

func TestDocuments_PutOverwrites(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutDocument(ctx, db.Writes, "did:example:a/actor", json.RawMessage(`{"name":"a"}`)))
	assert.NoError(PutDocument(ctx, db.Writes, "did:example:a/actor", json.RawMessage(`{"name":"b"}`)))

	doc, err := GetDocument(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.JSONEq(`{"name":"b"}`, string(doc))
}

func TestDocuments_PutIfNewKeepsOriginal(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutDocumentIfNew(ctx, db.Writes, "urn:cid:za", json.RawMessage(`{"v":1}`)))
	assert.NoError(PutDocumentIfNew(ctx, db.Writes, "urn:cid:za", json.RawMessage(`{"v":2}`)))

	doc, err := GetDocument(ctx, db.Reads, "urn:cid:za")
	assert.NoError(err)
	assert.JSONEq(`{"v":1}`, string(doc))
}

func TestDocuments_Delete(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutDocument(ctx, db.Writes, "urn:cid:za", json.RawMessage(`{}`)))
	assert.NoError(DeleteDocument(ctx, db.Writes, "urn:cid:za"))

	_, err := GetDocument(ctx, db.Reads, "urn:cid:za")
	assert.ErrorIs(err, sql.ErrNoRows)
}

func TestMessages_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	has, err := HasMessage(ctx, db.Reads, "urn:cid:zm1")
	assert.NoError(err)
	assert.False(has)

	assert.NoError(PutMessageID(ctx, db.Writes, "urn:cid:zm1", "did:example:a/actor"))

	has, err = HasMessage(ctx, db.Reads, "urn:cid:zm1")
	assert.NoError(err)
	assert.True(has)

	assert.NoError(DeleteMessage(ctx, db.Writes, "urn:cid:zm1"))

	has, err = HasMessage(ctx, db.Reads, "urn:cid:zm1")
	assert.NoError(err)
	assert.False(has)
}

func TestMessageAudiences_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutMessageAudience(ctx, db.Writes, "urn:cid:zm1", "did:example:b/actor"))
	assert.NoError(PutMessageAudience(ctx, db.Writes, "urn:cid:zm1", "did:example:a/actor/followers"))
	assert.NoError(PutMessageAudience(ctx, db.Writes, "urn:cid:zm1", "did:example:b/actor"))

	audiences, err := GetMessageAudiences(ctx, db.Reads, "urn:cid:zm1")
	assert.NoError(err)
	assert.Equal([]string{"did:example:b/actor", "did:example:a/actor/followers"}, audiences)

	assert.NoError(DeleteMessageAudiences(ctx, db.Writes, "urn:cid:zm1"))

	audiences, err = GetMessageAudiences(ctx, db.Reads, "urn:cid:zm1")
	assert.NoError(err)
	assert.Empty(audiences)
}

func TestActorAudiences_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutActorAudience(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor/followers"))
	assert.NoError(PutActorAudience(ctx, db.Writes, "did:example:a/actor", "did:example:c/actor/followers"))

	audiences, err := GetActorAudiences(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal([]string{"did:example:b/actor/followers", "did:example:c/actor/followers"}, audiences)

	assert.NoError(DeleteActorAudience(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor/followers"))

	audiences, err = GetActorAudiences(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal([]string{"did:example:c/actor/followers"}, audiences)
}

func TestFollowings_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor"))
	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:c/actor"))
	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor"))

	followings, err := GetActorFollowings(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal([]string{"did:example:b/actor", "did:example:c/actor"}, followings)

	assert.NoError(DeleteActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor"))

	followings, err = GetActorFollowings(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal([]string{"did:example:c/actor"}, followings)
}

func TestFollowings_DeleteAll(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:b/actor"))
	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:a/actor", "did:example:c/actor"))
	assert.NoError(PutActorFollowing(ctx, db.Writes, "did:example:d/actor", "did:example:b/actor"))

	assert.NoError(DeleteActorAllFollowing(ctx, db.Writes, "did:example:a/actor"))

	followings, err := GetActorFollowings(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Empty(followings)

	// other actors' edges are untouched
	followings, err = GetActorFollowings(ctx, db.Reads, "did:example:d/actor")
	assert.NoError(err)
	assert.Equal([]string{"did:example:b/actor"}, followings)
}

func TestFollowers_Paging(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	for _, follower := range []string{"did:example:a/actor", "did:example:b/actor", "did:example:c/actor"} {
		assert.NoError(PutActorFollowing(ctx, db.Writes, follower, "did:example:z/actor"))
	}

	page, err := GetActorFollowers(ctx, db.Reads, "did:example:z/actor", 2, nil)
	assert.NoError(err)
	assert.NotNil(page)
	assert.Equal([]string{"did:example:c/actor", "did:example:b/actor"}, page.Items)
	assert.Greater(page.LowIdx, int64(0))

	next := page.LowIdx - 1
	page, err = GetActorFollowers(ctx, db.Reads, "did:example:z/actor", 2, &next)
	assert.NoError(err)
	assert.NotNil(page)
	assert.Equal([]string{"did:example:a/actor"}, page.Items)

	next = page.LowIdx - 1
	page, err = GetActorFollowers(ctx, db.Reads, "did:example:z/actor", 2, &next)
	assert.NoError(err)
	assert.Nil(page)
}

func TestBodies_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	assert.NoError(PutMessageBody(ctx, db.Writes, "urn:cid:zm1", "urn:cid:zb1", "did:example:a/actor"))
	assert.NoError(PutMessageBody(ctx, db.Writes, "urn:cid:zm2", "urn:cid:zb1", "did:example:b/actor"))
	assert.NoError(PutMessageBody(ctx, db.Writes, "urn:cid:zm2", "urn:cid:zb2", "did:example:b/actor"))

	bodies, err := GetMessageBodies(ctx, db.Reads, "urn:cid:zm2")
	assert.NoError(err)
	assert.Equal([]string{"urn:cid:zb1", "urn:cid:zb2"}, bodies)

	messages, err := GetBodyMessages(ctx, db.Reads, "urn:cid:zb1", "")
	assert.NoError(err)
	assert.Equal([]string{"urn:cid:zm1", "urn:cid:zm2"}, messages)

	messages, err = GetBodyMessages(ctx, db.Reads, "urn:cid:zb1", "did:example:b/actor")
	assert.NoError(err)
	assert.Equal([]string{"urn:cid:zm2"}, messages)

	has, err := HasMessageWithBody(ctx, db.Reads, "urn:cid:zb1")
	assert.NoError(err)
	assert.True(has)

	assert.NoError(DeleteMessageBodies(ctx, db.Writes, "urn:cid:zm1"))
	assert.NoError(DeleteMessageBodies(ctx, db.Writes, "urn:cid:zm2"))

	has, err = HasMessageWithBody(ctx, db.Reads, "urn:cid:zb1")
	assert.NoError(err)
	assert.False(has)
}

func TestMutableModified_HappyFlow(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	_, err := GetMutableModified(ctx, db.Reads, "did:example:a/actor")
	assert.ErrorIs(err, sql.ErrNoRows)

	assert.NoError(PutMutableModified(ctx, db.Writes, "did:example:a/actor", 1000))

	modified, err := GetMutableModified(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal(int64(1000), modified)

	assert.NoError(PutMutableModified(ctx, db.Writes, "did:example:a/actor", 2000))

	modified, err = GetMutableModified(ctx, db.Reads, "did:example:a/actor")
	assert.NoError(err)
	assert.Equal(int64(2000), modified)
}

func TestTransaction_RollbackDiscards(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	tx, err := db.Begin(ctx)
	assert.NoError(err)

	assert.NoError(PutDocument(ctx, tx, "urn:cid:za", json.RawMessage(`{}`)))
	assert.NoError(tx.Rollback())

	_, err = GetDocument(ctx, db.Reads, "urn:cid:za")
	assert.ErrorIs(err, sql.ErrNoRows)
}

func TestTransaction_CommitPersists(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	ctx := t.Context()

	tx, err := db.Begin(ctx)
	assert.NoError(err)

	assert.NoError(PutDocument(ctx, tx, "urn:cid:za", json.RawMessage(`{}`)))
	assert.NoError(tx.Commit())

	_, err = GetDocument(ctx, db.Reads, "urn:cid:za")
	assert.NoError(err)
}
