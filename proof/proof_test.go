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

package proof

import (
	"testing"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/contentid"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/stretchr/testify/assert"
)

func testDocument(content string) map[string]any {
	return map[string]any{
		"@context":  []any{contentid.ActivityStreamsContext, contentid.Ed25519SuiteContext},
		"type":      "Note",
		"content":   content,
		"mediaType": "text/markdown",
	}
}

func TestProof_HappyFlow(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)
	assert.Equal("Ed25519Signature2020", p.Type)
	assert.Equal(key.VerificationMethod(), p.VerificationMethod)
	assert.NotEmpty(p.Created)

	assert.NoError(Verify(doc, p))

	did, err := VerifierDID(p)
	assert.NoError(err)
	assert.Equal(key.DID, did)
}

func TestProof_TamperedDocument(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	doc["content"] = "hi!"
	assert.ErrorIs(Verify(doc, p), ErrBadSignature)
}

func TestProof_TamperedCreated(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	p.Created = time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	assert.ErrorIs(Verify(doc, p), ErrBadSignature)
}

func TestProof_WrongKey(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	other, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	// claim the proof was signed by another DID
	p.VerificationMethod = other.VerificationMethod()
	assert.ErrorIs(Verify(doc, p), ErrBadSignature)
}

func TestProof_EmbeddedProofRemoved(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	// Verify must ignore an embedded proof member
	doc["proof"] = map[string]any{"type": p.Type, "proofValue": p.Value}
	assert.NoError(Verify(doc, p))
}

func TestProof_UnsupportedSuite(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	p.Type = "DataIntegrityProof"
	assert.ErrorIs(Verify(doc, p), ErrUnsupportedSuite)
}

func TestProof_WrongPurpose(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	p.Purpose = "authentication"
	assert.ErrorIs(Verify(doc, p), ErrWrongPurpose)
}

func TestProof_ForeignFragment(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	other, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	p.VerificationMethod = key.DID + "#" + other.DID[len(didkey.Prefix):]
	assert.ErrorIs(Verify(doc, p), ErrNoSuchKey)
}

func TestProof_TruncatedValue(t *testing.T) {
	assert := assert.New(t)

	key, err := didkey.Generate()
	assert.NoError(err)

	doc := testDocument("hi")

	p, err := Create(key, time.Now(), doc)
	assert.NoError(err)

	p.Value = p.Value[:8]
	assert.ErrorIs(Verify(doc, p), ErrBadSignature)
}
