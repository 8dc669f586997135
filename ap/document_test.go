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

	"github.com/stretchr/testify/assert"
)

func TestBuildNote_HappyFlow(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("**hello**", "did:example:a/actor", "")
	assert.NoError(err)
	assert.True(strings.HasPrefix(note.ID, "urn:cid:z"))
	assert.Equal("text/markdown", note.MediaType)
	assert.NoError(note.Verify())
}

func TestBuildNote_ContentAtCap(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote(strings.Repeat("a", MaxNoteLength), "", "")
	assert.NoError(err)
	assert.NoError(note.Verify())
}

func TestBuildNote_ContentOverCap(t *testing.T) {
	assert := assert.New(t)

	_, err := BuildNote(strings.Repeat("a", MaxNoteLength+1), "", "")
	assert.ErrorIs(err, ErrInvalidDocument)
}

func TestBuildNote_CapInBytes(t *testing.T) {
	assert := assert.New(t)

	// 513 two-byte code points: over the cap in bytes, under it in runes
	_, err := BuildNote(strings.Repeat("é", MaxNoteLength/2+1), "", "")
	assert.ErrorIs(err, ErrInvalidDocument)
}

func TestNoteVerify_TamperedContent(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("hello", "", "")
	assert.NoError(err)

	note.Content = "goodbye"
	assert.ErrorIs(note.Verify(), ErrInvalidDocument)
}

func TestNoteVerify_WrongMediaType(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("hello", "", "")
	assert.NoError(err)

	note.MediaType = "text/html"
	assert.ErrorIs(note.Verify(), ErrInvalidDocument)
}

func TestBuildTag_HappyFlow(t *testing.T) {
	assert := assert.New(t)

	tag, err := BuildTag("cats")
	assert.NoError(err)
	assert.True(strings.HasPrefix(tag.ID, "urn:cid:z"))
	assert.NoError(tag.Verify())
}

func TestBuildTag_NameAtCap(t *testing.T) {
	assert := assert.New(t)

	tag, err := BuildTag(strings.Repeat("é", MaxNameLength))
	assert.NoError(err)
	assert.NoError(tag.Verify())
}

func TestBuildTag_NameOverCap(t *testing.T) {
	assert := assert.New(t)

	_, err := BuildTag(strings.Repeat("a", MaxNameLength+1))
	assert.ErrorIs(err, ErrInvalidDocument)
}

func TestBuildTag_NoName(t *testing.T) {
	assert := assert.New(t)

	_, err := BuildTag("")
	assert.ErrorIs(err, ErrInvalidDocument)
}

func TestVerifyDocument_Note(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("hello", "", "")
	assert.NoError(err)

	raw, err := json.Marshal(note)
	assert.NoError(err)

	assert.NoError(VerifyDocument(raw))
}

func TestVerifyDocument_Tag(t *testing.T) {
	assert := assert.New(t)

	tag, err := BuildTag("cats")
	assert.NoError(err)

	raw, err := json.Marshal(tag)
	assert.NoError(err)

	assert.NoError(VerifyDocument(raw))
}

func TestVerifyDocument_UnknownType(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(VerifyDocument([]byte(`{"type": "Video"}`)), ErrInvalidDocument)
}

func TestVerifyDocument_Tampered(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("hello", "", "")
	assert.NoError(err)

	note.Content = "goodbye"
	raw, err := json.Marshal(note)
	assert.NoError(err)

	assert.ErrorIs(VerifyDocument(raw), ErrInvalidDocument)
}

func TestNote_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	note, err := BuildNote("hello", "did:example:a/actor", "urn:cid:parent")
	assert.NoError(err)

	raw, err := json.Marshal(note)
	assert.NoError(err)

	var parsed Note
	assert.NoError(json.Unmarshal(raw, &parsed))
	assert.NoError(parsed.Verify())

	again, err := json.Marshal(&parsed)
	assert.NoError(err)
	assert.Equal(string(raw), string(again))
}
