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
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/chatternet/chatternet-server-http-sub000/contentid"
)

type DocumentType string

const (
	NoteDocument DocumentType = "Note"
	TagDocument  DocumentType = "Object"
)

const (
	// MaxNoteLength is the maximum length of note content, in bytes.
	MaxNoteLength = 1024

	// NoteMediaType is the only media type notes can carry.
	NoteMediaType = "text/markdown"
)

// ErrInvalidDocument indicates a body document that fails validation.
var ErrInvalidDocument = errors.New("invalid document")

// Note is the body of a post: a capped Markdown document. Notes carry
// no proof; they are referenced by messages and self-verify through
// their content ID.
type Note struct {
	Context      any          `json:"@context"`
	ID           string       `json:"id,omitempty"`
	Type         DocumentType `json:"type"`
	Content      string       `json:"content"`
	MediaType    string       `json:"mediaType"`
	AttributedTo string       `json:"attributedTo,omitempty"`
	InReplyTo    string       `json:"inReplyTo,omitempty"`
}

// BuildNote builds the body document of a post.
//
// attributedTo and inReplyTo are optional.
func BuildNote(content, attributedTo, inReplyTo string) (*Note, error) {
	n := Note{
		Context:      DefaultContext,
		Type:         NoteDocument,
		Content:      content,
		MediaType:    NoteMediaType,
		AttributedTo: attributedTo,
		InReplyTo:    inReplyTo,
	}

	if err := n.validate(); err != nil {
		return nil, err
	}

	id, err := contentid.Sum(&n)
	if err != nil {
		return nil, fmt.Errorf("failed to derive note ID: %w", err)
	}
	n.ID = id

	return &n, nil
}

func (n *Note) validate() error {
	if n.Type != NoteDocument {
		return fmt.Errorf("%w: unexpected type %s", ErrInvalidDocument, n.Type)
	}

	if len(n.Content) > MaxNoteLength {
		return fmt.Errorf("%w: content is too long", ErrInvalidDocument)
	}

	if n.MediaType != NoteMediaType {
		return fmt.Errorf("%w: unexpected media type %s", ErrInvalidDocument, n.MediaType)
	}

	for _, s := range []string{n.AttributedTo, n.InReplyTo} {
		if s == "" {
			continue
		}
		if err := ValidateURI(s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}

	return nil
}

// Verify validates the note and its content ID.
func (n *Note) Verify() error {
	if err := n.validate(); err != nil {
		return err
	}

	return matchesWithoutID(n.ID, n)
}

// Tag is a short label documents can be grouped under.
type Tag struct {
	Context any          `json:"@context"`
	ID      string       `json:"id,omitempty"`
	Type    DocumentType `json:"type"`
	Name    string       `json:"name"`
}

// BuildTag builds a tag document.
func BuildTag(name string) (*Tag, error) {
	t := Tag{
		Context: DefaultContext,
		Type:    TagDocument,
		Name:    name,
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	id, err := contentid.Sum(&t)
	if err != nil {
		return nil, fmt.Errorf("failed to derive tag ID: %w", err)
	}
	t.ID = id

	return &t, nil
}

func (t *Tag) validate() error {
	if t.Type != TagDocument {
		return fmt.Errorf("%w: unexpected type %s", ErrInvalidDocument, t.Type)
	}

	if t.Name == "" {
		return fmt.Errorf("%w: no name", ErrInvalidDocument)
	}

	if utf8.RuneCountInString(t.Name) > MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidDocument)
	}

	return nil
}

// Verify validates the tag and its content ID.
func (t *Tag) Verify() error {
	if err := t.validate(); err != nil {
		return err
	}

	return matchesWithoutID(t.ID, t)
}

func matchesWithoutID(id string, doc any) error {
	record, err := generic(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	delete(record, "id")
	if err := contentid.Matches(id, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// VerifyDocument validates a serialized body document of any known type.
func VerifyDocument(raw json.RawMessage) error {
	var probe struct {
		Type DocumentType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	switch probe.Type {
	case NoteDocument:
		var n Note
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return n.Verify()

	case TagDocument:
		var t Tag
		if err := json.Unmarshal(raw, &t); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return t.Verify()

	default:
		return fmt.Errorf("%w: unknown type %s", ErrInvalidDocument, probe.Type)
	}
}
