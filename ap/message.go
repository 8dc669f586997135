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

	"github.com/chatternet/chatternet-server-http-sub000/contentid"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/chatternet/chatternet-server-http-sub000/proof"
)

type ActivityType string

const (
	AcceptActivity          ActivityType = "Accept"
	AddActivity             ActivityType = "Add"
	AnnounceActivity        ActivityType = "Announce"
	ArriveActivity          ActivityType = "Arrive"
	BlockActivity           ActivityType = "Block"
	CreateActivity          ActivityType = "Create"
	DeleteActivity          ActivityType = "Delete"
	DislikeActivity         ActivityType = "Dislike"
	FlagActivity            ActivityType = "Flag"
	FollowActivity          ActivityType = "Follow"
	IgnoreActivity          ActivityType = "Ignore"
	InviteActivity          ActivityType = "Invite"
	JoinActivity            ActivityType = "Join"
	LeaveActivity           ActivityType = "Leave"
	LikeActivity            ActivityType = "Like"
	ListenActivity          ActivityType = "Listen"
	MoveActivity            ActivityType = "Move"
	OfferActivity           ActivityType = "Offer"
	QuestionActivity        ActivityType = "Question"
	ReadActivity            ActivityType = "Read"
	RejectActivity          ActivityType = "Reject"
	RemoveActivity          ActivityType = "Remove"
	TentativeAcceptActivity ActivityType = "TentativeAccept"
	TentativeRejectActivity ActivityType = "TentativeReject"
	TravelActivity          ActivityType = "Travel"
	UndoActivity            ActivityType = "Undo"
	UpdateActivity          ActivityType = "Update"
	ViewActivity            ActivityType = "View"
)

func (t ActivityType) Valid() bool {
	switch t {
	case AcceptActivity, AddActivity, AnnounceActivity, ArriveActivity,
		BlockActivity, CreateActivity, DeleteActivity, DislikeActivity,
		FlagActivity, FollowActivity, IgnoreActivity, InviteActivity,
		JoinActivity, LeaveActivity, LikeActivity, ListenActivity,
		MoveActivity, OfferActivity, QuestionActivity, ReadActivity,
		RejectActivity, RemoveActivity, TentativeAcceptActivity,
		TentativeRejectActivity, TravelActivity, UndoActivity,
		UpdateActivity, ViewActivity:
		return true
	}
	return false
}

// ErrInvalidMessage indicates a message that fails validation.
var ErrInvalidMessage = errors.New("invalid message")

// Message is a signed, content-addressed activity.
//
// The proof covers the record without the ID, and the ID is the content
// ID of the record without the ID (but including the proof), so neither
// the payload nor the signature can be altered without changing the ID.
type Message struct {
	Context   any           `json:"@context"`
	ID        string        `json:"id,omitempty"`
	Type      ActivityType  `json:"type"`
	Actor     string        `json:"actor"`
	Object    Array[string] `json:"object"`
	Published Time          `json:"published,omitzero"`
	To        Audience      `json:"to,omitzero"`
	CC        Audience      `json:"cc,omitzero"`
	Audience  Audience      `json:"audience,omitzero"`
	Origin    string        `json:"origin,omitempty"`
	Target    Array[string] `json:"target,omitzero"`
	Proof     proof.Proof   `json:"proof,omitzero"`
}

// MessageOptions carries the optional fields of a message.
type MessageOptions struct {
	To       []string
	CC       []string
	Audience []string
	Origin   string
	Target   []string
}

func validateURIs(uris []string) error {
	for _, s := range uris {
		if err := ValidateURI(s); err != nil {
			return err
		}
	}
	return nil
}

// BuildMessage builds, signs and addresses a message on behalf of a key.
func BuildMessage(key didkey.Key, typ ActivityType, objects []string, opts MessageOptions, now time.Time) (*Message, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidMessage, typ)
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: no objects", ErrInvalidMessage)
	}

	for _, uris := range [][]string{objects, opts.To, opts.CC, opts.Audience, opts.Target} {
		if err := validateURIs(uris); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
	}

	if opts.Origin != "" {
		if err := ValidateURI(opts.Origin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
	}

	m := Message{
		Context:   DefaultContext,
		Type:      typ,
		Actor:     key.ActorID(),
		Object:    objects,
		Published: Time{now},
		To:        NewAudience(opts.To),
		CC:        NewAudience(opts.CC),
		Audience:  NewAudience(opts.Audience),
		Origin:    opts.Origin,
		Target:    opts.Target,
	}

	p, err := proof.Create(key, now, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	m.Proof = p

	id, err := contentid.Sum(&m)
	if err != nil {
		return nil, fmt.Errorf("failed to derive message ID: %w", err)
	}
	m.ID = id

	return &m, nil
}

// Verify validates the message: the structure, the ID and the proof,
// which must be signed by the DID that owns the actor.
func (m *Message) Verify() error {
	if !m.Type.Valid() {
		return fmt.Errorf("%w: unknown type %s", ErrInvalidMessage, m.Type)
	}

	did, err := didkey.DIDFromActorID(m.Actor)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if len(m.Object) == 0 {
		return fmt.Errorf("%w: no objects", ErrInvalidMessage)
	}

	for _, uris := range [][]string{m.Object, m.To.Keys(), m.CC.Keys(), m.Audience.Keys(), m.Target} {
		if err := validateURIs(uris); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
	}

	if m.Origin != "" {
		if err := ValidateURI(m.Origin); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
		}
	}

	if m.Published.IsZero() {
		return fmt.Errorf("%w: no published time", ErrInvalidMessage)
	}

	record, err := generic(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	delete(record, "id")
	if err := contentid.Matches(m.ID, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if err := proof.Verify(record, m.Proof); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	signer, err := proof.VerifierDID(m.Proof)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}

	if signer != did {
		return fmt.Errorf("%w: signed by %s instead of %s", ErrInvalidMessage, signer, did)
	}

	return nil
}

// Audiences returns the deduplicated union of to, cc and audience,
// preserving insertion order.
func (m *Message) Audiences() []string {
	var union Audience
	for _, a := range []Audience{m.To, m.CC, m.Audience} {
		for _, s := range a.Keys() {
			union.Add(s)
		}
	}

	return union.Keys()
}
