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

// Package didkey implements the Ed25519 flavor of the did:key method.
//
// A did:key DID is self-certifying: the identifier is the multibase
// encoding of the public key itself, so resolution requires no lookup.
// Every DID controls exactly one actor, addressed by the DID followed
// by /actor.
package didkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

const (
	// Prefix starts every DID this package produces or accepts.
	Prefix = "did:key:"

	// actorPath separates an actor ID from the DID that controls it.
	actorPath = "/actor"
)

// multicodec prefix for an Ed25519 public key: 0xed as unsigned varint.
var ed25519Multicodec = []byte{0xed, 0x01}

var (
	// ErrInvalidDID indicates a string that is not an Ed25519 did:key DID.
	ErrInvalidDID = errors.New("invalid DID")

	// ErrInvalidActorID indicates a string that is not a DID-derived actor ID.
	ErrInvalidActorID = errors.New("invalid actor ID")
)

// Key is an Ed25519 private key together with the DID of its public half.
type Key struct {
	DID        string
	PrivateKey ed25519.PrivateKey
}

// Generate creates a new random key.
func Generate() (Key, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Key{}, fmt.Errorf("failed to generate key: %w", err)
	}

	return FromPrivateKey(priv), nil
}

// FromPrivateKey derives the DID of a private key.
func FromPrivateKey(priv ed25519.PrivateKey) Key {
	return Key{
		DID:        Encode(priv.Public().(ed25519.PublicKey)),
		PrivateKey: priv,
	}
}

// Public returns the public half of the key.
func (k Key) Public() ed25519.PublicKey {
	return k.PrivateKey.Public().(ed25519.PublicKey)
}

// ActorID returns the ID of the actor controlled by the key.
func (k Key) ActorID() string {
	return ActorID(k.DID)
}

// VerificationMethod returns the ID of the key inside the DID document:
// the DID with the encoded key repeated as the fragment.
func (k Key) VerificationMethod() string {
	return k.DID + "#" + strings.TrimPrefix(k.DID, Prefix)
}

// Encode returns the DID of an Ed25519 public key.
func Encode(pub ed25519.PublicKey) string {
	prefixed := make([]byte, 0, len(ed25519Multicodec)+len(pub))
	prefixed = append(prefixed, ed25519Multicodec...)
	prefixed = append(prefixed, pub...)

	return Prefix + "z" + base58.Encode(prefixed)
}

// Decode extracts the Ed25519 public key inside a DID.
func Decode(did string) (ed25519.PublicKey, error) {
	s, ok := strings.CutPrefix(did, Prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDID, did)
	}

	if len(s) == 0 || s[0] != 'z' {
		return nil, fmt.Errorf("%w: %s: not base58btc", ErrInvalidDID, did)
	}

	raw := base58.Decode(s[1:])
	if len(raw) != len(ed25519Multicodec)+ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %s: wrong length", ErrInvalidDID, did)
	}

	if raw[0] != ed25519Multicodec[0] || raw[1] != ed25519Multicodec[1] {
		return nil, fmt.Errorf("%w: %s: not an Ed25519 key", ErrInvalidDID, did)
	}

	return ed25519.PublicKey(raw[2:]), nil
}

// ActorID returns the ID of the actor controlled by a DID.
func ActorID(did string) string {
	return did + actorPath
}

// DIDFromActorID extracts and validates the DID inside an actor ID.
func DIDFromActorID(id string) (string, error) {
	did, ok := strings.CutSuffix(id, actorPath)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidActorID, id)
	}

	if _, err := Decode(did); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidActorID, id, err)
	}

	return did, nil
}

// VerificationMethodDID extracts and validates the DID inside a
// verification method ID and confirms the fragment names the DID's own key.
func VerificationMethodDID(method string) (string, error) {
	did, fragment, found := strings.Cut(method, "#")
	if !found {
		return "", fmt.Errorf("%w: %s: no fragment", ErrInvalidDID, method)
	}

	if _, err := Decode(did); err != nil {
		return "", err
	}

	if fragment != strings.TrimPrefix(did, Prefix) {
		return "", fmt.Errorf("%w: %s: fragment does not name the DID key", ErrInvalidDID, method)
	}

	return did, nil
}
