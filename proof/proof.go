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

// Package proof creates and verifies Ed25519Signature2020 integrity proofs.
//
// The signed payload is the SHA-256 hash of the canonicalized proof
// configuration followed by the SHA-256 hash of the canonicalized
// document, both canonicalized with URDNA2015. Verification is
// self-contained: the verification method is a did:key ID, so the
// public key is recovered from the proof itself.
package proof

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/chatternet/chatternet-server-http-sub000/contentid"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
)

const (
	proofType = "Ed25519Signature2020"
	purpose   = "assertionMethod"
)

var proofContext = []any{contentid.ActivityStreamsContext, contentid.Ed25519SuiteContext}

var (
	// ErrUnsupportedSuite indicates a proof type other than Ed25519Signature2020.
	ErrUnsupportedSuite = errors.New("unsupported proof type")

	// ErrWrongPurpose indicates a proof purpose other than assertionMethod.
	ErrWrongPurpose = errors.New("wrong proof purpose")

	// ErrNoSuchKey indicates a verification method that does not name a key of its DID.
	ErrNoSuchKey = errors.New("no such key")

	// ErrBadSignature indicates a proof value that does not verify against the document.
	ErrBadSignature = errors.New("bad signature")
)

// Proof is an Ed25519Signature2020 integrity proof.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	Purpose            string `json:"proofPurpose"`
	Value              string `json:"proofValue"`
}

func hashConfig(created, method string) ([sha256.Size]byte, error) {
	cfg, err := contentid.Canonicalize(map[string]any{
		"@context":           proofContext,
		"type":               proofType,
		"created":            created,
		"verificationMethod": method,
		"proofPurpose":       purpose,
	})
	if err != nil {
		return [sha256.Size]byte{}, err
	}

	return sha256.Sum256(cfg), nil
}

func hashDocument(doc any) ([sha256.Size]byte, error) {
	if m, ok := doc.(map[string]any); ok {
		delete(m, "proof")
	}

	data, err := contentid.Canonicalize(doc)
	if err != nil {
		return [sha256.Size]byte{}, err
	}

	return sha256.Sum256(data), nil
}

// Create signs a document, yielding a proof to embed in it.
//
// The document must carry its @context and must not carry a previous proof.
func Create(key didkey.Key, now time.Time, doc any) (Proof, error) {
	created := now.UTC().Format(time.RFC3339)
	method := key.VerificationMethod()

	cfgHash, err := hashConfig(created, method)
	if err != nil {
		return Proof{}, fmt.Errorf("failed to hash proof config: %w", err)
	}

	docHash, err := hashDocument(doc)
	if err != nil {
		return Proof{}, fmt.Errorf("failed to hash document: %w", err)
	}

	return Proof{
		Type:               proofType,
		Created:            created,
		VerificationMethod: method,
		Purpose:            purpose,
		Value:              "z" + base58.Encode(ed25519.Sign(key.PrivateKey, append(cfgHash[:], docHash[:]...))),
	}, nil
}

// VerifierDID extracts the DID whose key a proof claims to be signed with.
func VerifierDID(p Proof) (string, error) {
	did, err := didkey.VerificationMethodDID(p.VerificationMethod)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoSuchKey, err)
	}

	return did, nil
}

// Verify verifies a document against the proof that was embedded in it.
//
// The proof itself must be removed from the document before the call;
// a "proof" member is removed if doc is a generic map.
func Verify(doc any, p Proof) error {
	if p.Type != proofType {
		return fmt.Errorf("%w: %s", ErrUnsupportedSuite, p.Type)
	}

	if p.Purpose != purpose {
		return fmt.Errorf("%w: %s", ErrWrongPurpose, p.Purpose)
	}

	did, err := VerifierDID(p)
	if err != nil {
		return err
	}

	key, err := didkey.Decode(did)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoSuchKey, err)
	}

	if len(p.Value) <= 1 || p.Value[0] != 'z' {
		return fmt.Errorf("%w: not base58btc", ErrBadSignature)
	}

	sig := base58.Decode(p.Value[1:])
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: wrong signature length", ErrBadSignature)
	}

	cfgHash, err := hashConfig(p.Created, p.VerificationMethod)
	if err != nil {
		return fmt.Errorf("failed to hash proof config: %w", err)
	}

	docHash, err := hashDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to hash document: %w", err)
	}

	if !ed25519.Verify(key, append(cfgHash[:], docHash[:]...), sig) {
		return ErrBadSignature
	}

	return nil
}
