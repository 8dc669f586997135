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

// Package contentid derives stable, content-addressed IDs for JSON-LD documents.
//
// A document is canonicalized with URDNA2015 into N-Quads, hashed with
// SHA-256 and wrapped in a CIDv1 with the raw multicodec. The textual
// form is the base58btc multibase encoding of the CID, in a urn:cid: URI.
// Two documents receive the same ID if and only if they express the same
// RDF dataset, regardless of key order or JSON whitespace.
package contentid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chatternet/chatternet-server-http-sub000/danger"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
	"github.com/piprate/json-gold/ld"
)

// Prefix starts every content-addressed document ID.
const Prefix = "urn:cid:"

var (
	// ErrUnresolvableContext indicates a JSON-LD context that is not in the local cache.
	ErrUnresolvableContext = errors.New("cannot resolve context")

	// ErrMalformedDocument indicates a document that cannot be canonicalized.
	ErrMalformedDocument = errors.New("cannot canonicalize document")

	// ErrInvalidID indicates an ID that is not a valid urn:cid: URI.
	ErrInvalidID = errors.New("invalid content ID")

	// ErrMismatchedID indicates an ID that does not match the document it names.
	ErrMismatchedID = errors.New("content ID does not match document")
)

// generic converts a document to the generic map form json-gold operates on.
func generic(doc any) (any, error) {
	switch doc.(type) {
	case map[string]any, []any:
		return doc, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	var m any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	return m, nil
}

// Canonicalize converts a JSON-LD document into canonical N-Quads using URDNA2015.
//
// Only the locally cached contexts resolve; a document referencing any
// other context fails with [ErrUnresolvableContext].
func Canonicalize(doc any) ([]byte, error) {
	m, err := generic(doc)
	if err != nil {
		return nil, err
	}

	loader, err := documentLoader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	opts := ld.NewJsonLdOptions("")
	opts.ProcessingMode = ld.JsonLd_1_1
	opts.Format = "application/n-quads"
	opts.Algorithm = ld.AlgorithmURDNA2015
	opts.DocumentLoader = loader

	normalized, err := ld.NewJsonLdProcessor().Normalize(m, opts)
	if err != nil {
		if strings.Contains(err.Error(), ErrUnresolvableContext.Error()) {
			return nil, fmt.Errorf("%w: %w", ErrUnresolvableContext, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	nquads, ok := normalized.(string)
	if !ok {
		return nil, fmt.Errorf("%w: normalization returned %T", ErrMalformedDocument, normalized)
	}

	return danger.Bytes(nquads), nil
}

// Sum returns the urn:cid: ID of a document.
func Sum(doc any) (string, error) {
	nquads, err := Canonicalize(doc)
	if err != nil {
		return "", err
	}

	digest, err := mh.Sum(nquads, mh.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	s, err := cid.NewCidV1(cid.Raw, digest).StringOfBase(multibase.Base58BTC)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	return Prefix + s, nil
}

// Parse extracts and validates the CID inside a urn:cid: URI.
func Parse(id string) (cid.Cid, error) {
	s, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return cid.Undef, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	c, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("%w: %s: %w", ErrInvalidID, id, err)
	}

	return c, nil
}

// Matches validates that id is the content ID of doc.
//
// The comparison is on decoded CIDs, so it tolerates IDs written in a
// different multibase than the one Sum produces.
func Matches(id string, doc any) error {
	given, err := Parse(id)
	if err != nil {
		return err
	}

	computed, err := Sum(doc)
	if err != nil {
		return err
	}

	want, err := Parse(computed)
	if err != nil {
		return err
	}

	if !given.Equals(want) {
		return fmt.Errorf("%w: %s != %s", ErrMismatchedID, id, computed)
	}

	return nil
}
