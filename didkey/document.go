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

package didkey

import "strings"

// VerificationMethod is a public key inside a DID document.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
}

// Document is a DID document: the resolution result of a DID.
//
// did:key documents are synthesized on the fly because the DID embeds
// the key material.
type Document struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
}

// NewDocument synthesizes the DID document of a did:key DID.
func NewDocument(did string) (*Document, error) {
	if _, err := Decode(did); err != nil {
		return nil, err
	}

	method := did + "#" + strings.TrimPrefix(did, Prefix)

	return &Document{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/suites/ed25519-2020/v1",
		},
		ID: did,
		VerificationMethod: []VerificationMethod{
			{
				ID:                 method,
				Type:               "Ed25519VerificationKey2020",
				Controller:         did,
				PublicKeyMultibase: strings.TrimPrefix(did, Prefix),
			},
		},
		Authentication:  []string{method},
		AssertionMethod: []string{method},
	}, nil
}
