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

import (
	"crypto/ed25519"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// FromJWK parses a serialized JWK holding an Ed25519 private key.
func FromJWK(raw []byte) (Key, error) {
	parsed, err := jwk.ParseKey(raw)
	if err != nil {
		return Key{}, fmt.Errorf("failed to parse JWK: %w", err)
	}

	var priv ed25519.PrivateKey
	if err := parsed.Raw(&priv); err != nil {
		return Key{}, fmt.Errorf("JWK is not an Ed25519 private key: %w", err)
	}

	return FromPrivateKey(priv), nil
}

// JWK converts the key into a JWK with the DID as the key ID.
func (k Key) JWK() (jwk.Key, error) {
	converted, err := jwk.FromRaw(k.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to convert key to JWK: %w", err)
	}

	if err := converted.Set(jwk.KeyIDKey, k.DID); err != nil {
		return nil, fmt.Errorf("failed to set JWK key ID: %w", err)
	}

	return converted, nil
}
