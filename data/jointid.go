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
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// JointID derives the primary key of a relation row from the natural
// key columns: the base64 SHA-256 of the canonical JSON array of the
// columns. Inserting the same pair twice yields the same key, making
// relation inserts idempotent.
func JointID(keys ...string) (string, error) {
	j, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("failed to derive joint ID: %w", err)
	}

	canonical, err := jcs.Transform(j)
	if err != nil {
		return "", fmt.Errorf("failed to derive joint ID: %w", err)
	}

	digest := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(digest[:]), nil
}
