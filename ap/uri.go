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
	"strings"
)

// MaxURILength is the maximum length of a URI, in bytes.
const MaxURILength = 2048

// ErrInvalidURI indicates a string that cannot be a URI.
var ErrInvalidURI = errors.New("invalid URI")

// ValidateURI validates the loose URI form used throughout:
// a non-empty string with a scheme separator, capped in size.
func ValidateURI(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURI)
	}

	if len(s) > MaxURILength {
		return fmt.Errorf("%w: %s is too long", ErrInvalidURI, s[:64])
	}

	if !strings.Contains(s, ":") {
		return fmt.Errorf("%w: %s has no scheme", ErrInvalidURI, s)
	}

	return nil
}

// Derived URIs of an actor: collections hang off the actor ID.
func InboxURI(actorID string) string     { return actorID + "/inbox" }
func OutboxURI(actorID string) string    { return actorID + "/outbox" }
func FollowingURI(actorID string) string { return actorID + "/following" }
func FollowersURI(actorID string) string { return actorID + "/followers" }
