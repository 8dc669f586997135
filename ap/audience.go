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

	"github.com/chatternet/chatternet-server-http-sub000/data"
)

// Audience is an ordered, unique list of audience URIs.
type Audience struct {
	data.OrderedMap[string, struct{}]
}

// NewAudience builds an audience from a list of URIs, dropping duplicates.
func NewAudience(uris []string) Audience {
	var a Audience
	for _, s := range uris {
		a.Add(s)
	}
	return a
}

func (a *Audience) Add(s string) {
	if a.OrderedMap == nil {
		a.OrderedMap = make(data.OrderedMap[string, struct{}], 1)
	}

	a.OrderedMap.Store(s, struct{}{})
}

func (a *Audience) UnmarshalJSON(b []byte) error {
	var l []string
	if err := json.Unmarshal(b, &l); err != nil {
		// tolerate a single URI without the wrapping array
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		a.Add(s)
		return nil
	}

	if len(l) == 0 {
		return nil
	}

	a.OrderedMap = make(data.OrderedMap[string, struct{}], len(l))
	for _, s := range l {
		a.Add(s)
	}

	return nil
}

func (a Audience) MarshalJSON() ([]byte, error) {
	if len(a.OrderedMap) == 0 {
		return []byte("[]"), nil
	}

	return json.Marshal(a.OrderedMap.Keys())
}
