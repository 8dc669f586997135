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

import "time"

// millisecond precision, in UTC: re-serializing a parsed timestamp
// must yield the exact same string or IDs stop matching
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Time is a wrapper around time.Time that serializes with fixed,
// millisecond precision.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(timeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	err := t.Time.UnmarshalJSON(b)
	// fallback for producers that omit the colon in the zone offset
	if err != nil && len(b) > 2 && b[0] == '"' && b[len(b)-1] == '"' {
		t.Time, err = time.Parse("2006-01-02T15:04:05.999-0700", string(b[1:len(b)-1]))
	}
	return err
}
