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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudience_OrderAndUniqueness(t *testing.T) {
	assert := assert.New(t)

	var a Audience
	a.Add("did:example:c/actor")
	a.Add("did:example:a/actor")
	a.Add("did:example:c/actor")
	a.Add("did:example:b/actor")

	assert.Equal([]string{"did:example:c/actor", "did:example:a/actor", "did:example:b/actor"}, a.Keys())
}

func TestAudience_MarshalOrder(t *testing.T) {
	assert := assert.New(t)

	var a Audience
	a.Add("did:example:b/actor")
	a.Add("did:example:a/actor")

	raw, err := json.Marshal(a)
	assert.NoError(err)
	assert.Equal(`["did:example:b/actor","did:example:a/actor"]`, string(raw))
}

func TestAudience_UnmarshalList(t *testing.T) {
	assert := assert.New(t)

	var a Audience
	assert.NoError(json.Unmarshal([]byte(`["did:example:a/actor", "did:example:b/actor", "did:example:a/actor"]`), &a))
	assert.Equal([]string{"did:example:a/actor", "did:example:b/actor"}, a.Keys())
}

func TestAudience_UnmarshalSingleString(t *testing.T) {
	assert := assert.New(t)

	var a Audience
	assert.NoError(json.Unmarshal([]byte(`"did:example:a/actor"`), &a))
	assert.Equal([]string{"did:example:a/actor"}, a.Keys())
}

func TestAudience_Contains(t *testing.T) {
	assert := assert.New(t)

	var a Audience
	a.Add("did:example:a/actor")

	assert.True(a.Contains("did:example:a/actor"))
	assert.False(a.Contains("did:example:b/actor"))
}

func TestArray_UnmarshalList(t *testing.T) {
	assert := assert.New(t)

	var a Array[string]
	assert.NoError(json.Unmarshal([]byte(`["x:a", "x:b"]`), &a))
	assert.Equal(Array[string]{"x:a", "x:b"}, a)
}

func TestArray_UnmarshalSingle(t *testing.T) {
	assert := assert.New(t)

	var a Array[string]
	assert.NoError(json.Unmarshal([]byte(`"x:a"`), &a))
	assert.Equal(Array[string]{"x:a"}, a)
}

func TestTime_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	var parsed Time
	assert.NoError(json.Unmarshal([]byte(`"2026-01-02T03:04:05.678Z"`), &parsed))

	raw, err := json.Marshal(parsed)
	assert.NoError(err)
	assert.Equal(`"2026-01-02T03:04:05.678Z"`, string(raw))
}

func TestTime_ZoneNormalizedToUTC(t *testing.T) {
	assert := assert.New(t)

	var parsed Time
	assert.NoError(json.Unmarshal([]byte(`"2026-01-02T03:04:05.678+02:00"`), &parsed))

	raw, err := json.Marshal(parsed)
	assert.NoError(err)
	assert.Equal(`"2026-01-02T01:04:05.678Z"`, string(raw))
}

func TestTime_OffsetWithoutColon(t *testing.T) {
	assert := assert.New(t)

	var parsed Time
	assert.NoError(json.Unmarshal([]byte(`"2026-01-02T03:04:05.678+0200"`), &parsed))

	raw, err := json.Marshal(parsed)
	assert.NoError(err)
	assert.Equal(`"2026-01-02T01:04:05.678Z"`, string(raw))
}
