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

import "encoding/json"

// Page is one window of an index-ordered listing, newest first.
//
// LowIdx and HighIdx are the timeline indexes of the last and first
// item: a caller resumes the listing by passing LowIdx-1 as the next
// window's upper bound.
type Page struct {
	Items   []string
	LowIdx  int64
	HighIdx int64
}

// DocumentPage is one window of an index-ordered listing of full
// documents, newest first.
type DocumentPage struct {
	Items   []json.RawMessage
	LowIdx  int64
	HighIdx int64
}
