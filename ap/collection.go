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

const (
	CollectionType     = "Collection"
	CollectionPageType = "CollectionPage"
)

// Collection is a complete listing of related items.
type Collection struct {
	Context    any      `json:"@context"`
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Items      []string `json:"items"`
	TotalItems *int64   `json:"totalItems,omitempty"`
}

// CollectionPage is one window into a collection too big to list at once.
type CollectionPage struct {
	Context any    `json:"@context"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Items   any    `json:"items"`
	PartOf  string `json:"partOf"`
	Next    string `json:"next,omitempty"`
}

// NewCollection wraps items in a collection.
func NewCollection(id string, items []string) *Collection {
	total := int64(len(items))
	return &Collection{
		Context:    DefaultContext,
		ID:         id,
		Type:       CollectionType,
		Items:      items,
		TotalItems: &total,
	}
}

// NewCollectionPage wraps one page of items in a collection page.
//
// next is optional: the last page has none.
func NewCollectionPage(id, partOf string, items any, next string) *CollectionPage {
	return &CollectionPage{
		Context: DefaultContext,
		ID:      id,
		Type:    CollectionPageType,
		Items:   items,
		PartOf:  partOf,
		Next:    next,
	}
}
