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

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/data"
)

// pageParams reads the pageSize and startIdx query parameters.
//
// Parsing is lenient: anything unusable falls back to the default page
// size, and the size is capped so a client cannot ask for everything
// at once.
func (s *Server) pageParams(r *http.Request) (int, *int64) {
	c := s.Cfg.Current()

	count := c.PostsPerPage
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = min(n, c.MaxPageSize)
		}
	}

	var startIdx *int64
	if v := r.URL.Query().Get("startIdx"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			startIdx = &n
		}
	}

	return count, startIdx
}

// pageEnvelope wraps one page of items in a collection page.
//
// The next link is present only when older items remain: an item at
// index 0 is the oldest there is.
func pageEnvelope(partOf string, count int, startIdx *int64, items any, lowIdx int64) *ap.CollectionPage {
	id := fmt.Sprintf("%s?pageSize=%d", partOf, count)
	if startIdx != nil {
		id = fmt.Sprintf("%s?startIdx=%d&pageSize=%d", partOf, *startIdx, count)
	}

	next := ""
	if lowIdx > 0 {
		next = fmt.Sprintf("%s?startIdx=%d&pageSize=%d", partOf, lowIdx-1, count)
	}

	return ap.NewCollectionPage(id, partOf, items, next)
}

func (s *Server) getInbox(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	count, startIdx := s.pageParams(r)

	page, err := data.GetInbox(r.Context(), s.DB.Reads, actorID, count, startIdx)
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	items := []json.RawMessage{}
	var lowIdx int64
	if page != nil {
		items = page.Items
		lowIdx = page.LowIdx
	}

	return respond(w, http.StatusOK, pageEnvelope(ap.InboxURI(actorID), count, startIdx, items, lowIdx))
}

func (s *Server) getInboxFrom(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	fromActorID, err := pathActorID(r, "author")
	if err != nil {
		return err
	}

	count, startIdx := s.pageParams(r)

	page, err := data.GetInboxFrom(r.Context(), s.DB.Reads, actorID, fromActorID, count, startIdx)
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	items := []json.RawMessage{}
	var lowIdx int64
	if page != nil {
		items = page.Items
		lowIdx = page.LowIdx
	}

	partOf := fmt.Sprintf("%s/from/%s", ap.InboxURI(actorID), fromActorID)
	return respond(w, http.StatusOK, pageEnvelope(partOf, count, startIdx, items, lowIdx))
}
