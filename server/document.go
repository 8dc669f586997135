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
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/data"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	// did:key DIDs resolve locally: the document is derived from the
	// key material inside the DID itself
	if strings.HasPrefix(id, didkey.Prefix) {
		doc, err := didkey.NewDocument(id)
		if err != nil {
			return fail(DidNotValid, err)
		}

		return respond(w, http.StatusOK, doc)
	}

	raw, err := data.GetDocument(r.Context(), s.DB.Reads, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fail(DocumentNotKnown, err)
	}
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	return respondRaw(w, http.StatusOK, raw)
}

// postDocument accepts the body of a known message.
//
// Bodies arrive separately from the messages referencing them, and the
// server only custodies bodies its messages point at: an unreferenced
// body is rejected until a message claims it.
func (s *Server) postDocument(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Cfg.Current().MaxRequestBodySize))
	if err != nil {
		return fail(DocumentNotValid, err)
	}

	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fail(DocumentNotValid, err)
	}

	if probe.ID != id {
		return fail(DocumentIDWrong, errors.New(probe.ID+" posted to "+id))
	}

	referenced, err := data.HasMessageWithBody(r.Context(), s.DB.Reads, id)
	if err != nil {
		return fail(DbQueryFailed, err)
	}
	if !referenced {
		return fail(DocumentNotKnown, errors.New("no message references "+id))
	}

	if err := ap.VerifyDocument(raw); err != nil {
		return fail(DocumentNotValid, err)
	}

	if err := data.PutDocument(r.Context(), s.DB.Writes, id, raw); err != nil {
		return fail(DbQueryFailed, err)
	}

	return respondRaw(w, http.StatusOK, raw)
}

// getCreatedBy returns the last message by one actor referencing a
// body document.
func (s *Server) getCreatedBy(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	actorID, err := pathActorID(r, "author")
	if err != nil {
		return err
	}

	messages, err := data.GetBodyMessages(r.Context(), s.DB.Reads, id, actorID)
	if err != nil {
		return fail(DbQueryFailed, err)
	}
	if len(messages) == 0 {
		return fail(DocumentNotKnown, errors.New("no message by "+actorID+" references "+id))
	}

	raw, err := data.GetDocument(r.Context(), s.DB.Reads, messages[len(messages)-1])
	if errors.Is(err, sql.ErrNoRows) {
		return fail(DocumentNotKnown, err)
	}
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	return respondRaw(w, http.StatusOK, raw)
}
