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

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/data"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/go-chi/chi/v5"
)

// pathActorID extracts and validates the DID in the request path,
// returning the ID of the actor it controls.
func pathActorID(r *http.Request, param string) (string, error) {
	did := chi.URLParam(r, param)
	if _, err := didkey.Decode(did); err != nil {
		return "", fail(DidNotValid, err)
	}

	return didkey.ActorID(did), nil
}

func (s *Server) getActor(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	raw, err := data.GetDocument(r.Context(), s.DB.Reads, actorID)
	if errors.Is(err, sql.ErrNoRows) {
		return fail(ActorNotKnown, err)
	}
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	var actor ap.Actor
	if err := json.Unmarshal(raw, &actor); err != nil || actor.ID != actorID {
		return fail(ActorNotKnown, err)
	}

	return respondRaw(w, http.StatusOK, raw)
}

func (s *Server) postActor(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Cfg.Current().MaxRequestBodySize))
	if err != nil {
		return fail(ActorNotValid, err)
	}

	var actor ap.Actor
	if err := json.Unmarshal(raw, &actor); err != nil {
		return fail(ActorNotValid, err)
	}

	if actor.ID != actorID {
		return fail(ActorIDWrong, errors.New(actor.ID+" posted to "+actorID))
	}

	if err := actor.Verify(); err != nil {
		return fail(ActorNotValid, err)
	}

	if err := data.PutDocument(r.Context(), s.DB.Writes, actor.ID, raw); err != nil {
		return fail(DbQueryFailed, err)
	}

	return respondRaw(w, http.StatusOK, raw)
}

func (s *Server) getFollowing(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	followings, err := data.GetActorFollowings(r.Context(), s.DB.Reads, actorID)
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	return respond(w, http.StatusOK, ap.NewCollection(ap.FollowingURI(actorID), followings))
}

func (s *Server) getFollowers(w http.ResponseWriter, r *http.Request) error {
	actorID, err := pathActorID(r, "id")
	if err != nil {
		return err
	}

	count, startIdx := s.pageParams(r)

	page, err := data.GetActorFollowers(r.Context(), s.DB.Reads, actorID, count, startIdx)
	if err != nil {
		return fail(DbQueryFailed, err)
	}

	partOf := ap.FollowersURI(actorID)
	items := []string{}
	var lowIdx int64
	if page != nil {
		items = page.Items
		lowIdx = page.LowIdx
	}

	return respond(w, http.StatusOK, pageEnvelope(partOf, count, startIdx, items, lowIdx))
}
