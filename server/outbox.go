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
	"errors"
	"io"
	"net/http"

	"github.com/chatternet/chatternet-server-http-sub000/ap"
	"github.com/chatternet/chatternet-server-http-sub000/didkey"
	"github.com/chatternet/chatternet-server-http-sub000/outbox"
	"github.com/go-chi/chi/v5"
)

func (s *Server) postOutbox(w http.ResponseWriter, r *http.Request) error {
	did := chi.URLParam(r, "id")

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Cfg.Current().MaxRequestBodySize))
	if err != nil {
		return fail(MessageNotValid, err)
	}

	var msg ap.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fail(MessageNotValid, err)
	}

	err = s.Outbox.Ingest(r.Context(), did, &msg)
	switch {
	case err == nil:
		return respond(w, http.StatusOK, map[string]string{"id": msg.ID})

	case errors.Is(err, outbox.ErrAlreadyKnown):
		return respond(w, http.StatusAccepted, map[string]string{"id": msg.ID})

	case errors.Is(err, didkey.ErrInvalidDID):
		return fail(DidNotValid, err)

	case errors.Is(err, outbox.ErrWrongActor):
		return fail(ActorIDWrong, err)

	case errors.Is(err, ap.ErrInvalidMessage):
		return fail(MessageNotValid, err)

	case errors.Is(err, outbox.ErrStale):
		return fail(StaleMessage, err)

	default:
		return fail(DbQueryFailed, err)
	}
}
