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

// Package server exposes the store and the outbox over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/chatternet/chatternet-server-http-sub000/cfg"
	"github.com/chatternet/chatternet-server-http-sub000/data"
	"github.com/chatternet/chatternet-server-http-sub000/outbox"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/net/netutil"
)

// Server routes requests to the store and the outbox.
//
// Prefix is the path every document lives under, derived from the
// server actor's URL.
type Server struct {
	Version string
	Prefix  string
	Cfg     *cfg.Live
	DB      *data.DB
	Outbox  *outbox.Outbox
}

// Handler builds the routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Language", "Content-Type"},
	}).Handler)

	r.Get("/version", s.handle(s.getVersion))

	r.Route(s.Prefix, func(r chi.Router) {
		r.Get("/{id}", s.handle(s.getDocument))
		r.Post("/{id}", s.handle(s.postDocument))
		r.Get("/{id}/createdBy/{author}/actor", s.handle(s.getCreatedBy))

		r.Get("/{id}/actor", s.handle(s.getActor))
		r.Post("/{id}/actor", s.handle(s.postActor))
		r.Get("/{id}/actor/following", s.handle(s.getFollowing))
		r.Get("/{id}/actor/followers", s.handle(s.getFollowers))
		r.Post("/{id}/actor/outbox", s.handle(s.postOutbox))
		r.Get("/{id}/actor/inbox", s.handle(s.getInbox))
		r.Get("/{id}/actor/inbox/from/{author}/actor", s.handle(s.getInboxFrom))
	})

	return r
}

// ListenAndServe serves requests until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	c := s.Cfg.Current()

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr, "prefix", s.Prefix)

	err = srv.Serve(netutil.LimitListener(l, c.MaxConns))
	<-done

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) getVersion(w http.ResponseWriter, r *http.Request) error {
	return respond(w, http.StatusOK, s.Version)
}

// handle converts a handler's error into the status of its kind.
//
// Errors nobody classified are store errors by the propagation policy:
// everything else is wrapped where it happens.
func (s *Server) handle(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		var reqErr *Error
		if !errors.As(err, &reqErr) {
			reqErr = fail(DbQueryFailed, err)
		}

		status := reqErr.Kind.HTTPStatus()
		if status >= http.StatusInternalServerError {
			slog.Error("Failed to handle request", "method", r.Method, "path", r.URL.Path, "error", reqErr)
		} else {
			slog.Warn("Rejected request", "method", r.Method, "path", r.URL.Path, "error", reqErr)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": string(reqErr.Kind)})
	}
}

// respond writes a JSON response.
func respond(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
	return nil
}

// respondRaw writes an already serialized JSON response.
func respondRaw(w http.ResponseWriter, status int, raw json.RawMessage) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(raw); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
	return nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns each request an ID carried in the response and in
// every log line about the request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// accessLog logs one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(&sw, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		slog.Info(
			"Handled request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}
