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

import "net/http"

// Kind is the client-visible classification of a request failure.
//
// Internal errors never reach the client verbatim: a handler wraps
// whatever went wrong in a [Error] with the kind the client should
// see, and the cause stays in the server log.
type Kind string

const (
	DbConnectionFailed  Kind = "DbConnectionFailed"
	DbQueryFailed       Kind = "DbQueryFailed"
	DidNotValid         Kind = "DidNotValid"
	ActorNotKnown       Kind = "ActorNotKnown"
	ActorNotValid       Kind = "ActorNotValid"
	ActorIDWrong        Kind = "ActorIdWrong"
	DocumentNotKnown    Kind = "DocumentNotKnown"
	DocumentNotValid    Kind = "DocumentNotValid"
	DocumentIDWrong     Kind = "DocumentIdWrong"
	MessageNotValid     Kind = "MessageNotValid"
	ServerMisconfigured Kind = "ServerMisconfigured"
	StaleMessage        Kind = "StaleMessage"
)

// HTTPStatus maps a kind to the status code it surfaces as.
func (k Kind) HTTPStatus() int {
	switch k {
	case DidNotValid, ActorNotValid, ActorIDWrong, DocumentNotValid, DocumentIDWrong, MessageNotValid:
		return http.StatusBadRequest

	case ActorNotKnown, DocumentNotKnown:
		return http.StatusNotFound

	case StaleMessage:
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// Error is a request failure: a client-visible kind wrapping an
// internal cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}

	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// fail wraps a cause in a request failure of the given kind.
func fail(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
