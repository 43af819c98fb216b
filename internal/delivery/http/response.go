package http

import (
	"encoding/json"
	"net/http"
)

// Values of the error.code field.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeUnavailable = "unavailable"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the body of every response. Exactly one of Data and Error is set.
type envelope struct {
	Data  any        `json:"data"`
	Error *errorBody `json:"error"`
}

func respond(w http.ResponseWriter, status int, body envelope) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, data any) {
	respond(w, http.StatusOK, envelope{Data: data})
}

// respondError never echoes the underlying error to the client.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respond(w, status, envelope{Error: &errorBody{Code: code, Message: message}})
}
