package apihttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bonarr/internal/domain"
	"bonarr/internal/usecase"
)

type errorEnvelope struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorPayload{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writePlain emits the bare literal bodies the native API uses ("Ok.",
// "Fails.", ...). Automation clients string-match these, so they must not
// be wrapped in JSON.
func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, body)
}

// writeStoreError maps persistence failures to a generic 500. Nothing
// internal leaks onto the emulated wire surface.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStorage) || errors.Is(err, usecase.ErrRepository) {
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
