// Package response writes the JSON envelope the API contract promises:
// {success, data?, count?, error?}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/kalakaksh/backend/pkg/apperr"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Success: true, Data: data})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// List sends a 200 with data and an explicit element count.
func List(w http.ResponseWriter, data interface{}, count int) {
	write(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// Raw sends a 200 with an arbitrary success payload merged into the envelope.
// Used by the upload and enhancement endpoints whose responses carry extra
// top-level fields beyond data.
func Raw(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

// Error sends an error envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Success: false, Error: message})
}

// FromErr maps err through the error taxonomy to its status code.
// Internal detail is never leaked for 500s.
func FromErr(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	Error(w, status, msg)
}

// ValidationErrors sends a 400 with the first field failure as the message.
func ValidationErrors(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Error(w, http.StatusBadRequest, msg)
		return
	}
	Error(w, http.StatusBadRequest, "Validation failed")
}

// NotFound sends the catch-all 404 for unknown endpoints.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Endpoint not found")
}
