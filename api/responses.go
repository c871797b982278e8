package main

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape: status is "success" or "error",
// data carries the payload on success, details the underlying cause on error.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{
		Status:  "error",
		Message: message,
	})
}

func writeServerError(w http.ResponseWriter, err error) {
	log.Error(err)
	writeJSON(w, http.StatusInternalServerError, envelope{
		Status:  "error",
		Message: "Internal server error",
		Details: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	w.Write(data)
}
