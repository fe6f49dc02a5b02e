// Package httputil is the single place responses leave the API from. Every
// failure body is a small JSON object with one human-readable message field;
// internals never cross the boundary.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// Message writes a {"message": ...} body with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Internal logs the cause and answers with an opaque 500.
func Internal(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	Message(w, http.StatusInternalServerError, "internal server error")
}
