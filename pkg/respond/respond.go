package respond

import (
	"encoding/json"
	"net/http"

	"lumo/pkg/apperr"
)

// JSON writes v as a JSON response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error converts err into a structured {"error": message} body with the
// status code mapped from the error taxonomy. Nothing leaves a handler as an
// unstructured failure.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.Status(err), map[string]string{"error": err.Error()})
}
