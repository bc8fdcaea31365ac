package config

import (
	"encoding/json"
	"net/http"

	"github.com/learnhub-dev/learnhub/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the HTTP translation of a domain error. Handlers never map
// error kinds to status codes themselves.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.StatusOf(err), map[string]string{
		"message": apperr.MessageOf(err),
	})
}
