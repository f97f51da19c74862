package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the wire shape for every error response. ErrorDetails
// carries a non-sensitive detail string on internal errors; credentials
// and stack traces never appear here.
type APIError struct {
	Error        string `json:"error"`
	ErrorDetails string `json:"errorDetails,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Error: msg})
}

// WriteInternal reports a storage or unexpected failure as a generic 500
// with a trimmed detail string.
func WriteInternal(w http.ResponseWriter, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, APIError{
		Error:        "Internal server error",
		ErrorDetails: detail,
	})
}
