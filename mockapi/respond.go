package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-pg-admin/apiclient"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData[T any](w http.ResponseWriter, message string, data T) {
	writeJSON(w, http.StatusOK, apiclient.Envelope[T]{Success: true, Message: message, Data: data})
}

func writePage[T any](w http.ResponseWriter, data T, pagination apiclient.Pagination) {
	writeJSON(w, http.StatusOK, apiclient.Envelope[T]{Success: true, Message: "OK", Data: data, Pagination: &pagination})
}

// writeError answers with the failure envelope: success=false and the message
// in both message and error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiclient.Envelope[any]{Success: false, Message: message, Error: message})
}
