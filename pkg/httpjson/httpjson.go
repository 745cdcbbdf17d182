// Package httpjson holds the response helpers shared by the API controllers.
package httpjson

import (
	"encoding/json"
	"net/http"
)

func Write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError emits the error envelope used across the API: a stable machine
// code plus a human message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
