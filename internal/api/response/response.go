// Package response writes the JSON envelope. Error bodies carry a
// stable machine code next to the human message so clients can branch
// without string-matching.
package response

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeServerError      = "SERVER_ERROR"
)

type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Code: code, Message: message})
}

// ValidationFailed reports the per-field messages alongside the code.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ErrorBody{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors:  fields,
	})
}
