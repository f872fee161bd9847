// Package response writes the JSON envelope used by every HTTP endpoint
// and maps use case errors onto status codes.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/tair/pos-ledger/pkg/apperror"
	"github.com/tair/pos-ledger/pkg/logger"
)

// Response is the envelope of every JSON body
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// OK sends a successful envelope
func OK(w http.ResponseWriter, status int, message string, data interface{}) {
	JSON(w, status, Response{Success: true, Message: message, Data: data})
}

// BadRequest sends a 400 envelope for input the handler could not decode
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Response{Success: false, Error: message})
}

// StatusFor maps an error kind onto an HTTP status
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInsufficientStock, apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error translates err into the error envelope. Internal errors are logged
// and their detail is not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Internal("internal server error", err)
	}

	status := StatusFor(appErr.Kind)
	body := Response{Success: false, Error: appErr.Message}

	switch appErr.Kind {
	case apperror.KindInsufficientStock:
		body.Data = appErr.Fields
	case apperror.KindConflict:
		w.Header().Set("Retry-After", "1")
	case apperror.KindInternal:
		logger.Error(r.Context()).Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		body.Error = "internal server error"
	}

	JSON(w, status, body)
}
