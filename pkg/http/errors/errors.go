package errors

import (
	"encoding/json"
	"net/http"
)

// Standard messages for each status the API emits.
const (
	MsgBadRequest      = "Bad request"
	MsgNotFound        = "Not Found"
	MsgNotAllowed      = "Not Allowed"
	MsgUnprocessable   = "Unprocessable entity"
	MsgTooManyRequests = "Too Many Requests"
	MsgInternalError   = "Internal server error"
	MsgUpstreamError   = "upstream error"
)

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondBadRequest writes a 400 envelope
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest, MsgBadRequest)
}

// RespondNotFound writes a 404 envelope
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, MsgNotFound)
}

// RespondMethodNotAllowed writes a 405 envelope and the Allow header
func RespondMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	RespondError(w, http.StatusMethodNotAllowed, MsgNotAllowed)
}

// RespondUnprocessable writes a 422 envelope
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity, MsgUnprocessable)
}

// RespondTooManyRequests writes a 429 envelope
func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, MsgTooManyRequests)
}

// RespondInternalError writes a 500 envelope
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternalError)
}

// RespondUpstreamError writes a 502 envelope for failed dependency checks
func RespondUpstreamError(w http.ResponseWriter) {
	RespondError(w, http.StatusBadGateway, MsgUpstreamError)
}
