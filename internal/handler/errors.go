package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/guestdesk/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping ties a domain sentinel to its HTTP status and error code.
// Order matters: the first sentinel matched by errors.Is wins.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrDormFull, http.StatusConflict, "dorm_full"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
}

// writeError maps err to a status code and writes the error body.
// Errors that match no sentinel are logged and reported as a bare 500 so
// internal details never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, errorBody(m.code, unwrapMessage(err, m.sentinel)))
			return
		}
	}
	s.log.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// badRequest writes a 400 for input rejected before reaching the service
// layer (malformed query string or JSON body).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody("bad_request", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.GuestService.Update: validation error: name is required" → "name is required"
// When the detail precedes the sentinel only the "pkg.Type.Method: " prefix is dropped:
// "service.GuestService.Update: dorm \"dorm3\" (1/1): dorm full" → "dorm \"dorm3\" (1/1): dorm full"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	if i := strings.Index(msg, ": "); i >= 0 {
		if op := msg[:i]; strings.Contains(op, ".") && !strings.ContainsAny(op, " \"") {
			return msg[i+2:]
		}
	}
	return msg
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already written; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into dst. Unknown fields are rejected so
// typos in field names surface as 400s rather than silently ignored input.
// A body over the size limit is reported as 413.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		badRequest(w, "request body is required")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request_too_large", "request body too large"))
			return false
		}
		badRequest(w, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}
