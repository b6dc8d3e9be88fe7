// Package httputil centralizes JSON encoding and domain error translation so
// every handler emits the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded domain error into the failure envelope.
// Uncoded errors surface as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	WriteJSON(w, pkgerrors.ToHTTPStatus(code), ErrorResponse{
		Error:   string(code),
		Message: pkgerrors.MessageOf(err),
	})
}

// Decode parses the request body into dst, reporting a validation error on
// malformed JSON. Unknown fields are rejected to keep contracts strict.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeValidation, "invalid request body")
	}
	return nil
}
