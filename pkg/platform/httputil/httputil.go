// Package httputil centralizes JSON encoding and error rendering for the
// HTTP layer. All handlers go through WriteError so code-to-status mapping
// lives in one place.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "reclaim/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Validatable requests validate and normalize themselves after decoding.
type Validatable interface {
	Validate() error
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as a JSON error response. Internal errors hide
// their message from the client; everything else surfaces it.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.ErrorDescription = de.Message
		}
	}
	WriteJSON(w, dErrors.HTTPStatus(code), body)
}

// DecodeAndPrepare decodes the request body into T, validates it, and writes
// the error response itself on failure. Returns the request and whether the
// handler should proceed.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	// An absent body validates as the zero request.
	if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
		logger.WarnContext(ctx, "request body decode failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return nil, false
	}

	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
