package handler

import (
	"strings"

	dErrors "reclaim/pkg/domain-errors"
)

const maxNotesLength = 2000

// ClaimRequest is the HTTP request body for POST /matches/{matchID}/claim.
// The body is optional; notes default to empty.
type ClaimRequest struct {
	Notes string `json:"notes"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ClaimRequest) Validate() error {
	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeInvalidInput, "notes must be at most 2000 characters")
	}
	return nil
}
