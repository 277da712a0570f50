package handler

import (
	dErrors "residentid/pkg/domain-errors"
)

// ValidateRequest is the HTTP request body for POST /v1/resident-ids/validate.
type ValidateRequest struct {
	ResidentID *string `json:"resident_id"`
}

// Validate checks the request shape only. The identifier itself, however long
// or malformed, is left for the validator to classify; surrounding whitespace
// is a validation failure, not something to trim.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateRequest) Validate() error {
	if r == nil || r.ResidentID == nil {
		return dErrors.New(dErrors.CodeBadRequest, "resident_id is required")
	}
	return nil
}
