package handler

import (
	"time"

	"residentid/internal/residentid/domain"
)

// ValidateResponse is the HTTP response for a valid identifier.
type ValidateResponse struct {
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
	Order       uint16 `json:"order"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
}

// InvalidResponse is the HTTP response for a rejected identifier.
type InvalidResponse struct {
	Error            string `json:"error"`
	Reason           string `json:"reason"`
	ErrorDescription string `json:"error_description"`
}

// FromPersonalInfo converts domain output to an HTTP response; age is
// computed at now.
func FromPersonalInfo(info *domain.PersonalInfo, now time.Time) *ValidateResponse {
	return &ValidateResponse{
		Address:     info.Address,
		DateOfBirth: info.DateOfBirth.Format(time.DateOnly),
		Order:       info.Order,
		Gender:      info.Gender.String(),
		Age:         info.AgeAt(now),
	}
}

// FromValidationError converts a rejection to an HTTP response.
func FromValidationError(kind domain.ValidationError) *InvalidResponse {
	return &InvalidResponse{
		Error:            "invalid_resident_id",
		Reason:           kind.Code(),
		ErrorDescription: kind.Error(),
	}
}
