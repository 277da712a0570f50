package models

// RateLimitExceededResponse is the 429 body. It follows the error shape of every
// other endpoint so clients need a single decoder.
type RateLimitExceededResponse struct {
	Error            string `json:"error"` // "rate_limit_exceeded"
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"` // seconds
}
