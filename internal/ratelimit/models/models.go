package models

import (
	"fmt"
	"time"
)

// EndpointClass names a group of endpoints that share one request budget.
type EndpointClass string

// ClassValidation covers identifier validation. Every answer tells the caller
// whether a candidate identifier is genuine, so the class is throttled per client.
const ClassValidation EndpointClass = "validation"

// Limit is the request budget for one endpoint class.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Limits maps endpoint classes to their budgets.
type Limits map[EndpointClass]Limit

// For returns the budget of class. Missing and non-positive budgets are errors.
func (l Limits) For(class EndpointClass) (Limit, error) {
	limit, ok := l[class]
	if !ok {
		return Limit{}, fmt.Errorf("no rate limit configured for class %q", class)
	}
	if limit.Requests <= 0 || limit.Window <= 0 {
		return Limit{}, fmt.Errorf("rate limit for class %q must be positive, got %d per %s",
			class, limit.Requests, limit.Window)
	}
	return limit, nil
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Outcome is the metrics label for the decision.
func (d *Decision) Outcome() string {
	if d.Allowed {
		return "allowed"
	}
	return "rejected"
}
