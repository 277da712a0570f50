package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(ctx context.Context, path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseHeader(key string) string
}

const validatePath = "/v1/resident-ids/validate"

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I validate resident ID "([^"]*)" (\d+) times$`, steps.validateNTimes)
	ctx.Step(`^at least one response should have status (\d+)$`, steps.atLeastOneStatus)
	ctx.Step(`^the throttled response should carry a "([^"]*)" header$`, steps.throttledResponseHasHeader)
}

type ratelimitSteps struct {
	tc TestContext

	statuses        map[int]int
	throttledHeader http.Header
}

func (s *ratelimitSteps) validateNTimes(ctx context.Context, id string, n int) error {
	s.statuses = make(map[int]int)
	s.throttledHeader = nil
	for range n {
		if err := s.tc.POST(ctx, validatePath, map[string]string{"resident_id": id}); err != nil {
			return err
		}
		status := s.tc.GetLastResponseStatus()
		s.statuses[status]++
		if status == http.StatusTooManyRequests && s.throttledHeader == nil {
			s.throttledHeader = http.Header{}
			s.throttledHeader.Set("Retry-After", s.tc.GetLastResponseHeader("Retry-After"))
			s.throttledHeader.Set("X-RateLimit-Limit", s.tc.GetLastResponseHeader("X-RateLimit-Limit"))
		}
	}
	return nil
}

func (s *ratelimitSteps) atLeastOneStatus(expected int) error {
	if s.statuses[expected] == 0 {
		return fmt.Errorf("no response returned %d, saw %v", expected, s.statuses)
	}
	return nil
}

func (s *ratelimitSteps) throttledResponseHasHeader(name string) error {
	if s.throttledHeader == nil {
		return fmt.Errorf("no throttled response recorded")
	}
	if s.throttledHeader.Get(name) == "" {
		return fmt.Errorf("throttled response missing %s header", name)
	}
	return nil
}
