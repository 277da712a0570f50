package validate

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(ctx context.Context, path string, body any) error
}

const validatePath = "/v1/resident-ids/validate"

// RegisterSteps registers validation step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &validateSteps{tc: tc}

	ctx.Step(`^I validate resident ID "([^"]*)"$`, steps.validateResidentID)
	ctx.Step(`^I send the raw body "([^"]*)"$`, steps.sendRawBody)
}

type validateSteps struct {
	tc TestContext
}

func (s *validateSteps) validateResidentID(ctx context.Context, id string) error {
	return s.tc.POST(ctx, validatePath, map[string]string{"resident_id": id})
}

func (s *validateSteps) sendRawBody(ctx context.Context, body string) error {
	return s.tc.POST(ctx, validatePath, []byte(body))
}
