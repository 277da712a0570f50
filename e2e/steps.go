package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"residentid/e2e/steps/ratelimit"
	"residentid/e2e/steps/validate"
)

const defaultBaseURL = "http://localhost:8080"

// TestContext carries the HTTP client and the last response across steps.
type TestContext struct {
	baseURL string
	client  *http.Client

	lastStatus  int
	lastBody    []byte
	lastHeaders http.Header
}

// NewTestContext targets E2E_BASE_URL, or the default local server address.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the resident ID service is running$`, tc.serviceIsRunning)
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.responseFieldShouldBe)

	validate.RegisterSteps(ctx, tc)
	ratelimit.RegisterSteps(ctx, tc)
}

func (tc *TestContext) serviceIsRunning(ctx context.Context) error {
	if err := tc.GET(ctx, "/health"); err != nil {
		return err
	}
	if tc.lastStatus != http.StatusOK {
		return fmt.Errorf("health check returned %d", tc.lastStatus)
	}
	return nil
}

func (tc *TestContext) responseStatusShouldBe(expected int) error {
	if tc.lastStatus != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.lastStatus, tc.lastBody)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldBe(field, expected string) error {
	value, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

// POST sends body as JSON. A []byte body is sent unchanged.
func (tc *TestContext) POST(ctx context.Context, path string, body any) error {
	var payload []byte
	switch b := body.(type) {
	case []byte:
		payload = b
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

// GET issues a request without a body.
func (tc *TestContext) GET(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	tc.lastHeaders = resp.Header
	return nil
}

// GetResponseField returns a top-level field of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	value, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response %s", field, tc.lastBody)
	}
	return value, nil
}

func (tc *TestContext) GetLastResponseStatus() int              { return tc.lastStatus }
func (tc *TestContext) GetLastResponseBody() []byte             { return tc.lastBody }
func (tc *TestContext) GetLastResponseHeader(key string) string { return tc.lastHeaders.Get(key) }
