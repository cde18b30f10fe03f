package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper.
// It matches outgoing HTTP requests against the mock steps of a Scenario and
// returns synthetic responses instead of making real network calls.
//
// Install it on the shared HTTP client before the test:
//
//	mt := testkit.NewMockTransport(scenario)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
//	// ... run test ...
//	mt.AssertAllCalled(t)
type MockTransport struct {
	mu       sync.Mutex
	scenario *Scenario
	steps    []httpMockEntry
	require  bool // fail on unmocked call if isMockRequired
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// NewMockTransport builds a MockTransport from the steps in s.
func NewMockTransport(s *Scenario) *MockTransport {
	mt := &MockTransport{scenario: s, require: s.IsMockRequired}
	for _, step := range s.BackendMockStep {
		mt.steps = append(mt.steps, httpMockEntry{step: step})
	}
	return mt
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.steps {
		entry := &mt.steps[i]
		if !stepMatches(req, entry.step) {
			continue
		}

		entry.callCount++
		return mt.buildResponse(req, entry.step.ReturnData)
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s, no matching mock step", req.URL)
	}

	// No mock found and not required: return a generic 404.
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error":"no mock configured"}`)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// AssertAllCalled verifies that every step was triggered at least once.
// Call this at the end of each test scenario.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		if e.callCount == 0 {
			errs = append(errs, fmt.Errorf(
				"testkit: mock step (matchUrl=%q) was never called", e.step.MatchURL))
		}
	}
	return errs
}

// CallCount returns how many outgoing requests matched the step at index i.
func (mt *MockTransport) CallCount(i int) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if i < 0 || i >= len(mt.steps) {
		return 0
	}
	return mt.steps[i].callCount
}

// stepMatches reports whether req matches the step's URL prefix and method.
// Empty matchUrl matches any URL; empty matchMethod matches any method.
func stepMatches(req *http.Request, step MockStep) bool {
	if step.MatchMethod != "" && !strings.EqualFold(req.Method, step.MatchMethod) {
		return false
	}
	if step.MatchURL == "" {
		return true
	}
	return strings.HasPrefix(req.URL.String(), step.MatchURL)
}

// buildResponse creates a synthetic *http.Response from MockReturnData.
func (mt *MockTransport) buildResponse(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	body, err := mt.scenario.mockBody(rd)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}
