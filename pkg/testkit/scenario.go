// Package testkit provides a JSON-scenario-driven HTTP testing framework.
//
// Each scenario is a JSON file that describes:
//   - The HTTP request to fire (method, URL, body file, headers)
//   - Expected HTTP status code
//   - Expected response body file (optional, for JSON diff assertion)
//   - Mock steps for outgoing backend HTTP calls
//
// Scenario files live next to your *_test.go files. RunDir treats every
// *.json directly in the directory as a scenario, so body and response
// fixtures go in a subdirectory:
//
//	testdata/
//	  list_products.json                  <- scenario
//	  fixtures/list_products_res.json     <- expected response body
//
// Example _test.go:
//
//	func TestWeb(t *testing.T) {
//	    handler := routes.Handler()
//	    testkit.RunDir(t, handler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single HTTP test case loaded from a JSON file.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /products
	RequestFileName string            `json:"requestFileName"` // path to request body file (relative to scenario dir)
	Headers         map[string]string `json:"headers"`         // extra request headers

	// Response assertions
	ResponseFileName string `json:"responseFileName"` // path to expected response JSON file
	ExpectedCode     int    `json:"expectedCode"`     // expected HTTP status code

	// When true, an outgoing backend call with no matching mock fails the test.
	IsMockRequired bool `json:"isMockRequired"`

	// Mock steps for outgoing HTTP calls, matched in definition order.
	BackendMockStep []MockStep `json:"backendMockStep"`

	// resolved at load time, not in JSON
	dir string // directory of the scenario file
}

// MockStep describes one intercepted outgoing HTTP call.
type MockStep struct {
	// MatchURL matches the outgoing request URL by prefix
	// (e.g. "https://api.example.com/products").
	// Leave empty to match ANY outgoing request.
	MatchURL string `json:"matchUrl"`

	// MatchMethod optionally restricts the step to one HTTP method.
	MatchMethod string `json:"matchMethod"`

	// ReturnData is the synthetic response returned by the mock.
	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step.
type MockReturnData struct {
	// StatusCode of the synthetic response. Defaults to 200.
	StatusCode int `json:"statusCode"`

	// Body holds the response body. Exactly one of Body or BodyFileName
	// should be set; BodyFileName is resolved relative to the scenario dir.
	Body         json.RawMessage `json:"body"`
	BodyFileName string          `json:"bodyFileName"`
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// validate performs basic sanity checks on the loaded scenario.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET" // sensible default
	}
	return nil
}

// RequestBodyPath returns the absolute path to the request body file,
// resolved relative to the scenario file's directory.
// Returns "" when RequestFileName is not set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path to the expected response file.
// Returns "" when ResponseFileName is not set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// mockBody returns the synthetic response bytes for a step, reading the
// bodyFileName fixture when one is named.
func (s *Scenario) mockBody(rd MockReturnData) ([]byte, error) {
	if rd.BodyFileName != "" {
		data, err := os.ReadFile(s.resolve(rd.BodyFileName))
		if err != nil {
			return nil, fmt.Errorf("testkit: read mock body %q: %w", rd.BodyFileName, err)
		}
		return data, nil
	}
	return []byte(rd.Body), nil
}

// LoadAllFromDir loads every *.json file in dir as a Scenario.
// Files that fail to parse are collected as errors, not panicked.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
