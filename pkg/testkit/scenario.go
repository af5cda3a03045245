// Package testkit drives REST API tests from JSON scenario files and gives
// tests a migrated throwaway database.
//
// Each scenario is a JSON file that describes:
//   - The HTTP request to fire (method, URL, body file, headers)
//   - Which seeded caller sends it ("as"), resolved to a bearer token
//   - Expected HTTP status code
//   - Expected response body file (optional, matched as a JSON subset)
//
// Scenario files live next to your *_test.go files:
//
//	testdata/
//	  rate_book.json       ← scenario
//	  rate_book_req.json   ← request body
//	  rate_book_res.json   ← expected response body
//
// URLs and bodies may reference {{name}} placeholders filled from Env.Vars,
// so fixtures can address rows whose IDs are generated at seed time:
//
//	func TestAPI(t *testing.T) {
//	    env := testkit.Env{Tokens: tokens, Vars: map[string]string{"book": id}}
//	    testkit.RunDir(t, handler, "testdata", env)
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /books/{{book}}
	RequestFileName string            `json:"requestFileName"` // request body, relative to the scenario file
	ContentType     string            `json:"contentType"`     // defaults to application/json
	Headers         map[string]string `json:"headers"`
	As              string            `json:"as"` // key into Env.Tokens; empty sends no token

	ResponseFileName string `json:"responseFileName"` // expected body, relative to the scenario file
	ExpectedCode     int    `json:"expectedCode"`

	dir string
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
		s.RequestMethod = "GET"
	}
	return nil
}

// RequestBodyPath returns the request body file, or "" when none is set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the expected response file, or "" when none is set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadAllFromDir loads every scenario in dir, skipping the *_req.json and
// *_res.json body files. Scenarios run in file name order.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{err}
	}
	sort.Strings(entries)

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("testkit: no scenario files found in %q", dir))
	}
	return scenarios, errs
}

func isBodyFile(path string) bool {
	base := filepath.Base(path)
	n := len(base)
	return n > 9 && (base[n-9:] == "_req.json" || base[n-9:] == "_res.json")
}
