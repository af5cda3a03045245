package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// Env carries what scenarios cannot know ahead of time: tokens per caller
// and generated IDs.
type Env struct {
	Tokens map[string]string
	Vars   map[string]string
}

// Expand replaces every {{name}} in s with Vars[name].
func (e Env) Expand(s string) string {
	for k, v := range e.Vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}

// Run executes a single scenario from a JSON file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string, env Env) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, env)
	})
}

// RunDir runs every scenario in dir as a subtest, in file name order.
// Scenarios share state, so later files see what earlier ones wrote.
func RunDir(t *testing.T, handler http.Handler, dir string, env Env) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}
	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, env)
		})
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, env Env) {
	t.Helper()

	var reqBody io.Reader
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		reqBody = strings.NewReader(env.Expand(string(data)))
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), env.Expand(s.RequestURL), reqBody)
	contentType := s.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, env.Expand(v))
	}
	if s.As != "" {
		tok, ok := env.Tokens[s.As]
		if !ok {
			t.Fatalf("[%s] no token for caller %q", s.Name, s.As)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
			return
		}
		AssertJSONBody(t, s, []byte(env.Expand(string(expected))), rec.Body.Bytes())
	}
}

// Do fires one request at handler with an optional bearer token and JSON
// body. body may be nil, a []byte or a string; anything else is a test bug.
func Do(t *testing.T, handler http.Handler, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		r = bytes.NewReader(b)
	case string:
		r = strings.NewReader(b)
	default:
		panic(fmt.Sprintf("testkit.Do: unsupported body type %T", body))
	}

	req := httptest.NewRequest(method, url, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
