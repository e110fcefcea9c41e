package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadRequest(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "create-user.yaml", `
name: create user
method: post
url: https://api.test/users
headers:
  - key: X-Trace
    value: abc
  - key: X-Off
    value: nope
    enabled: false
params:
  - key: dry_run
    value: "1"
auth:
  type: bearer
  token: tok123
bodyType: json
body: '{"name": "ada"}'
`)

	req, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Method != request.MethodPost {
		t.Errorf("method = %q, want POST", req.Method)
	}
	if req.ID == "" {
		t.Error("missing id should be generated")
	}
	if len(req.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(req.Headers))
	}
	if !req.Headers[0].Enabled {
		t.Error("enabled should default to true when omitted")
	}
	if req.Headers[1].Enabled {
		t.Error("explicit enabled: false should stick")
	}
	if !req.Params[0].Enabled {
		t.Error("param enabled should default to true")
	}
	bearer, ok := req.Auth.(request.BearerAuth)
	if !ok {
		t.Fatalf("auth = %T, want BearerAuth", req.Auth)
	}
	if bearer.Token != "tok123" {
		t.Errorf("token = %q", bearer.Token)
	}
	if req.BodyType != request.BodyJSON {
		t.Errorf("bodyType = %q, want json", req.BodyType)
	}
}

func TestLoadRequest_SchemaViolations(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing url",
			content: "name: x\nmethod: GET\n",
			errMsg:  "url",
		},
		{
			name:    "bad body type",
			content: "method: GET\nurl: https://x.test\nbodyType: bogus\n",
			errMsg:  "bodyType",
		},
		{
			name:    "bad auth type",
			content: "method: GET\nurl: https://x.test\nauth:\n  type: digest\n",
			errMsg:  "auth",
		},
		{
			name:    "not yaml",
			content: "{:::",
			errMsg:  "YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tmpDir, strings.ReplaceAll(tt.name, " ", "-")+".yaml", tt.content)
			_, err := LoadRequest(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	req := &request.Request{
		ID:     "req-1",
		Name:   "upload",
		URL:    "https://api.test/upload",
		Method: request.MethodPost,
		Headers: []request.Field{
			{Key: "X-Trace", Value: "abc", Enabled: true},
			{Key: "X-Off", Value: "n", Enabled: false},
		},
		Auth:     request.APIKeyAuth{Key: "X-Api-Key", Value: "s3cret", In: request.InHeader},
		BodyType: request.BodyFormData,
		FormData: []request.FormField{
			{Key: "doc", Enabled: true, IsFile: true, FileName: "a.pdf"},
		},
		Settings: &request.Settings{UserAgent: "tester/1.0"},
	}

	path := filepath.Join(tmpDir, "upload") // extension gets added
	if err := SaveRequest(req, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadRequest(path + ".yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ID != req.ID || loaded.Name != req.Name || loaded.URL != req.URL {
		t.Errorf("identity fields changed: %+v", loaded)
	}
	if len(loaded.Headers) != 2 || loaded.Headers[1].Enabled {
		t.Errorf("headers did not roundtrip: %+v", loaded.Headers)
	}
	key, ok := loaded.Auth.(request.APIKeyAuth)
	if !ok || key.Key != "X-Api-Key" || key.In != request.InHeader {
		t.Errorf("auth did not roundtrip: %+v", loaded.Auth)
	}
	if len(loaded.FormData) != 1 || !loaded.FormData[0].IsFile || loaded.FormData[0].FileName != "a.pdf" {
		t.Errorf("form data did not roundtrip: %+v", loaded.FormData)
	}
	if loaded.Settings == nil || loaded.Settings.UserAgent != "tester/1.0" {
		t.Errorf("settings did not roundtrip: %+v", loaded.Settings)
	}
}

func TestLoadResponse(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "resp.yaml", `
status: 404
statusText: Not Found
headers:
  - key: Content-Type
    value: application/json
  - key: X-Request-Id
    value: abc
body:
  type: json
  raw: '{"error":"missing"}'
`)

	resp, err := LoadResponse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != 404 || resp.StatusText != "Not Found" {
		t.Errorf("status line wrong: %d %s", resp.Status, resp.StatusText)
	}
	if len(resp.Headers) != 2 || resp.Headers[0].Key != "Content-Type" {
		t.Errorf("headers order lost: %+v", resp.Headers)
	}
	jp, ok := resp.Data.(request.JSONPayload)
	if !ok {
		t.Fatalf("payload = %T, want JSONPayload", resp.Data)
	}
	if jp.Raw != `{"error":"missing"}` {
		t.Errorf("raw = %q", jp.Raw)
	}
}

func TestLoadResponse_UnknownBodyType(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "resp.yaml", "status: 200\nstatusText: OK\nbody:\n  type: mystery\n")

	if _, err := LoadResponse(path); err == nil {
		t.Fatal("expected error for unknown body type")
	}
}

func TestListRequests(t *testing.T) {
	baseDir := t.TempDir()

	// Empty (and even missing) requests dir is not an error.
	files, err := ListRequests(baseDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("got %d files, want 0", len(files))
	}

	reqDir := RequestsDir(baseDir)
	if err := os.MkdirAll(filepath.Join(reqDir, "users"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, reqDir, "a.yaml", "method: GET\nurl: https://x.test\n")
	writeFile(t, filepath.Join(reqDir, "users"), "b.yml", "method: GET\nurl: https://x.test\n")
	writeFile(t, reqDir, "notes.txt", "ignored")

	files, err = ListRequests(baseDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %v, want 2 yaml files", files)
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("TEST_TOKEN", "from-system")

	env := map[string]string{
		"BASE_URL": "https://api.test",
		"TRACE":    "trace-1",
	}
	req := &request.Request{
		URL:    "{{BASE_URL}}/users",
		Method: request.MethodPost,
		Headers: []request.Field{
			{Key: "X-Trace", Value: "{{TRACE}}", Enabled: true},
		},
		Params: []request.Field{
			{Key: "q", Value: "{{MISSING}}", Enabled: true},
		},
		Auth: request.BearerAuth{Token: "{{env:TEST_TOKEN}}"},
		Body: `{"trace": "{{TRACE}}"}`,
	}

	applied := ApplyEnvironment(req, env)

	if applied.URL != "https://api.test/users" {
		t.Errorf("url = %q", applied.URL)
	}
	if applied.Headers[0].Value != "trace-1" {
		t.Errorf("header = %q", applied.Headers[0].Value)
	}
	if applied.Params[0].Value != "{{MISSING}}" {
		t.Errorf("unknown variables should be kept, got %q", applied.Params[0].Value)
	}
	bearer := applied.Auth.(request.BearerAuth)
	if bearer.Token != "from-system" {
		t.Errorf("token = %q, want system env value", bearer.Token)
	}
	if applied.Body != `{"trace": "trace-1"}` {
		t.Errorf("body = %q", applied.Body)
	}

	// The original must be untouched.
	if req.URL != "{{BASE_URL}}/users" || req.Headers[0].Value != "{{TRACE}}" {
		t.Errorf("input request was mutated: %+v", req)
	}
}

func TestApplyEnvironmentAPIKey(t *testing.T) {
	env := map[string]string{
		"HEADER_NAME": "X-Api-Key",
		"KEY":         "s3cret",
	}
	req := &request.Request{
		URL:    "https://api.test/users",
		Method: request.MethodGet,
		Auth: request.APIKeyAuth{
			Key:   "{{HEADER_NAME}}",
			Value: "{{KEY}}",
			In:    request.InQuery,
		},
	}

	applied := ApplyEnvironment(req, env)

	apiKey := applied.Auth.(request.APIKeyAuth)
	if apiKey.Key != "X-Api-Key" {
		t.Errorf("key = %q, want %q", apiKey.Key, "X-Api-Key")
	}
	if apiKey.Value != "s3cret" {
		t.Errorf("value = %q, want %q", apiKey.Value, "s3cret")
	}
	if apiKey.In != request.InQuery {
		t.Errorf("in = %q, want %q", apiKey.In, request.InQuery)
	}
}

func TestLoadEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TEST_SECRET", "sss")
	path := writeFile(t, tmpDir, "dev.yaml", "BASE_URL: https://dev.test\nTOKEN: '{{env:TEST_SECRET}}'\n")

	env, err := LoadEnvironment(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env["BASE_URL"] != "https://dev.test" {
		t.Errorf("BASE_URL = %q", env["BASE_URL"])
	}
	if env["TOKEN"] != "sss" {
		t.Errorf("system env references should resolve at load time, got %q", env["TOKEN"])
	}
}
