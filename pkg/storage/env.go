package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// LoadEnvironment loads environment variables from a YAML file
func LoadEnvironment(filePath string) (map[string]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	var env map[string]string
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
	}

	// Resolve any {{env:VAR}} references to actual environment variables
	for key, value := range env {
		env[key] = resolveEnvRefs(value)
	}

	return env, nil
}

// ListEnvironments lists all environment files
func ListEnvironments(baseDir string) ([]string, error) {
	envDir := EnvironmentsDir(baseDir)

	if _, err := os.Stat(envDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var envs []string
	entries, err := os.ReadDir(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && (strings.HasSuffix(entry.Name(), ".yaml") || strings.HasSuffix(entry.Name(), ".yml")) {
			name := strings.TrimSuffix(strings.TrimSuffix(entry.Name(), ".yaml"), ".yml")
			envs = append(envs, name)
		}
	}

	return envs, nil
}

// SubstituteVariables replaces {{VAR}} placeholders with values from the environment
func SubstituteVariables(text string, env map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		// Check for env: prefix (reference to system environment)
		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
			return match // Keep original if not found
		}

		if val, ok := env[varName]; ok {
			return val
		}

		return match // Keep original if not found
	})
}

// ApplyEnvironment returns a copy of the request with {{VAR}} placeholders
// substituted in the URL, header and param values, auth credentials, form
// values, and the body. The input request is not modified.
func ApplyEnvironment(req *request.Request, env map[string]string) *request.Request {
	applied := *req
	applied.URL = SubstituteVariables(req.URL, env)
	applied.Body = SubstituteVariables(req.Body, env)

	applied.Headers = substituteFields(req.Headers, env)
	applied.Params = substituteFields(req.Params, env)

	if len(req.FormData) > 0 {
		applied.FormData = make([]request.FormField, len(req.FormData))
		for i, f := range req.FormData {
			f.Value = SubstituteVariables(f.Value, env)
			applied.FormData[i] = f
		}
	}

	switch a := req.Auth.(type) {
	case request.BasicAuth:
		applied.Auth = request.BasicAuth{
			Username: SubstituteVariables(a.Username, env),
			Password: SubstituteVariables(a.Password, env),
		}
	case request.BearerAuth:
		applied.Auth = request.BearerAuth{Token: SubstituteVariables(a.Token, env)}
	case request.APIKeyAuth:
		applied.Auth = request.APIKeyAuth{
			Key:   SubstituteVariables(a.Key, env),
			Value: SubstituteVariables(a.Value, env),
			In:    a.In,
		}
	}

	return &applied
}

func substituteFields(fields []request.Field, env map[string]string) []request.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]request.Field, len(fields))
	for i, f := range fields {
		f.Value = SubstituteVariables(f.Value, env)
		out[i] = f
	}
	return out
}

// resolveEnvRefs resolves {{env:VAR}} references in a string
func resolveEnvRefs(text string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
		}
		return match
	})
}

// EnsureLayout creates the application directory tree (requests/ and
// environments/) if it does not exist yet.
func EnsureLayout(baseDir string) error {
	for _, dir := range []string{baseDir, RequestsDir(baseDir), EnvironmentsDir(baseDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// EnvironmentPath returns the file path for a named environment.
func EnvironmentPath(baseDir, name string) string {
	return filepath.Join(EnvironmentsDir(baseDir), name+".yaml")
}
