package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

// SaveRequest saves a request definition to a YAML file
func SaveRequest(req *request.Request, filePath string) error {
	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Ensure .yaml extension
	if !strings.HasSuffix(filePath, ".yaml") && !strings.HasSuffix(filePath, ".yml") {
		filePath = filePath + ".yaml"
	}

	doc := fromRequest(req)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadRequest loads a request definition from a YAML file. The document is
// checked against the request schema before decoding, so a malformed file is
// reported with field-level detail instead of a half-decoded request.
func LoadRequest(filePath string) (*request.Request, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if err := validateRequestYAML(data); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}

	var doc requestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	req, err := doc.toRequest()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	return req, nil
}

// LoadResponse loads a captured response from a YAML file.
func LoadResponse(filePath string) (*request.Response, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc responseDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	resp, err := doc.toResponse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	return resp, nil
}

// ListRequests lists all saved requests in the requests directory
func ListRequests(baseDir string) ([]string, error) {
	requestsDir := RequestsDir(baseDir)

	if _, err := os.Stat(requestsDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var files []string
	err := filepath.Walk(requestsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			relPath, _ := filepath.Rel(requestsDir, path)
			files = append(files, relPath)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	return files, nil
}

// RequestsDir returns the requests directory path
func RequestsDir(baseDir string) string {
	return filepath.Join(baseDir, "requests")
}

// EnvironmentsDir returns the environments directory path
func EnvironmentsDir(baseDir string) string {
	return filepath.Join(baseDir, "environments")
}
