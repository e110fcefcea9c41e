package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// requestSchema is the structural contract for request documents. It guards
// the shape only; value-level checks (URL validity, body syntax) live in
// request.Validate.
const requestSchema = `{
  "type": "object",
  "required": ["method", "url"],
  "properties": {
    "id": {"type": "string"},
    "name": {"type": "string"},
    "method": {"type": "string"},
    "url": {"type": "string"},
    "headers": {"$ref": "#/definitions/fields"},
    "params": {"$ref": "#/definitions/fields"},
    "auth": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"enum": ["none", "basic", "bearer", "api-key"]},
        "username": {"type": "string"},
        "password": {"type": "string"},
        "token": {"type": "string"},
        "key": {"type": "string"},
        "value": {"type": "string"},
        "in": {"enum": ["header", "query"]}
      }
    },
    "bodyType": {
      "enum": ["json", "graphql", "x-www-form-urlencoded", "form-data", "text", "none"]
    },
    "body": {"type": "string"},
    "formData": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string"},
          "value": {"type": "string"},
          "enabled": {"type": "boolean"},
          "isFile": {"type": "boolean"},
          "fileName": {"type": "string"}
        }
      }
    },
    "variables": {"type": "object"},
    "settings": {
      "type": "object",
      "properties": {
        "userAgent": {"type": "string"}
      }
    }
  },
  "definitions": {
    "fields": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string"},
          "value": {"type": "string"},
          "enabled": {"type": "boolean"}
        }
      }
    }
  }
}`

var requestSchemaLoader = gojsonschema.NewStringLoader(requestSchema)

// validateRequestYAML checks a raw request document against requestSchema.
func validateRequestYAML(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	result, err := gojsonschema.Validate(requestSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid request document: %s", strings.Join(msgs, "; "))
	}
	return nil
}
