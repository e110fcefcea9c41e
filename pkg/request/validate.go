package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Validate checks a request definition for problems that would make it
// unrenderable or unexecutable. It returns every finding rather than stopping
// at the first, so the caller can report all of them at once.
func Validate(req *Request) []error {
	var errs []error

	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q is not an absolute URL", req.URL))
	}

	if !isKnownMethod(req.Method) {
		errs = append(errs, fmt.Errorf("unknown method %q", req.Method))
	}

	switch req.BodyType {
	case BodyJSON:
		if strings.TrimSpace(req.Body) != "" && !json.Valid([]byte(req.Body)) {
			errs = append(errs, fmt.Errorf("body is not valid JSON"))
		}
	case BodyGraphQL:
		if strings.TrimSpace(req.Body) != "" {
			if _, err := parser.ParseQuery(&ast.Source{Name: req.Name, Input: req.Body}); err != nil {
				errs = append(errs, fmt.Errorf("graphql body: %w", err))
			}
		}
	case BodyURLEncoded, BodyFormData, BodyText, BodyNone, "":
	default:
		errs = append(errs, fmt.Errorf("unknown body type %q", req.BodyType))
	}

	if key, ok := req.Auth.(APIKeyAuth); ok {
		if key.Key == "" {
			errs = append(errs, fmt.Errorf("api-key auth requires a key name"))
		}
		if key.In != InHeader && key.In != InQuery {
			errs = append(errs, fmt.Errorf("api-key auth location %q must be %q or %q", key.In, InHeader, InQuery))
		}
	}

	return errs
}

func isKnownMethod(m Method) bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}
