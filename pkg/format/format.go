// Package format renders request definitions and captured responses as raw
// HTTP/1.1-style text for the "raw view": request line, headers, blank line,
// body. Rendering is pure; the same input always produces the same text.
package format

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

// MalformedURLError is returned when a request URL cannot be parsed as an
// absolute URL. It is the formatter's only failure mode.
type MalformedURLError struct {
	URL string
	Err error
}

func (e *MalformedURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed url %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("malformed url %q: not an absolute URL", e.URL)
}

func (e *MalformedURLError) Unwrap() error { return e.Err }

// UserMessage returns a message suitable for showing in a notification.
func (e *MalformedURLError) UserMessage() string {
	return fmt.Sprintf("%q is not a valid absolute URL", e.URL)
}

// FormatRequest renders a request definition as raw HTTP/1.1 request text.
// Disabled rows and absent optional pieces are silently omitted; the only
// error is a *MalformedURLError for a URL that is not absolute.
func FormatRequest(req *request.Request) (string, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return "", &MalformedURLError{URL: req.URL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &MalformedURLError{URL: req.URL}
	}

	// Enabled params overwrite same-named query parameters already present in
	// the URL; a query-located API key lands last so it wins ties too.
	query := u.Query()
	for _, p := range req.Params {
		if p.Enabled && p.Key != "" {
			query.Set(p.Key, p.Value)
		}
	}
	if key, ok := req.Auth.(request.APIKeyAuth); ok && key.In == request.InQuery && key.Key != "" {
		query.Set(key.Key, key.Value)
	}

	target := u.EscapedPath()
	if target == "" {
		target = "/"
	}
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	lines := []string{
		fmt.Sprintf("%s %s HTTP/1.1", req.Method, target),
		"Host: " + u.Host,
	}

	for _, h := range req.Headers {
		if h.Enabled && h.Key != "" {
			lines = append(lines, h.Key+": "+h.Value)
		}
	}

	if line, ok := authHeader(req.Auth); ok {
		lines = append(lines, line)
	}

	if req.Settings != nil && req.Settings.UserAgent != "" && !hasEnabledHeader(req.Headers, "user-agent") {
		lines = append(lines, "User-Agent: "+req.Settings.UserAgent)
	}

	if req.Method.HasBody() && req.Body != "" && !hasEnabledHeader(req.Headers, "content-type") {
		lines = append(lines, "Content-Type: "+req.BodyType.ContentType())
	}

	lines = append(lines, "")
	if body := renderBody(req); body != "" {
		lines = append(lines, body)
	}

	return strings.Join(lines, "\n"), nil
}

// authHeader renders the single header line an auth variant contributes.
// A query-located API key contributes no header; it is already in the query.
func authHeader(auth request.Auth) (string, bool) {
	switch a := auth.(type) {
	case request.BasicAuth:
		cred := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
		return "Authorization: Basic " + cred, true
	case request.BearerAuth:
		return "Authorization: Bearer " + a.Token, true
	case request.APIKeyAuth:
		if a.In == request.InHeader && a.Key != "" {
			return a.Key + ": " + a.Value, true
		}
	}
	return "", false
}

func hasEnabledHeader(headers []request.Field, name string) bool {
	for _, h := range headers {
		if h.Enabled && h.Key != "" && strings.EqualFold(h.Key, name) {
			return true
		}
	}
	return false
}

func renderBody(req *request.Request) string {
	switch req.BodyType {
	case request.BodyFormData:
		var rows []string
		for _, f := range req.FormData {
			if !f.Enabled || strings.TrimSpace(f.Key) == "" {
				continue
			}
			if f.IsFile {
				name := f.FileName
				if name == "" {
					name = "unknown"
				}
				rows = append(rows, fmt.Sprintf("%s: [File: %s]", f.Key, name))
			} else {
				rows = append(rows, fmt.Sprintf("%s: %s", f.Key, f.Value))
			}
		}
		if len(rows) == 0 {
			return ""
		}
		return "[Form Data]\n" + strings.Join(rows, "\n")

	case request.BodyGraphQL:
		if req.Body == "" {
			return ""
		}
		envelope := struct {
			Query         string         `json:"query"`
			Variables     map[string]any `json:"variables"`
			OperationName any            `json:"operationName"`
		}{Query: req.Body, Variables: req.Variables}
		if envelope.Variables == nil {
			envelope.Variables = map[string]any{}
		}
		out, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return req.Body
		}
		return string(out)

	default:
		return req.Body
	}
}

// FormatResponse renders a response as raw HTTP/1.1 response text. Headers
// appear in the order they were supplied.
func FormatResponse(resp *request.Response) string {
	lines := []string{fmt.Sprintf("HTTP/1.1 %d %s", resp.Status, resp.StatusText)}
	for _, h := range resp.Headers {
		lines = append(lines, h.Key+": "+h.Value)
	}
	lines = append(lines, "")
	if body := renderPayload(resp.Data); body != "" {
		lines = append(lines, body)
	}
	return strings.Join(lines, "\n")
}

func renderPayload(p request.Payload) string {
	switch data := p.(type) {
	case request.TextPayload:
		return data.Data
	case request.JSONPayload:
		if data.Raw != "" {
			return data.Raw
		}
		return prettyJSON(data.Data)
	case request.BinaryPayload:
		return fmt.Sprintf("[Binary Data: %s, Size: %d bytes]", data.ContentType, data.Size)
	case request.ErrorPayload:
		return fmt.Sprintf("[Error: %s]", data.Message)
	case nil:
		return ""
	default:
		// Unrecognized payload shapes fall back to a JSON dump rather than
		// failing the whole rendering.
		return prettyJSON(p)
	}
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// RawView renders a request/response pair side by side under section markers.
func RawView(req *request.Request, resp *request.Response) (string, error) {
	reqText, err := FormatRequest(req)
	if err != nil {
		return "", err
	}
	return "=== REQUEST ===\n\n" + reqText + "\n\n=== RESPONSE ===\n" + FormatResponse(resp), nil
}
