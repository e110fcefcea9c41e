// Package storage reads and writes request definitions, captured responses,
// and environments as YAML files under the application directory.
package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/natsuyasai/api-tester-sub003/pkg/request"
)

// requestDoc is the YAML shape of a saved request definition.
type requestDoc struct {
	ID        string         `yaml:"id,omitempty"`
	Name      string         `yaml:"name"`
	Method    string         `yaml:"method"`
	URL       string         `yaml:"url"`
	Headers   []fieldDoc     `yaml:"headers,omitempty"`
	Params    []fieldDoc     `yaml:"params,omitempty"`
	Auth      *authDoc       `yaml:"auth,omitempty"`
	BodyType  string         `yaml:"bodyType,omitempty"`
	Body      string         `yaml:"body,omitempty"`
	FormData  []formFieldDoc `yaml:"formData,omitempty"`
	Variables map[string]any `yaml:"variables,omitempty"`
	Settings  *settingsDoc   `yaml:"settings,omitempty"`
}

// fieldDoc is one header or param row. A missing enabled key means enabled,
// so hand-written files stay terse.
type fieldDoc struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value,omitempty"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

type formFieldDoc struct {
	Key      string `yaml:"key"`
	Value    string `yaml:"value,omitempty"`
	Enabled  *bool  `yaml:"enabled,omitempty"`
	IsFile   bool   `yaml:"isFile,omitempty"`
	FileName string `yaml:"fileName,omitempty"`
}

type authDoc struct {
	Type     string `yaml:"type"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
	Key      string `yaml:"key,omitempty"`
	Value    string `yaml:"value,omitempty"`
	In       string `yaml:"in,omitempty"`
}

type settingsDoc struct {
	UserAgent string `yaml:"userAgent,omitempty"`
}

// responseDoc is the YAML shape of a captured response.
type responseDoc struct {
	Status     int         `yaml:"status"`
	StatusText string      `yaml:"statusText"`
	Headers    []headerDoc `yaml:"headers,omitempty"`
	Body       *payloadDoc `yaml:"body,omitempty"`
}

type headerDoc struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type payloadDoc struct {
	Type        string `yaml:"type"`
	Text        string `yaml:"text,omitempty"`
	JSON        any    `yaml:"json,omitempty"`
	Raw         string `yaml:"raw,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`
	Size        int64  `yaml:"size,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func (d *requestDoc) toRequest() (*request.Request, error) {
	req := &request.Request{
		ID:        d.ID,
		Name:      d.Name,
		URL:       d.URL,
		Method:    request.Method(strings.ToUpper(d.Method)),
		Body:      d.Body,
		Variables: d.Variables,
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if d.BodyType == "" {
		req.BodyType = request.BodyNone
	} else {
		req.BodyType = request.BodyType(d.BodyType)
	}
	for _, h := range d.Headers {
		req.Headers = append(req.Headers, request.Field{Key: h.Key, Value: h.Value, Enabled: enabled(h.Enabled)})
	}
	for _, p := range d.Params {
		req.Params = append(req.Params, request.Field{Key: p.Key, Value: p.Value, Enabled: enabled(p.Enabled)})
	}
	for _, f := range d.FormData {
		req.FormData = append(req.FormData, request.FormField{
			Key:      f.Key,
			Value:    f.Value,
			Enabled:  enabled(f.Enabled),
			IsFile:   f.IsFile,
			FileName: f.FileName,
		})
	}
	if d.Settings != nil {
		req.Settings = &request.Settings{UserAgent: d.Settings.UserAgent}
	}

	auth, err := d.Auth.toAuth()
	if err != nil {
		return nil, err
	}
	req.Auth = auth
	return req, nil
}

func (d *authDoc) toAuth() (request.Auth, error) {
	if d == nil {
		return nil, nil
	}
	switch d.Type {
	case "", "none":
		return nil, nil
	case "basic":
		return request.BasicAuth{Username: d.Username, Password: d.Password}, nil
	case "bearer":
		return request.BearerAuth{Token: d.Token}, nil
	case "api-key":
		in := request.KeyLocation(d.In)
		if in == "" {
			in = request.InHeader
		}
		return request.APIKeyAuth{Key: d.Key, Value: d.Value, In: in}, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", d.Type)
	}
}

func fromRequest(req *request.Request) requestDoc {
	doc := requestDoc{
		ID:        req.ID,
		Name:      req.Name,
		Method:    string(req.Method),
		URL:       req.URL,
		BodyType:  string(req.BodyType),
		Body:      req.Body,
		Variables: req.Variables,
	}
	for _, h := range req.Headers {
		doc.Headers = append(doc.Headers, fieldDoc{Key: h.Key, Value: h.Value, Enabled: boolPtr(h.Enabled)})
	}
	for _, p := range req.Params {
		doc.Params = append(doc.Params, fieldDoc{Key: p.Key, Value: p.Value, Enabled: boolPtr(p.Enabled)})
	}
	for _, f := range req.FormData {
		doc.FormData = append(doc.FormData, formFieldDoc{
			Key:      f.Key,
			Value:    f.Value,
			Enabled:  boolPtr(f.Enabled),
			IsFile:   f.IsFile,
			FileName: f.FileName,
		})
	}
	if req.Settings != nil {
		doc.Settings = &settingsDoc{UserAgent: req.Settings.UserAgent}
	}
	doc.Auth = fromAuth(req.Auth)
	return doc
}

func fromAuth(auth request.Auth) *authDoc {
	switch a := auth.(type) {
	case request.BasicAuth:
		return &authDoc{Type: "basic", Username: a.Username, Password: a.Password}
	case request.BearerAuth:
		return &authDoc{Type: "bearer", Token: a.Token}
	case request.APIKeyAuth:
		return &authDoc{Type: "api-key", Key: a.Key, Value: a.Value, In: string(a.In)}
	default:
		return nil
	}
}

func (d *responseDoc) toResponse() (*request.Response, error) {
	resp := &request.Response{
		Status:     d.Status,
		StatusText: d.StatusText,
	}
	for _, h := range d.Headers {
		resp.Headers = append(resp.Headers, request.HeaderEntry{Key: h.Key, Value: h.Value})
	}
	if d.Body == nil {
		return resp, nil
	}
	switch d.Body.Type {
	case "text":
		resp.Data = request.TextPayload{Data: d.Body.Text}
	case "json":
		resp.Data = request.JSONPayload{Data: d.Body.JSON, Raw: d.Body.Raw}
	case "binary":
		resp.Data = request.BinaryPayload{ContentType: d.Body.ContentType, Size: d.Body.Size}
	case "error":
		resp.Data = request.ErrorPayload{Message: d.Body.Error}
	default:
		return nil, fmt.Errorf("unknown response body type %q", d.Body.Type)
	}
	return resp, nil
}

func boolPtr(b bool) *bool { return &b }
