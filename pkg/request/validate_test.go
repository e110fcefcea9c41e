package request

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr []string
	}{
		{
			name: "minimal valid request",
			req:  &Request{Method: MethodGet, URL: "https://x.test/a"},
		},
		{
			name: "valid json body",
			req: &Request{
				Method:   MethodPost,
				URL:      "https://x.test/a",
				BodyType: BodyJSON,
				Body:     `{"a": 1}`,
			},
		},
		{
			name: "valid graphql body",
			req: &Request{
				Method:   MethodPost,
				URL:      "https://x.test/graphql",
				BodyType: BodyGraphQL,
				Body:     "query Me { me { id name } }",
			},
		},
		{
			name:    "relative url",
			req:     &Request{Method: MethodGet, URL: "/a"},
			wantErr: []string{"absolute URL"},
		},
		{
			name:    "unknown method",
			req:     &Request{Method: "FETCH", URL: "https://x.test"},
			wantErr: []string{"unknown method"},
		},
		{
			name: "broken json body",
			req: &Request{
				Method:   MethodPost,
				URL:      "https://x.test/a",
				BodyType: BodyJSON,
				Body:     `{"a":`,
			},
			wantErr: []string{"valid JSON"},
		},
		{
			name: "broken graphql body",
			req: &Request{
				Method:   MethodPost,
				URL:      "https://x.test/graphql",
				BodyType: BodyGraphQL,
				Body:     "query { me ",
			},
			wantErr: []string{"graphql body"},
		},
		{
			name: "unknown body type",
			req: &Request{
				Method:   MethodPost,
				URL:      "https://x.test/a",
				BodyType: "soap",
			},
			wantErr: []string{"unknown body type"},
		},
		{
			name: "api key without name",
			req: &Request{
				Method: MethodGet,
				URL:    "https://x.test/a",
				Auth:   APIKeyAuth{Value: "v", In: InHeader},
			},
			wantErr: []string{"key name"},
		},
		{
			name: "api key with bad location",
			req: &Request{
				Method: MethodGet,
				URL:    "https://x.test/a",
				Auth:   APIKeyAuth{Key: "k", Value: "v", In: "body"},
			},
			wantErr: []string{"location"},
		},
		{
			name:    "multiple findings reported together",
			req:     &Request{Method: "FETCH", URL: "nope"},
			wantErr: []string{"absolute URL", "unknown method"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.req)
			if len(tt.wantErr) == 0 {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != len(tt.wantErr) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.wantErr))
			}
			for i, want := range tt.wantErr {
				if !strings.Contains(errs[i].Error(), want) {
					t.Errorf("errs[%d] = %q, want containing %q", i, errs[i], want)
				}
			}
		})
	}
}

func TestMethodHasBody(t *testing.T) {
	withBody := []Method{MethodPost, MethodPut, MethodPatch}
	withoutBody := []Method{MethodGet, MethodDelete, MethodHead, MethodOptions}

	for _, m := range withBody {
		if !m.HasBody() {
			t.Errorf("%s should carry a body", m)
		}
	}
	for _, m := range withoutBody {
		if m.HasBody() {
			t.Errorf("%s should not carry a body", m)
		}
	}
}

func TestBodyTypeContentType(t *testing.T) {
	tests := []struct {
		bodyType BodyType
		want     string
	}{
		{BodyJSON, "application/json"},
		{BodyGraphQL, "application/json"},
		{BodyURLEncoded, "application/x-www-form-urlencoded"},
		{BodyFormData, "multipart/form-data"},
		{BodyText, "text/plain"},
		{BodyNone, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(string(tt.bodyType), func(t *testing.T) {
			if got := tt.bodyType.ContentType(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
