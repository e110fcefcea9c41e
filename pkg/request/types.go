// Package request defines the structured request and response model shared by
// the formatter, the storage layer, and the CLI: HTTP method and body kinds,
// enable-able header/param rows, and the auth variants a request can carry.
package request

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Methods lists every supported method.
var Methods = []Method{
	MethodGet, MethodPost, MethodPut, MethodPatch,
	MethodDelete, MethodHead, MethodOptions,
}

// HasBody reports whether the method carries a request body on the wire.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// BodyType describes how the request body should be interpreted.
type BodyType string

const (
	BodyJSON       BodyType = "json"
	BodyGraphQL    BodyType = "graphql"
	BodyURLEncoded BodyType = "x-www-form-urlencoded"
	BodyFormData   BodyType = "form-data"
	BodyText       BodyType = "text"
	BodyNone       BodyType = "none"
)

// ContentType returns the Content-Type header value for the body type.
func (b BodyType) ContentType() string {
	switch b {
	case BodyJSON, BodyGraphQL:
		return "application/json"
	case BodyURLEncoded:
		return "application/x-www-form-urlencoded"
	case BodyFormData:
		return "multipart/form-data"
	default:
		return "text/plain"
	}
}

// Field is a single header or query-parameter row. Rows with Enabled=false
// are kept in the definition but excluded from the rendered request.
type Field struct {
	Key     string
	Value   string
	Enabled bool
}

// FormField is a single form-data row. File rows carry the selected file name
// only; file contents never enter the request definition.
type FormField struct {
	Key      string
	Value    string
	Enabled  bool
	IsFile   bool
	FileName string
}

// KeyLocation says where an API key is injected.
type KeyLocation string

const (
	InHeader KeyLocation = "header"
	InQuery  KeyLocation = "query"
)

// Auth is the authentication configuration attached to a request.
// A nil Auth means no authentication. The concrete variants are BasicAuth,
// BearerAuth, and APIKeyAuth; consumers switch exhaustively over them.
type Auth interface {
	isAuth()
}

// BasicAuth sends username:password base64-encoded in an Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// BearerAuth sends a bearer token in an Authorization header.
type BearerAuth struct {
	Token string
}

// APIKeyAuth sends a key/value pair either as a header or a query parameter.
type APIKeyAuth struct {
	Key   string
	Value string
	In    KeyLocation
}

func (BasicAuth) isAuth()  {}
func (BearerAuth) isAuth() {}
func (APIKeyAuth) isAuth() {}

// Settings holds per-request overrides.
type Settings struct {
	UserAgent string
}

// Request is a single request definition as composed in the editor.
type Request struct {
	ID       string
	Name     string
	URL      string
	Method   Method
	Headers  []Field
	Params   []Field
	Auth     Auth
	BodyType BodyType
	Body     string
	// FormData is consulted only when BodyType is BodyFormData.
	FormData []FormField
	// Variables is consulted only when BodyType is BodyGraphQL.
	Variables map[string]any
	Settings  *Settings
}
