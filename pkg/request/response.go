package request

// Payload is the decoded body of a response. The concrete variants are
// TextPayload, JSONPayload, BinaryPayload, and ErrorPayload; consumers switch
// exhaustively over them.
type Payload interface {
	isPayload()
}

// TextPayload is a plain-text response body.
type TextPayload struct {
	Data string
}

// JSONPayload is a JSON response body. Raw, when present, preserves the exact
// bytes received so rendering does not depend on re-serialization.
type JSONPayload struct {
	Data any
	Raw  string
}

// BinaryPayload summarizes a body that was not decoded.
type BinaryPayload struct {
	ContentType string
	Size        int64
}

// ErrorPayload records a failure that produced no usable body.
type ErrorPayload struct {
	Message string
}

func (TextPayload) isPayload()   {}
func (JSONPayload) isPayload()   {}
func (BinaryPayload) isPayload() {}
func (ErrorPayload) isPayload()  {}

// HeaderEntry is one response header. Response headers are kept as a slice so
// the order they arrived in survives into the rendered output.
type HeaderEntry struct {
	Key   string
	Value string
}

// Response is the outcome of an executed request as supplied by the
// HTTP-execution collaborator (or loaded from a capture file).
type Response struct {
	Status     int
	StatusText string
	Headers    []HeaderEntry
	Data       Payload
}
