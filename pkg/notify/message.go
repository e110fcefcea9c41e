package notify

import "errors"

// userFacing is implemented by errors that know how to present themselves to
// the user (for example format.MalformedURLError).
type userFacing interface {
	UserMessage() string
}

// UserMessage derives the user-facing message for an error. Errors anywhere
// in the chain implementing UserMessage() win; everything else falls back to
// the error's own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}
	return err.Error()
}
