package gateway

import "errors"

// Error is a gateway failure carried back to the cache. Message always
// holds something fit to show the user: the server-supplied message when
// there is one, an operation-specific fallback otherwise.
type Error struct {
	Op         string // e.g. "create expense"
	StatusCode int    // zero for transport failures
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError picks the server message if present, otherwise falls back to
// "<op> failed".
func NewError(op string, statusCode int, serverMessage string) *Error {
	msg := serverMessage
	if msg == "" {
		msg = op + " failed"
	}
	return &Error{Op: op, StatusCode: statusCode, Message: msg}
}

// Message extracts the human-readable message from any error returned by
// a gateway implementation.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}

// IsNotFound reports whether the gateway rejected an id it does not know.
func IsNotFound(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.StatusCode == 404
}
