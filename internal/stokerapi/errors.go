package stokerapi

import "errors"

// AuthError means the server rejected the account or the session token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "stokercloud auth rejected: " + e.Message
}

// ProtocolError covers transport failures, non-JSON bodies and payloads whose
// shape does not match what the vendor normally serves.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "stokercloud protocol error: " + e.Message + ": " + e.Err.Error()
	}
	return "stokercloud protocol error: " + e.Message
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
