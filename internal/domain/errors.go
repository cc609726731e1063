package domain

import "errors"

var (
	ErrConfig     = errors.New("configuration error")
	ErrNoAccounts = errors.New("no accounts configured")
	ErrAuth       = errors.New("unauthorized")
	ErrNetwork    = errors.New("network error")

	ErrUnexpectedResponse error = unexpectedResponseError{}
)

// unexpectedResponseError matches both itself and ErrNetwork so callers
// recover from a malformed payload exactly as from a transport failure.
type unexpectedResponseError struct{}

func (unexpectedResponseError) Error() string { return "unexpected response" }

func (unexpectedResponseError) Is(target error) bool {
	return target == ErrNetwork
}

// IsAuth reports whether err means the remote rejected the credential.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
