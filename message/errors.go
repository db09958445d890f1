package message

import "errors"

var (
	// ErrNotHandled is returned by a handler that declines a message. It is
	// the only error that causes fallthrough in a mock chain; once a chain is
	// exhausted it becomes an ordinary terminal failure.
	ErrNotHandled = errors.New("message not handled")

	// ErrAccountNotFound is returned when a message targets an account the
	// runtime has no binding for.
	ErrAccountNotFound = errors.New("account not found")

	// ErrHandlerNotFound is returned when a handler name has no registration.
	ErrHandlerNotFound = errors.New("handler not found")
)
