package mock

import (
	"errors"
	"fmt"

	"github.com/accountvm/testkit/message"
)

var (
	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")

	// ErrUnexpectedCaller is returned when the caller is not as expected.
	ErrUnexpectedCaller = errors.New("unexpected caller")
)

// Mock is a single chain candidate with configurable expectations and
// responses. It claims exactly the message name it was configured with and
// declines everything else, which makes it a natural building block for a
// Chain. It counts its invocations so tests can assert on dispatch order
// and fallthrough behavior.
type Mock struct {
	// Name is the message name this mock claims. Messages with any other
	// name are declined with message.ErrNotHandled.
	Name string

	// ExpectedCaller, if nonzero, is validated against the caller of each
	// claimed message.
	ExpectedCaller message.AccountID

	// PayloadValidator validates the payload of claimed messages.
	PayloadValidator func([]byte) error

	// Response produces the response for claimed messages.
	Response func() []byte

	// Error is the error to return if the mock is configured to fail.
	Error error

	// Fail indicates whether claimed messages should fail.
	Fail bool

	// Calls is the number of times Handle was invoked, including calls the
	// mock declined.
	Calls int
}

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// Name is the message name the mock claims.
	Name string

	// ExpectedCaller, if nonzero, is validated against each claimed message.
	ExpectedCaller message.AccountID

	// PayloadValidator validates the payload of claimed messages.
	PayloadValidator func([]byte) error

	// Response produces the response for claimed messages.
	Response func() []byte

	// Error is the error to return if the mock is configured to fail.
	Error error

	// Fail indicates whether claimed messages should fail.
	Fail bool
}

// New creates a new Mock from the provided Config.
func New(config Config) (*Mock, error) {
	if config.Name == "" {
		return nil, errors.New("mock requires a message name to claim")
	}
	return &Mock{
		Name:             config.Name,
		ExpectedCaller:   config.ExpectedCaller,
		PayloadValidator: config.PayloadValidator,
		Response:         config.Response,
		Error:            config.Error,
		Fail:             config.Fail,
	}, nil
}

// Handle claims messages matching the configured name, validating inputs and
// returning the configured response or error. All other messages are declined.
func (m *Mock) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	m.Calls++

	if msg.Name != m.Name {
		return nil, fmt.Errorf("%w: %q does not match %q", message.ErrNotHandled, msg.Name, m.Name)
	}

	// Return user-defined error if Fail is set
	if m.Fail && m.Error != nil {
		return nil, m.Error
	}

	// Return default error if Fail is set but no custom error is provided
	if m.Fail {
		return nil, ErrOperationFailed
	}

	// Validate caller if an expectation was configured
	if m.ExpectedCaller != 0 && msg.Caller != m.ExpectedCaller {
		return nil, fmt.Errorf("%w: expected caller %d, got %d", ErrUnexpectedCaller, m.ExpectedCaller, msg.Caller)
	}

	// Validate payload using user-defined validator, if provided
	if m.PayloadValidator != nil {
		if err := m.PayloadValidator(msg.Data); err != nil {
			return nil, err
		}
	}

	// Return user-defined response if provided
	if m.Response != nil {
		return m.Response(), nil
	}

	// Default to no response
	return nil, nil
}
