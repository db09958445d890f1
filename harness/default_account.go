package harness

import "github.com/accountvm/testkit/message"

const defaultAccountName = "testkit.DefaultAccount"

// defaultAccount is the built-in handler backing plain client accounts. It
// has no routes: it declines every message, including OnCreate.
type defaultAccount struct{}

func (*defaultAccount) HandlerName() string { return defaultAccountName }

func (*defaultAccount) Setup(message.ResourceScope) error { return nil }

func (*defaultAccount) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	return nil, message.ErrNotHandled
}
