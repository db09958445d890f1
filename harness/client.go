package harness

import (
	"fmt"

	"github.com/accountvm/testkit/message"
)

// Client is a typed reference to an account known to be backed by handler
// type H. It carries no behavior; its value is in letting ExecIn construct
// the right handler type for direct state access.
type Client[H any] struct {
	Account message.AccountID
}

// ClientFor pairs an account ID with the handler type it is bound to.
func ClientFor[H any](id message.AccountID) Client[H] {
	return Client[H]{Account: id}
}

// CreateAccount creates a new account bound to handler type H, executing as
// the context's account, and returns a typed client for it. H must already be
// registered with the harness.
func CreateAccount[H any, PH message.HandlerType[H]](app *TestApp, ctx *message.Context, initData []byte) (Client[H], error) {
	name := PH(new(H)).HandlerName()
	id, err := app.CreateAccountRaw(ctx, name, initData)
	if err != nil {
		return Client[H]{}, err
	}
	return Client[H]{Account: id}, nil
}

// ExecIn executes fn with a handler instance of the client's handler type and
// a context for the client's account. It is an escape hatch: it lets a test
// inspect and manipulate handler-local state directly instead of going
// through message dispatch.
//
// The handler instance passed to fn is constructed fresh from the default
// resource scope; it is NOT the instance registered under the account's
// handler name. State that a handler only holds in memory, mutated by earlier
// message dispatch, is therefore invisible here. Only use this with handlers
// whose relevant state is recoverable from fixed initialization.
//
// ExecIn panics if handler construction fails. That is acceptable here
// because this is test-only scaffolding, not production error handling.
func ExecIn[H any, PH message.HandlerType[H]](app *TestApp, client Client[H], fn func(h PH, ctx *message.Context)) {
	h := PH(new(H))
	if err := h.Setup(message.ResourceScope{}); err != nil {
		panic(fmt.Sprintf("testkit: constructing %s for direct access: %v", h.HandlerName(), err))
	}
	ctx := app.ClientContextFor(client.Account)
	fn(h, ctx)
}
