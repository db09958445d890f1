package message

import "errors"

// ErrNoHost is returned by Context.Invoke when the context was built without
// a host invoker.
var ErrNoHost = errors.New("context has no host invoker")

// Context is the caller/target/budget triple one message dispatch executes
// under. Contexts are created per call, carry no identity beyond their
// fields, and are not persisted.
type Context struct {
	account  AccountID
	caller   AccountID
	gasLimit uint64
	host     Invoker
}

// NewContext builds a context executing as account, called by caller, with
// the given gas budget, routing nested calls through host.
func NewContext(account, caller AccountID, gasLimit uint64, host Invoker) *Context {
	return &Context{
		account:  account,
		caller:   caller,
		gasLimit: gasLimit,
		host:     host,
	}
}

// Account is the account the current code is executing as.
func (c *Context) Account() AccountID { return c.account }

// Caller is the account that sent the message being processed.
func (c *Context) Caller() AccountID { return c.caller }

// GasLimit is the resource budget for this call. GasUnlimited means no limit.
func (c *Context) GasLimit() uint64 { return c.gasLimit }

// Invoke sends a message through the context's host, stamping the executing
// account as the caller. The target and name on msg are taken as-is.
func (c *Context) Invoke(msg *Message) ([]byte, error) {
	if c.host == nil {
		return nil, ErrNoHost
	}
	stamped := *msg
	stamped.Caller = c.account
	return c.host.Invoke(&stamped)
}
