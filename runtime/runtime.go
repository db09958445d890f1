// Package runtime implements the message router the test kit drives: an
// in-memory account table plus the dispatch step that resolves a message's
// target account to its handler and invokes it.
//
// This is the minimal stand-in for a real account runtime (multi-version
// store, gas accounting, persistence); it keeps only what dispatch needs.
package runtime

import (
	"errors"
	"fmt"

	"github.com/accountvm/testkit/framework"
	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/vm"
)

// Ordinary account IDs are allocated above RootAccount.
const firstAccountID = message.RootAccount + 1

// Runtime routes messages to handlers. It owns the binding from account IDs
// to handler names and consults a registry for the handler instances.
//
// A Runtime is not safe for concurrent use; see the vm.Registry note.
type Runtime struct {
	registry *vm.Registry
	accounts map[message.AccountID]string
	nextID   message.AccountID
	logger   framework.Logger
}

// New creates a runtime backed by the given registry. A nil logger disables
// debug output.
func New(registry *vm.Registry, logger framework.Logger) *Runtime {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Runtime{
		registry: registry,
		accounts: make(map[message.AccountID]string),
		nextID:   firstAccountID,
		logger:   logger,
	}
}

// CreateAccount allocates a fresh account ID, binds it to the named handler,
// and dispatches the OnCreate message to it with initData as the payload.
// Handlers that decline OnCreate with message.ErrNotHandled are accepted as
// accounts without initialization logic; any other error undoes the binding.
func (r *Runtime) CreateAccount(caller message.AccountID, handlerName string, initData []byte) (message.AccountID, error) {
	if _, err := r.registry.Resolve(handlerName); err != nil {
		return 0, err
	}

	id := r.nextID
	r.nextID++
	r.accounts[id] = handlerName
	r.logger.Printf("created account %d bound to handler %q", id, handlerName)

	_, err := r.Invoke(&message.Message{
		Target: id,
		Caller: caller,
		Name:   message.OnCreate,
		Data:   initData,
	})
	if err != nil && !errors.Is(err, message.ErrNotHandled) {
		delete(r.accounts, id)
		return 0, fmt.Errorf("initializing account %d with handler %q: %w", id, handlerName, err)
	}
	return id, nil
}

// HandlerNameFor returns the handler name an account is bound to.
func (r *Runtime) HandlerNameFor(id message.AccountID) (string, error) {
	name, ok := r.accounts[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", message.ErrAccountNotFound, id)
	}
	return name, nil
}

// Invoke resolves the message's target account to its handler and dispatches
// the message, propagating whatever the handler returns. The handler executes
// under a context whose account is the target, whose caller comes from the
// message, and whose nested calls route back through this runtime.
func (r *Runtime) Invoke(msg *message.Message) ([]byte, error) {
	handlerName, err := r.HandlerNameFor(msg.Target)
	if err != nil {
		return nil, err
	}
	handler, err := r.registry.Resolve(handlerName)
	if err != nil {
		return nil, err
	}

	r.logger.Printf("dispatching %q to account %d (handler %q) from caller %d",
		msg.Name, msg.Target, handlerName, msg.Caller)

	ctx := message.NewContext(msg.Target, msg.Caller, message.GasUnlimited, r)
	return handler.Handle(ctx, msg)
}
