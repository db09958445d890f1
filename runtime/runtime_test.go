package runtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/vm"
)

// echoHandler replies with the message name and records what it saw.
type echoHandler struct {
	lastCtx *message.Context
	lastMsg *message.Message
}

func (h *echoHandler) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	if msg.Name == message.OnCreate {
		return nil, message.ErrNotHandled
	}
	h.lastCtx = ctx
	h.lastMsg = msg
	return []byte(msg.Name), nil
}

func newTestRuntime(t *testing.T) (*Runtime, *echoHandler) {
	t.Helper()
	registry := vm.NewRegistry(nil)
	h := &echoHandler{}
	require.NoError(t, registry.Register("echo", h))
	return New(registry, nil), h
}

func TestCreateAccountUnknownHandler(t *testing.T) {
	rt, _ := newTestRuntime(t)
	_, err := rt.CreateAccount(message.RootAccount, "missing", nil)
	assert.ErrorIs(t, err, message.ErrHandlerNotFound)
}

func TestCreateAccountIDsAreDistinct(t *testing.T) {
	rt, _ := newTestRuntime(t)
	seen := make(map[message.AccountID]bool)
	var prev message.AccountID
	for i := 0; i < 10; i++ {
		id, err := rt.CreateAccount(message.RootAccount, "echo", nil)
		require.NoError(t, err)
		assert.False(t, seen[id], "account ID %d was reused", id)
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestInvokeUnknownAccount(t *testing.T) {
	rt, _ := newTestRuntime(t)
	_, err := rt.Invoke(&message.Message{Target: 999, Caller: message.RootAccount, Name: "ping"})
	assert.ErrorIs(t, err, message.ErrAccountNotFound)
}

func TestInvokeDispatchesWithExecutionContext(t *testing.T) {
	rt, h := newTestRuntime(t)
	id, err := rt.CreateAccount(message.RootAccount, "echo", nil)
	require.NoError(t, err)

	caller := message.AccountID(42)
	resp, err := rt.Invoke(&message.Message{Target: id, Caller: caller, Name: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "ping", string(resp))

	require.NotNil(t, h.lastCtx)
	assert.Equal(t, id, h.lastCtx.Account())
	assert.Equal(t, caller, h.lastCtx.Caller())
	assert.Equal(t, message.GasUnlimited, h.lastCtx.GasLimit())
}

func TestHandlerErrorPropagatesVerbatim(t *testing.T) {
	registry := vm.NewRegistry(nil)
	boom := errors.New("boom")
	require.NoError(t, registry.Register("failing", message.HandlerFunc(
		func(ctx *message.Context, msg *message.Message) ([]byte, error) {
			if msg.Name == message.OnCreate {
				return nil, message.ErrNotHandled
			}
			return nil, boom
		})))
	rt := New(registry, nil)

	id, err := rt.CreateAccount(message.RootAccount, "failing", nil)
	require.NoError(t, err)

	_, err = rt.Invoke(&message.Message{Target: id, Caller: message.RootAccount, Name: "anything"})
	assert.ErrorIs(t, err, boom)
}

func TestCreateAccountInitFailureUnbinds(t *testing.T) {
	registry := vm.NewRegistry(nil)
	require.NoError(t, registry.Register("picky", message.HandlerFunc(
		func(ctx *message.Context, msg *message.Message) ([]byte, error) {
			return nil, errors.New("bad init payload")
		})))
	rt := New(registry, nil)

	_, err := rt.CreateAccount(message.RootAccount, "picky", []byte("junk"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, message.ErrNotHandled)

	// The failed account must not be addressable.
	_, err = rt.Invoke(&message.Message{Target: firstAccountID, Caller: message.RootAccount, Name: "ping"})
	assert.ErrorIs(t, err, message.ErrAccountNotFound)
}

func TestNestedInvokeThroughContext(t *testing.T) {
	registry := vm.NewRegistry(nil)
	echo := &echoHandler{}
	require.NoError(t, registry.Register("echo", echo))

	// forwarder relays every non-init message to the account named in its payload.
	require.NoError(t, registry.Register("forwarder", message.HandlerFunc(
		func(ctx *message.Context, msg *message.Message) ([]byte, error) {
			if msg.Name == message.OnCreate {
				return nil, message.ErrNotHandled
			}
			target := message.AccountID(msg.Data[0])
			return ctx.Invoke(&message.Message{Target: target, Name: msg.Name})
		})))
	rt := New(registry, nil)

	echoID, err := rt.CreateAccount(message.RootAccount, "echo", nil)
	require.NoError(t, err)
	fwdID, err := rt.CreateAccount(message.RootAccount, "forwarder", nil)
	require.NoError(t, err)

	resp, err := rt.Invoke(&message.Message{
		Target: fwdID,
		Caller: message.RootAccount,
		Name:   "relay",
		Data:   []byte{byte(echoID)},
	})
	require.NoError(t, err)
	assert.Equal(t, "relay", string(resp))

	// The nested call's caller must be the forwarding account, not root.
	require.NotNil(t, echo.lastCtx)
	assert.Equal(t, fwdID, echo.lastCtx.Caller())
}
