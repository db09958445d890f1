package harness

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/mock"
	"github.com/accountvm/testkit/vm"
)

// counterAccount is a handler whose state is only mutated through message
// dispatch, which makes it useful for observing which instance a test is
// actually talking to.
type counterAccount struct {
	calls int
}

func (*counterAccount) HandlerName() string { return "testkit_test.Counter" }

func (*counterAccount) Setup(message.ResourceScope) error { return nil }

func (c *counterAccount) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	switch msg.Name {
	case "counter.increment":
		c.calls++
		return nil, nil
	case "counter.get":
		return []byte(strconv.Itoa(c.calls)), nil
	default:
		return nil, message.ErrNotHandled
	}
}

// brokenAccount always fails to construct.
type brokenAccount struct{}

func (*brokenAccount) HandlerName() string { return "testkit_test.Broken" }

func (*brokenAccount) Setup(message.ResourceScope) error {
	return errors.New("invalid resource scope")
}

func (*brokenAccount) Handle(*message.Context, *message.Message) ([]byte, error) {
	return nil, message.ErrNotHandled
}

func TestRegisterHandlerAndDispatch(t *testing.T) {
	app := New()
	require.NoError(t, RegisterHandler[counterAccount](app))

	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	client, err := CreateAccount[counterAccount](app, ctx, nil)
	require.NoError(t, err)

	_, err = app.Invoke(&message.Message{Target: client.Account, Caller: ctx.Account(), Name: "counter.increment"})
	require.NoError(t, err)

	resp, err := app.Invoke(&message.Message{Target: client.Account, Caller: ctx.Account(), Name: "counter.get"})
	require.NoError(t, err)
	assert.Equal(t, "1", string(resp))
}

func TestRegisterHandlerDuplicateName(t *testing.T) {
	app := New()
	require.NoError(t, RegisterHandler[counterAccount](app))
	err := RegisterHandler[counterAccount](app)
	assert.ErrorIs(t, err, vm.ErrDuplicateHandler)
}

func TestRegisterHandlerInitializationFailure(t *testing.T) {
	app := New()
	err := RegisterHandler[brokenAccount](app)
	assert.ErrorIs(t, err, ErrInitialization)
}

func TestNewClientAccountsAreDistinct(t *testing.T) {
	app := New()
	seen := make(map[message.AccountID]bool)
	for i := 0; i < 20; i++ {
		id, err := app.NewClientAccount()
		require.NoError(t, err)
		assert.False(t, seen[id], "account ID %d was reused", id)
		seen[id] = true
	}
}

func TestClientContextForShape(t *testing.T) {
	app := New()
	id := message.AccountID(12345)
	ctx := app.ClientContextFor(id)
	assert.Equal(t, id, ctx.Account())
	assert.Equal(t, id, ctx.Caller())
	assert.Equal(t, message.GasUnlimited, ctx.GasLimit())
}

func TestNewClientContextIsSelfCalling(t *testing.T) {
	app := New()
	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	assert.Equal(t, ctx.Account(), ctx.Caller())
	assert.NotZero(t, ctx.Account())
}

func TestMockNamesAreStrictlyIncreasing(t *testing.T) {
	app := New()
	assert.Equal(t, "mock0", app.nextMockName())
	assert.Equal(t, "mock1", app.nextMockName())
	assert.Equal(t, "mock2", app.nextMockName())
}

func TestAddMockAccountsAreDistinct(t *testing.T) {
	app := New()
	ctx, err := app.NewClientContext()
	require.NoError(t, err)

	first, err := app.AddMock(ctx, mock.NewChain())
	require.NoError(t, err)
	second, err := app.AddMock(ctx, mock.NewChain())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	name1, err := app.HandlerNameFor(first)
	require.NoError(t, err)
	name2, err := app.HandlerNameFor(second)
	require.NoError(t, err)
	assert.Equal(t, "mock0", name1)
	assert.Equal(t, "mock1", name2)
}

// countingDecliner declines everything and counts its calls.
type countingDecliner struct {
	calls int
}

func (d *countingDecliner) Handle(*message.Context, *message.Message) ([]byte, error) {
	d.calls++
	return nil, message.ErrNotHandled
}

func TestMockChainFallthroughScenario(t *testing.T) {
	// Two candidates under one account: the first always declines, the second
	// answers. A single message must touch each candidate exactly once.
	app := New()
	require.NoError(t, RegisterHandler[counterAccount](app))

	first := &countingDecliner{}
	second, err := mock.New(mock.Config{
		Name:     "counter.increment",
		Response: func() []byte { return []byte("handled by mock") },
	})
	require.NoError(t, err)

	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	mockAccount, err := app.AddMock(ctx, mock.NewChain(first, second))
	require.NoError(t, err)

	// Account creation dispatched OnCreate through the chain; discard those
	// calls so the counts below reflect the single test message.
	first.calls = 0
	second.Calls = 0

	resp, err := app.Invoke(&message.Message{
		Target: mockAccount,
		Caller: ctx.Account(),
		Name:   "counter.increment",
	})
	require.NoError(t, err)
	assert.Equal(t, "handled by mock", string(resp))

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.Calls)
}

func TestExecInObservesFreshInstanceState(t *testing.T) {
	// ExecIn constructs a structurally fresh handler instance, so state
	// mutated through message dispatch on the registered instance is
	// invisible to it. This divergence is intentional harness behavior.
	app := New()
	require.NoError(t, RegisterHandler[counterAccount](app))

	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	client, err := CreateAccount[counterAccount](app, ctx, nil)
	require.NoError(t, err)

	_, err = app.Invoke(&message.Message{Target: client.Account, Caller: ctx.Account(), Name: "counter.increment"})
	require.NoError(t, err)
	resp, err := app.Invoke(&message.Message{Target: client.Account, Caller: ctx.Account(), Name: "counter.get"})
	require.NoError(t, err)
	require.Equal(t, "1", string(resp))

	ran := false
	ExecIn(app, client, func(h *counterAccount, execCtx *message.Context) {
		ran = true
		assert.Equal(t, 0, h.calls, "direct access sees initial state, not dispatched state")
		assert.Equal(t, client.Account, execCtx.Account())
		assert.Equal(t, client.Account, execCtx.Caller())
	})
	assert.True(t, ran)
}

func TestExecInPanicsOnConstructionFailure(t *testing.T) {
	app := New()
	client := ClientFor[brokenAccount](message.AccountID(2))
	assert.Panics(t, func() {
		ExecIn(app, client, func(h *brokenAccount, ctx *message.Context) {})
	})
}

func TestCreateAccountUnregisteredHandler(t *testing.T) {
	app := New()
	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	_, err = CreateAccount[counterAccount](app, ctx, nil)
	assert.ErrorIs(t, err, message.ErrHandlerNotFound)
}

func TestHarnessIsTheInvocationEntryPoint(t *testing.T) {
	// Contexts built by the harness route nested calls back through it.
	app := New()
	require.NoError(t, RegisterHandler[counterAccount](app))

	ctx, err := app.NewClientContext()
	require.NoError(t, err)
	client, err := CreateAccount[counterAccount](app, ctx, nil)
	require.NoError(t, err)

	resp, err := ctx.Invoke(&message.Message{Target: client.Account, Name: "counter.get"})
	require.NoError(t, err)
	assert.Equal(t, "0", string(resp))
}
