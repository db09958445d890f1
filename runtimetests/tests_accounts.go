package runtimetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/mock"
)

// DoAccountTests covers client account minting and context construction.
func DoAccountTests(t *T) {
	t.Run("client accounts are pairwise distinct", func(t *T) {
		seen := make(map[message.AccountID]bool)
		for i := 0; i < 25; i++ {
			id, err := t.App().NewClientAccount()
			require.NoError(t, err)
			assert.False(t, seen[id], "account ID %d was returned twice", id)
			seen[id] = true
		}
	})

	t.Run("client context is self-calling with unlimited gas", func(t *T) {
		ctx := t.NewClientContext()
		assert.Equal(t, ctx.Account(), ctx.Caller())
		assert.Equal(t, message.GasUnlimited, ctx.GasLimit())
	})

	t.Run("context for a given account targets that account", func(t *T) {
		id, err := t.App().NewClientAccount()
		require.NoError(t, err)
		ctx := t.App().ClientContextFor(id)
		assert.Equal(t, id, ctx.Account())
		assert.Equal(t, id, ctx.Caller())
		assert.Equal(t, message.GasUnlimited, ctx.GasLimit())
	})

	t.Run("messages to unknown accounts fail with a structured error", func(t *T) {
		_, err := t.App().Invoke(&message.Message{
			Target: message.AccountID(9999),
			Caller: message.RootAccount,
			Name:   "anything",
		})
		assert.ErrorIs(t, err, message.ErrAccountNotFound)
	})

	t.Run("mock account names grow strictly in creation order", func(t *T) {
		ctx := t.NewClientContext()
		var names []string
		for i := 0; i < 3; i++ {
			id, err := t.App().AddMock(ctx, mock.NewChain())
			require.NoError(t, err)
			name, err := t.App().HandlerNameFor(id)
			require.NoError(t, err)
			names = append(names, name)
			t.Debug("mock account %d registered as %q", id, name)
		}
		assert.Equal(t, []string{"mock0", "mock1", "mock2"}, names)
	})
}
