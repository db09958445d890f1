package runtimetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/harness"
	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/vm"
)

// DoRegistryTests covers handler registration and name resolution.
func DoRegistryTests(t *T) {
	t.Run("registered handler receives dispatch", func(t *T) {
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))

		ctx := t.NewClientContext()
		client, err := harness.CreateAccount[counterHandler](t.App(), ctx, nil)
		require.NoError(t, err)

		_, err = t.App().Invoke(&message.Message{
			Target: client.Account,
			Caller: ctx.Account(),
			Name:   msgIncrement,
			Data:   incrementBy(3),
		})
		require.NoError(t, err)

		resp, err := t.App().Invoke(&message.Message{
			Target: client.Account,
			Caller: ctx.Account(),
			Name:   msgGet,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, countFrom(resp))
	})

	t.Run("duplicate names are rejected, not replaced", func(t *T) {
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))
		err := harness.RegisterHandler[counterHandler](t.App())
		assert.ErrorIs(t, err, vm.ErrDuplicateHandler)
	})

	t.Run("initialization failure is surfaced", func(t *T) {
		err := harness.RegisterHandler[brokenHandler](t.App())
		require.Error(t, err)
		assert.ErrorIs(t, err, harness.ErrInitialization)
	})

	t.Run("accounts cannot bind to unregistered handlers", func(t *T) {
		ctx := t.NewClientContext()
		_, err := harness.CreateAccount[counterHandler](t.App(), ctx, nil)
		assert.ErrorIs(t, err, message.ErrHandlerNotFound)
	})
}
