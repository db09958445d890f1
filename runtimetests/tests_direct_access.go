package runtimetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/harness"
	"github.com/accountvm/testkit/message"
)

// DoDirectAccessTests covers ExecIn, the escape hatch that hands a test a
// handler instance and a context for an account without going through message
// dispatch.
func DoDirectAccessTests(t *T) {
	t.Run("function runs with a context for the client account", func(t *T) {
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))
		ctx := t.NewClientContext()
		client, err := harness.CreateAccount[counterHandler](t.App(), ctx, nil)
		require.NoError(t, err)

		ran := false
		harness.ExecIn(t.App(), client, func(h *counterHandler, execCtx *message.Context) {
			ran = true
			assert.Equal(t, client.Account, execCtx.Account())
			assert.Equal(t, client.Account, execCtx.Caller())
			assert.Equal(t, message.GasUnlimited, execCtx.GasLimit())
		})
		require.True(t, ran)
	})

	t.Run("observes initial state, not dispatched state", func(t *T) {
		// The instance handed to the function is constructed fresh, so counts
		// accumulated through dispatch on the registered instance are not
		// visible. Handlers whose relevant state is not recoverable from
		// initialization cannot be inspected this way.
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))
		ctx := t.NewClientContext()
		client, err := harness.CreateAccount[counterHandler](t.App(), ctx, nil)
		require.NoError(t, err)

		_, err = t.App().Invoke(&message.Message{
			Target: client.Account, Caller: ctx.Account(), Name: msgIncrement, Data: incrementBy(4),
		})
		require.NoError(t, err)

		resp, err := t.App().Invoke(&message.Message{
			Target: client.Account, Caller: ctx.Account(), Name: msgGet,
		})
		require.NoError(t, err)
		require.Equal(t, 4, countFrom(resp))

		harness.ExecIn(t.App(), client, func(h *counterHandler, _ *message.Context) {
			assert.Equal(t, 0, h.count)
		})
	})

	t.Run("nested dispatch works from inside the function", func(t *T) {
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))
		ctx := t.NewClientContext()
		client, err := harness.CreateAccount[counterHandler](t.App(), ctx, nil)
		require.NoError(t, err)

		harness.ExecIn(t.App(), client, func(_ *counterHandler, execCtx *message.Context) {
			resp, err := execCtx.Invoke(&message.Message{Target: client.Account, Name: msgGet})
			require.NoError(t, err)
			assert.Equal(t, 0, countFrom(resp))
		})
	})

	t.Run("construction failure panics", func(t *T) {
		client := harness.ClientFor[brokenHandler](message.AccountID(2))
		assert.Panics(t, func() {
			harness.ExecIn(t.App(), client, func(*brokenHandler, *message.Context) {})
		})
	})
}
