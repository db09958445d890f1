package runtimetests

import (
	"errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/harness"
	"github.com/accountvm/testkit/message"
	"github.com/accountvm/testkit/mock"
)

// DoMockChainTests covers the fallthrough dispatch semantics of mock chains
// installed under harness accounts.
func DoMockChainTests(t *T) {
	t.Run("first claiming candidate wins", func(t *T) {
		before := []*decliningCandidate{{}, {}}
		claimer, err := mock.New(mock.Config{
			Name:     "op",
			Response: func() []byte { return []byte("claimed") },
		})
		require.NoError(t, err)
		after := &decliningCandidate{}

		ctx := t.NewClientContext()
		account, err := t.App().AddMock(ctx, mock.NewChain(before[0], before[1], claimer, after))
		require.NoError(t, err)
		before[0].calls, before[1].calls, claimer.Calls, after.calls = 0, 0, 0, 0

		resp, err := t.App().Invoke(&message.Message{Target: account, Caller: ctx.Account(), Name: "op"})
		require.NoError(t, err)
		assert.Equal(t, "claimed", string(resp))

		assert.Equal(t, 1, before[0].calls)
		assert.Equal(t, 1, before[1].calls)
		assert.Equal(t, 1, claimer.Calls)
		assert.Equal(t, 0, after.calls, "candidates after the claiming one must not run")
	})

	t.Run("exhausted chain declines", func(t *T) {
		candidates := []*decliningCandidate{{}, {}, {}}
		ctx := t.NewClientContext()
		account, err := t.App().AddMock(ctx, mock.NewChain(candidates[0], candidates[1], candidates[2]))
		require.NoError(t, err)
		for _, c := range candidates {
			c.calls = 0
		}

		_, err = t.App().Invoke(&message.Message{Target: account, Caller: ctx.Account(), Name: "unclaimed"})
		assert.ErrorIs(t, err, message.ErrNotHandled)
		for i, c := range candidates {
			assert.Equal(t, 1, c.calls, "candidate %d must be consulted exactly once", i)
		}
	})

	t.Run("candidate failure is terminal", func(t *T) {
		boom := errors.New("boom")
		failing, err := mock.New(mock.Config{Name: "op", Fail: true, Error: boom})
		require.NoError(t, err)
		unreached := &decliningCandidate{}

		ctx := t.NewClientContext()
		account, err := t.App().AddMock(ctx, mock.NewChain(&decliningCandidate{}, failing, unreached))
		require.NoError(t, err)
		unreached.calls = 0

		_, err = t.App().Invoke(&message.Message{Target: account, Caller: ctx.Account(), Name: "op"})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, unreached.calls)
	})

	t.Run("counter scenario: decline then succeed touches both once", func(t *T) {
		require.NoError(t, harness.RegisterHandler[counterHandler](t.App()))

		first := &decliningCandidate{}
		second, err := mock.New(mock.Config{
			Name:     msgIncrement,
			Response: func() []byte { return nil },
		})
		require.NoError(t, err)

		ctx := t.NewClientContext()
		account, err := t.App().AddMock(ctx, mock.NewChain(first, second))
		require.NoError(t, err)
		first.calls, second.Calls = 0, 0

		_, err = t.App().Invoke(&message.Message{
			Target: account,
			Caller: ctx.Account(),
			Name:   msgIncrement,
			Data:   incrementBy(1),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 1, second.Calls)
	})

	t.Run("payload validation reaches the configured mock", func(t *T) {
		badPayload := errors.New("unexpected payload")
		validated, err := mock.New(mock.Config{
			Name: msgIncrement,
			PayloadValidator: func(data []byte) error {
				if string(data) != string(incrementBy(2)) {
					return badPayload
				}
				return nil
			},
		})
		require.NoError(t, err)

		ctx := t.NewClientContext()
		account, err := t.App().AddMock(ctx, mock.NewChain(validated))
		require.NoError(t, err)

		_, err = t.App().Invoke(&message.Message{
			Target: account, Caller: ctx.Account(), Name: msgIncrement, Data: incrementBy(2),
		})
		assert.NoError(t, err)

		_, err = t.App().Invoke(&message.Message{
			Target: account, Caller: ctx.Account(), Name: msgIncrement, Data: incrementBy(5),
		})
		assert.ErrorIs(t, err, badPayload)
	})
}
