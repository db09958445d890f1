package mock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountvm/testkit/message"
)

// recordingCandidate declines or answers every message and counts its calls.
type recordingCandidate struct {
	calls  int
	result []byte
	err    error
}

func (r *recordingCandidate) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	r.calls++
	return r.result, r.err
}

func declining() *recordingCandidate {
	return &recordingCandidate{err: message.ErrNotHandled}
}

func TestFirstClaimingCandidateWins(t *testing.T) {
	// Candidates before the claiming one are each invoked exactly once, in
	// order; candidates after it are never reached.
	c1 := declining()
	c2 := declining()
	c3 := &recordingCandidate{result: []byte("from c3")}
	c4 := &recordingCandidate{result: []byte("from c4")}
	chain := NewChain(c1, c2, c3, c4)

	resp, err := chain.Handle(nil, &message.Message{Name: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "from c3", string(resp))

	assert.Equal(t, 1, c1.calls)
	assert.Equal(t, 1, c2.calls)
	assert.Equal(t, 1, c3.calls)
	assert.Equal(t, 0, c4.calls)
}

func TestExhaustedChainDeclines(t *testing.T) {
	candidates := []*recordingCandidate{declining(), declining(), declining()}
	chain := NewChain()
	for _, c := range candidates {
		chain.Add(c)
	}

	_, err := chain.Handle(nil, &message.Message{Name: "unclaimed"})
	assert.ErrorIs(t, err, message.ErrNotHandled)
	for i, c := range candidates {
		assert.Equal(t, 1, c.calls, "candidate %d", i)
	}
}

func TestCandidateFailureStopsTheChain(t *testing.T) {
	// Any non-decline error is terminal; later candidates are not consulted.
	boom := errors.New("boom")
	c1 := declining()
	c2 := &recordingCandidate{err: boom}
	c3 := &recordingCandidate{result: []byte("unreached")}
	chain := NewChain(c1, c2, c3)

	_, err := chain.Handle(nil, &message.Message{Name: "anything"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c3.calls)
}

func TestEmptyChainDeclines(t *testing.T) {
	chain := NewChain()
	_, err := chain.Handle(nil, &message.Message{Name: "anything"})
	assert.ErrorIs(t, err, message.ErrNotHandled)
	assert.Equal(t, 0, chain.Len())
}

func TestWrappedDeclineFallsThrough(t *testing.T) {
	// Candidates may wrap the sentinel; the chain matches with errors.Is.
	c1, err := New(Config{Name: "only_mine"})
	require.NoError(t, err)
	c2 := &recordingCandidate{result: []byte("claimed")}
	chain := NewChain(c1, c2)

	resp, err := chain.Handle(nil, &message.Message{Name: "not_yours"})
	require.NoError(t, err)
	assert.Equal(t, "claimed", string(resp))
	assert.Equal(t, 1, c1.Calls)
}
