package runtimetests

import (
	"errors"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/accountvm/testkit/message"
)

const (
	msgIncrement = "counter.increment"
	msgGet       = "counter.get"
)

// counterHandler is the reference handler the suite dispatches against. Its
// payloads are JSON values: increment takes {"by": n}, get returns
// {"count": n}. Its only state is in memory, which is exactly what the direct
// state access tests need to observe.
type counterHandler struct {
	count int
}

func (*counterHandler) HandlerName() string { return "runtimetests.Counter" }

func (*counterHandler) Setup(message.ResourceScope) error { return nil }

func (h *counterHandler) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	switch msg.Name {
	case msgIncrement:
		h.count += ldvalue.Parse(msg.Data).GetByKey("by").IntValue()
		return nil, nil
	case msgGet:
		return []byte(ldvalue.ObjectBuild().Set("count", ldvalue.Int(h.count)).Build().JSONString()), nil
	default:
		return nil, message.ErrNotHandled
	}
}

func incrementBy(n int) []byte {
	return []byte(ldvalue.ObjectBuild().Set("by", ldvalue.Int(n)).Build().JSONString())
}

func countFrom(data []byte) int {
	return ldvalue.Parse(data).GetByKey("count").IntValue()
}

// brokenHandler fails to construct, for initialization-failure tests.
type brokenHandler struct{}

func (*brokenHandler) HandlerName() string { return "runtimetests.Broken" }

func (*brokenHandler) Setup(message.ResourceScope) error {
	return errors.New("invalid resource scope")
}

func (*brokenHandler) Handle(*message.Context, *message.Message) ([]byte, error) {
	return nil, message.ErrNotHandled
}

// decliningCandidate declines every message and counts how often it was asked.
type decliningCandidate struct {
	calls int
}

func (d *decliningCandidate) Handle(*message.Context, *message.Message) ([]byte, error) {
	d.calls++
	return nil, message.ErrNotHandled
}
