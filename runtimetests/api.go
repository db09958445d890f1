package runtimetests

import (
	"github.com/google/uuid"

	"github.com/accountvm/testkit/framework"
	"github.com/accountvm/testkit/harness"
	"github.com/accountvm/testkit/message"
)

// T represents a test or subtest in the conformance suite.
//
// It implements the same basic functionality as Go's testing.T, but outside
// the Go test runner, with debug log capture provided by the framework
// package. Every T owns a fresh harness instance, so tests never observe each
// other's registrations or accounts.
//
// To make assertions, pass the *T to the testify assert and require packages
// as if it were a *testing.T.
type T struct {
	context *framework.Context
	app     *harness.TestApp
	tag     string
}

func newTestScope(context *framework.Context) *T {
	t := &T{
		context: context,
		tag:     uuid.NewString(),
	}
	t.app = harness.NewWithLogger(context.DebugLogger())
	t.Debug("created harness, scope tag %s", t.tag)
	return t
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. The specified function receives a new T with its own
// harness instance.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c))
	})
}

// Debug logs debug output for the test; it is shown (or not) by the reporter
// once the test's outcome is known.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// App returns the harness under test.
func (t *T) App() *harness.TestApp {
	return t.app
}

// NewClientContext creates a fresh client account and context, failing the
// test immediately if the harness cannot provide one.
func (t *T) NewClientContext() *message.Context {
	ctx, err := t.app.NewClientContext()
	if err != nil {
		t.Errorf("creating client context: %s", err)
		t.FailNow()
	}
	return ctx
}
