package runtimetests

import (
	"github.com/accountvm/testkit/framework"
)

// RunTestSuite runs the full conformance suite and returns its results.
func RunTestSuite(filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c)

		t.Run("handler registry", DoRegistryTests)
		t.Run("accounts and contexts", DoAccountTests)
		t.Run("mock chains", DoMockChainTests)
		t.Run("direct state access", DoDirectAccessTests)
	})
}
