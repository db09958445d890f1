// Package framework contains the low-level test framework infrastructure that
// the conformance suite is built on, independent of what is being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a hierarchical test
// identifier and to accumulate success/failure results.
//
// 2. Tests can be selected or excluded with regex filters, and can capture
// debug log output that is only shown according to the reporter's settings.
//
// 3. The domain-specific suite provides the actual test logic and an API on
// top of the test context.
package framework
