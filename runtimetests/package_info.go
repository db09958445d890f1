// Package runtimetests contains the conformance test suite for the test kit's
// dispatch and composition model: handler registration, account and context
// creation, mock chain fallthrough, and direct handler state access.
//
// The suite runs on the framework package rather than on Go's test runner, so
// the conformance binary can select tests with regex filters and report
// results on the console. The same properties are also covered by ordinary
// go test files in the packages that own them.
package runtimetests
