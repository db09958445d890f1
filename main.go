// Command testkit runs the conformance suite for the account runtime test
// harness: handler registration, account and context creation, mock chain
// dispatch, and direct handler state access.
package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/accountvm/testkit/framework"
	"github.com/accountvm/testkit/runtimetests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	if params.filters.MustMatch.IsDefined() || params.filters.MustNotMatch.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if params.filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", params.filters.MustMatch)
		}
		if params.filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", params.filters.MustNotMatch)
		}
		fmt.Println()
	}

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := runtimetests.RunTestSuite(params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		printRerunHint(results)
		os.Exit(1)
	}
}

// printRerunHint prints a command line that reruns only the failed tests.
func printRerunHint(results framework.Results) {
	cmd := commandBuilder{os.Args[0]}
	for _, f := range results.Failures {
		cmd.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	fmt.Println()
	fmt.Printf("To rerun just the failed tests: %s\n", cmd)
}
