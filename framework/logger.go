package framework

import (
	"fmt"
	"io"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the basic output interface used for debug logging throughout the
// test kit.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one timestamped line of captured debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output accumulated during one test.
type CapturedOutput []CapturedMessage

// CapturingLogger accumulates output in memory so it can be shown, or not,
// once the test's outcome is known.
type CapturingLogger struct {
	output CapturedOutput
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

// Output returns a copy of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes the captured output to dest, one prefixed line per message.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
