package engine

import (
	"fmt"
	"io"
)

// Sink counts diagnostics and prints them unless quiet.
type Sink struct {
	w     io.Writer
	quiet bool
	count int
}

// NewSink returns a sink writing to w.
func NewSink(w io.Writer, quiet bool) *Sink {
	return &Sink{w: w, quiet: quiet}
}

// Error records one diagnostic. msg is written as is.
func (s *Sink) Error(msg string) {
	s.count++
	if !s.quiet {
		_, _ = io.WriteString(s.w, msg)
	}
}

// Count returns the number of diagnostics recorded so far.
func (s *Sink) Count() int { return s.count }

// Quiet reports whether output is suppressed.
func (s *Sink) Quiet() bool { return s.quiet }

// Reporter emits diagnostics on behalf of one rule. It is handed to every
// check call and must not be kept past it.
type Reporter struct {
	rule string
	sink *Sink
}

// NewReporter binds a rule name to a sink.
func NewReporter(rule string, sink *Sink) Reporter {
	return Reporter{rule: rule, sink: sink}
}

// Rule returns the name diagnostics are reported under.
func (r Reporter) Rule() string { return r.rule }

// Report writes "<file>:<line>:<col>: [<rule>] <msg>".
func (r Reporter) Report(loc Location, msg string) {
	r.sink.Error(fmt.Sprintf("%s:%d:%d: [%s] %s\n", loc.File, loc.Line, loc.Col, r.rule, msg))
}

// Reportf is Report with a format string.
func (r Reporter) Reportf(loc Location, format string, args ...any) {
	r.Report(loc, fmt.Sprintf(format, args...))
}
