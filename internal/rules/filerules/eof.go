package filerules

import (
	"bytes"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// NewlineEOF reports a last line without terminator.
func NewlineEOF() *engine.Rule {
	return engine.NewWholeFile("NewlineEOF", "file ends with a newline",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			if len(lines) == 0 {
				return
			}
			last := lines[len(lines)-1]
			n := len(last)
			if n == 0 || (last[n-1] != '\r' && last[n-1] != '\n') {
				rep.Report(loc.At(len(lines), n), "missing newline at end of file")
			}
		})
}

func newlineEOFTests() []engine.TestCase {
	r := NewlineEOF()
	return []engine.TestCase{
		engine.OK("File with a newline at the end", r, "hello.vhdl"),
		engine.Fail("File without a newline at EOF", r, "nonewlineateof.vhdl"),
	}
}

// BlankLine reports a file whose last line is blank.
func BlankLine() *engine.Rule {
	return engine.NewWholeFile("BlankLine", "no blank line at end of file",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			if len(lines) == 0 {
				return
			}
			if len(bytes.TrimRight(lines[len(lines)-1], "\r\n\t ")) == 0 {
				rep.Report(loc.At(len(lines), 1), "blank line at end of file")
			}
		})
}

func blankLineTests() []engine.TestCase {
	r := BlankLine()
	return []engine.TestCase{
		engine.OK("File with a newline at the end", r, "hello.vhdl"),
		engine.Fail("File with a blank line at EOF", r, "blanklineateof.vhdl"),
	}
}
