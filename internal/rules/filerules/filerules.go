// Package filerules checks files as raw lines of bytes.
package filerules

import (
	"bytes"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// All returns every file rule with its default settings.
func All() []*engine.Rule {
	return []*engine.Rule{
		NoTAB(), LineLength(80), NoSpaceEOL(), NewlineEOF(), Header(),
		CharSet(), Newline(), BlankLine(), FileExt(".vhd", ".vhdl"),
	}
}

// Tests returns the self-tests of every file rule.
func Tests() []engine.TestCase {
	var out []engine.TestCase
	for _, fn := range []func() []engine.TestCase{
		noTABTests, lineLengthTests, noSpaceEOLTests, newlineEOFTests, headerTests,
		charSetTests, newlineTests, blankLineTests, fileExtTests,
	} {
		out = append(out, fn()...)
	}
	return out
}

// trimEOL returns line without its terminator.
func trimEOL(line []byte) []byte {
	return bytes.TrimRight(line, "\r\n")
}
