package lexrules

import (
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

var spacedOperators = []vhdl.TokenKind{
	vhdl.TokAssign, vhdl.TokEqual, vhdl.TokNotEqual,
	vhdl.TokLess, vhdl.TokLessEqual, vhdl.TokGreater, vhdl.TokGreaterEqual,
	vhdl.TokPlus, vhdl.TokAmpersand, vhdl.TokSlash,
}

// OperatorSpace reports operators without a space on each side, or followed
// by more than one space.
func OperatorSpace() *engine.Rule {
	return engine.NewToken("OperatorSpace", "one space around operators",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if !tokenIn(tok, spacedOperators...) {
				return
			}
			s := text(buf, loc)
			if noSpaceBefore(buf, loc) {
				rep.Reportf(loc.Location, "missing space before operator '%s'", s)
			}
			switch e := loc.End; {
			case noSpaceAfter(buf, loc):
				rep.Reportf(loc.Location, "missing space after operator '%s'", s)
			case e+1 < len(buf) && isBlank(buf[e]) && isBlank(buf[e+1]):
				// One byte of lookahead past the first space.
				rep.Reportf(loc.Location, "multiple spaces after operator '%s'", s)
			}
		})
}

func operatorSpaceTests() []engine.TestCase {
	r := OperatorSpace()
	return []engine.TestCase{
		engine.OK("File with spaces around operator", r, "hello.vhdl"),
		engine.Fail("No space after '+'", r, "operatorspace1.vhdl"),
		engine.Fail("No space before '/'", r, "operatorspace2.vhdl"),
		engine.Fail("Multiple spaces after '>'", r, "operatorspace3.vhdl"),
	}
}
