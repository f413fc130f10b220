package lexrules

import (
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

var spacedDelimiters = []vhdl.TokenKind{
	vhdl.TokAssign, vhdl.TokColon, vhdl.TokEqual, vhdl.TokNotEqual,
	vhdl.TokLess, vhdl.TokLessEqual, vhdl.TokGreater, vhdl.TokGreaterEqual,
	vhdl.TokArrow,
}

// Spaces reports delimiters that need a space on both sides and separators
// preceded by a space.
func Spaces() *engine.Rule {
	return engine.NewToken("Spaces", "spaces around delimiters",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			switch {
			case tokenIn(tok, spacedDelimiters...):
				s := text(buf, loc)
				if !spaceBefore(buf, loc) {
					rep.Reportf(loc.Location, "missing space before '%s'", s)
				}
				if noSpaceAfter(buf, loc) || loc.End >= len(buf) {
					rep.Reportf(loc.Location, "missing space after '%s'", s)
				}
			case tok == vhdl.TokComma, tok == vhdl.TokSemicolon:
				if spaceBefore(buf, loc) {
					rep.Reportf(loc.Location, "extra space before '%s'", text(buf, loc))
				}
			}
		})
}

func spacesTests() []engine.TestCase {
	r := Spaces()
	return []engine.TestCase{
		engine.OK("File with no issues", r, "hello.vhdl"),
		engine.Fail("No space after ':'", r, "nospace1.vhdl"),
		engine.Fail("No space before ':='", r, "nospace2.vhdl"),
		engine.Fail("Space before ';'", r, "nospace3.vhdl"),
	}
}

// SpaceAfter reports commas and colons not followed by a space.
func SpaceAfter() *engine.Rule {
	return engine.NewToken("SpaceAfter", "space after ',' and ':'",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if tok != vhdl.TokComma && tok != vhdl.TokColon {
				return
			}
			if noSpaceAfter(buf, loc) {
				rep.Reportf(loc.Location, "missing space after '%s'", text(buf, loc))
			}
		})
}

func spaceAfterTests() []engine.TestCase {
	r := SpaceAfter()
	return []engine.TestCase{
		engine.OK("File with spaces after delimiters", r, "hello.vhdl"),
		engine.Fail("No space after ':'", r, "nospace1.vhdl"),
		engine.Fail("No space after ','", r, "nospace4.vhdl"),
	}
}

// NoSpaceAfter reports a tick or a dot followed by a space.
func NoSpaceAfter() *engine.Rule {
	return engine.NewToken("NoSpaceAfter", "no space after ''' and '.'",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if tok != vhdl.TokTick && tok != vhdl.TokDot {
				return
			}
			if loc.End < len(buf) && isBlank(buf[loc.End]) {
				rep.Reportf(loc.Location, "space not allowed space after '%s'", text(buf, loc))
			}
		})
}

func noSpaceAfterTests() []engine.TestCase {
	r := NoSpaceAfter()
	return []engine.TestCase{
		engine.OK("File without space after '.'", r, "nospace5.vhdl"),
		engine.Fail("Space after '", r, "nospace6.vhdl"),
	}
}
