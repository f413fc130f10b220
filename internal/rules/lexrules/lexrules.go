// Package lexrules checks the token stream: keyword case, comments and the
// spacing around delimiters.
package lexrules

import (
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// All returns every token rule with its default settings.
func All() []*engine.Rule {
	return []*engine.Rule{
		KeywordCase(IsLower), Comments(), Spaces(), SpaceAfter(), NoSpaceAfter(),
		ForbiddenId("l", "o"), OperatorSpace(),
	}
}

// Tests returns the self-tests of every token rule.
func Tests() []engine.TestCase {
	var out []engine.TestCase
	for _, fn := range []func() []engine.TestCase{
		keywordCaseTests, commentsTests, spacesTests, spaceAfterTests, noSpaceAfterTests,
		forbiddenIdTests, operatorSpaceTests,
	} {
		out = append(out, fn()...)
	}
	return out
}

func text(buf []byte, loc engine.TokenLocation) string {
	return string(buf[loc.Start:loc.End])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func spaceBefore(buf []byte, loc engine.TokenLocation) bool {
	return loc.Start > 0 && isSpace(buf[loc.Start-1])
}

// noSpaceBefore reports a delimiter glued to the previous character. The
// first byte of a file is never glued.
func noSpaceBefore(buf []byte, loc engine.TokenLocation) bool {
	return loc.Start > 0 && !isSpace(buf[loc.Start-1])
}

// noSpaceAfter reports a delimiter glued to the next character. The end of
// the file counts as a space.
func noSpaceAfter(buf []byte, loc engine.TokenLocation) bool {
	return loc.End < len(buf) && !isSpace(buf[loc.End])
}

func tokenIn(tok vhdl.TokenKind, set ...vhdl.TokenKind) bool {
	for _, k := range set {
		if tok == k {
			return true
		}
	}
	return false
}
