package lexrules

import (
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Comments reports line comments glued to the code before them or to their
// own text.
func Comments() *engine.Rule {
	return engine.NewToken("Comments", "comments are separated by a space",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if tok != vhdl.TokComment || buf[loc.Start] != '-' {
				return
			}
			if noSpaceBefore(buf, loc) {
				rep.Report(loc.Location, "missing space before comment")
			}
			p := loc.Start + 2
			if p >= len(buf) {
				return
			}
			switch buf[p] {
			case ' ', '-', '=', '\r', '\n':
				return
			}
			rep.Report(loc.Location, "space required after comment")
		})
}

func commentsTests() []engine.TestCase {
	r := Comments()
	return []engine.TestCase{
		engine.OK("File with correct comments", r, "hello.vhdl"),
		engine.Fail("Comment not followed by a space", r, "comment1.vhdl"),
		engine.OK("File with a line comment", r, "comment2.vhdl"),
	}
}
