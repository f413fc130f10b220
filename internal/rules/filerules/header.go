package filerules

import (
	"bytes"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// Header reports files whose first line is not a comment.
func Header() *engine.Rule {
	return engine.NewWholeFile("Header", "file starts with a comment header",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			if len(lines) == 0 || !bytes.HasPrefix(lines[0], []byte("--")) {
				rep.Report(loc.At(1, 1), "file should have an header")
			}
		})
}

func headerTests() []engine.TestCase {
	r := Header()
	return []engine.TestCase{
		engine.OK("File with an header", r, "hello.vhdl"),
		engine.Fail("File without an header", r, "noheader.vhdl"),
		engine.Fail("File without an header at line 1", r, "noheader2.vhdl"),
	}
}
