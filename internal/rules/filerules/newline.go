package filerules

import "github.com/robert-at-pretension-io/vhdl-style/internal/engine"

// Newline reports lines not terminated by a single LF.
func Newline() *engine.Rule {
	return engine.NewWholeFile("Newline", "lines end with LF",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			for i, line := range lines {
				n := len(line)
				if n == 0 || line[n-1] != '\n' || (n > 1 && (line[n-2] == '\r' || line[n-2] == '\n')) {
					rep.Report(loc.At(i+1, n), "incorrect newline")
				}
			}
		})
}

func newlineTests() []engine.TestCase {
	r := Newline()
	return []engine.TestCase{
		engine.OK("File with unix newline", r, "hello.vhdl"),
		engine.Fail("File with dos newline", r, "dosfile.vhdl"),
		engine.Fail("File with macos newline", r, "macfile.vhdl"),
	}
}
