package filerules

import "github.com/robert-at-pretension-io/vhdl-style/internal/engine"

// NoSpaceEOL reports lines ending with a space or a tab.
func NoSpaceEOL() *engine.Rule {
	return engine.NewWholeFile("NoSpaceEOL", "no trailing spaces",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			for i, line := range lines {
				line = trimEOL(line)
				if n := len(line); n > 0 && (line[n-1] == ' ' || line[n-1] == '\t') {
					rep.Report(loc.At(i+1, n), "trailing space")
				}
			}
		})
}

func noSpaceEOLTests() []engine.TestCase {
	r := NoSpaceEOL()
	return []engine.TestCase{
		engine.OK("File with no trailing spaces", r, "hello.vhdl"),
		engine.Fail("File with a trailing space", r, "trailingspace.vhdl"),
	}
}
