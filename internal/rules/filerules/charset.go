package filerules

import "github.com/robert-at-pretension-io/vhdl-style/internal/engine"

// CharSet reports the first byte above 127 of each line.
func CharSet() *engine.Rule {
	return engine.NewWholeFile("CharSet", "only 7-bit ASCII characters",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			for i, line := range lines {
				for col, c := range line {
					if c > 127 {
						rep.Report(loc.At(i+1, col+1), "Non 7-bit ASCII character")
						break
					}
				}
			}
		})
}

func charSetTests() []engine.TestCase {
	r := CharSet()
	return []engine.TestCase{
		engine.OK("File with only ASCII", r, "hello.vhdl"),
		engine.Fail("File with an invalid character", r, "charset1.vhdl"),
	}
}
