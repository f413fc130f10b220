package filerules

import (
	"bytes"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// NoTAB reports horizontal tabs, vertical tabs and form feeds, once per line.
func NoTAB() *engine.Rule {
	return engine.NewWholeFile("NoTAB", "no HT, VT or FF character",
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			for i, line := range lines {
				col := bytes.IndexAny(line, "\t\v\f")
				if col < 0 {
					continue
				}
				msg := "character not allowed"
				if line[col] == '\t' {
					msg = "HT not allowed"
				}
				rep.Report(loc.At(i+1, col+1), msg)
			}
		})
}

func noTABTests() []engine.TestCase {
	r := NoTAB()
	return []engine.TestCase{
		engine.OK("File with no tab", r, "hello.vhdl"),
		engine.Fail("File with an horizontal tab (HT)", r, "ht.vhdl"),
		engine.Fail("File with an vertical tab (VT)", r, "vt.vhdl"),
		engine.Fail("File with a form-feed (FF)", r, "ff.vhdl"),
	}
}
