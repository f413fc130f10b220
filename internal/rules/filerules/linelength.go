package filerules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// LineLength reports lines longer than max bytes, terminators excluded.
func LineLength(max int) *engine.Rule {
	return engine.NewWholeFile("LineLen", fmt.Sprintf("lines are at most %d characters", max),
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			for i, line := range lines {
				n := len(line)
				for n > 1 && (line[n-1] == '\r' || line[n-1] == '\n') {
					n--
				}
				if n > max {
					rep.Report(loc.At(i+1, n), "line is too long")
				}
			}
		})
}

func lineLengthTests() []engine.TestCase {
	r := LineLength(80)
	return []engine.TestCase{
		engine.OK("File with normal lines", r, "hello.vhdl"),
		engine.OK("File with 2 lines of exactly 80 characters", r, "line80.vhdl"),
		engine.Fail("File with a long line", r, "longline.vhdl"),
	}
}
