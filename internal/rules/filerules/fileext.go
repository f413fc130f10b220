package filerules

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// FileExt reports file names whose extension is not one of exts.
func FileExt(exts ...string) *engine.Rule {
	return engine.NewWholeFile("FileExt", "file extension is one of "+strings.Join(exts, " "),
		func(rep engine.Reporter, loc engine.Location, lines [][]byte) {
			if !slices.Contains(exts, filepath.Ext(loc.File)) {
				rep.Report(loc, "bad filename extension")
			}
		})
}

func fileExtTests() []engine.TestCase {
	r := FileExt(".vhd", ".vhdl")
	return []engine.TestCase{
		engine.OK("Filename with correct extension", r, "hello.vhdl"),
		engine.Fail("Filename with incorrect extension", r, "badext.txt"),
	}
}
