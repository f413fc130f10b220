package semrules

import (
	"fmt"
	"slices"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Dependences requires every package a unit depends on to be named by a
// use clause of its context. std.standard and the package completed by a
// package body are exempt.
func Dependences() *engine.Rule {
	return engine.NewSemanticUnit("Dependences", "packages are imported by use clauses",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			pkgs := usedPackages(du)
			std := in.Library.Standard()
			lu := du.LibUnit
			for _, dep := range du.Unit.Deps {
				p := dep.LibUnit
				if p == nil || p.Kind != vhdl.KPackage || p == std || slices.Contains(pkgs, p) {
					continue
				}
				if lu.Kind == vhdl.KPackageBody && libraryOf(p) == du.Unit.Library && p.Name() == lu.Name() {
					continue
				}
				rep.Report(engine.NodeLocation(lu),
					fmt.Sprintf("unit depends on '%s' but not by a use clause", p.Ident))
			}
		})
}

func dependencesTests() []engine.TestCase {
	r := Dependences()
	return []engine.TestCase{
		engine.OK("Correct file", r, "hello.vhdl"),
		engine.OK("Use through entity", r, "dependences1.vhdl"),
		engine.OK("Normal use", r, "dependences2.vhdl"),
		engine.Fail("Expanded name without use clause", r, "dependences3.vhdl"),
		engine.Fail("Expanded name of another package", r, "dependences4.vhdl"),
		engine.OK("Package body", r, "pkg1.vhdl"),
	}
}
