package syntaxrules

import (
	"path/filepath"
	"slices"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// unitLetter codes a library unit for OneModule patterns: E entity,
// A architecture, C configuration, P package and B package body.
func unitLetter(lu *vhdl.Node) byte {
	switch lu.Kind {
	case vhdl.KEntity:
		return 'E'
	case vhdl.KArchitecture:
		return 'A'
	case vhdl.KConfiguration:
		return 'C'
	case vhdl.KPackage:
		return 'P'
	case vhdl.KPackageBody:
		return 'B'
	}
	return '?'
}

// OneModule checks the sequence of units of a file. Without patterns the
// accepted sequences are E, EA, EAC, A, P, PB and C.
func OneModule(patterns ...string) *engine.Rule {
	if len(patterns) == 0 {
		patterns = []string{"E", "EA", "EAC", "A", "P", "PB", "C"}
	}
	return engine.NewSyntaxUnit("OneModule", "one module per file",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			var units []*vhdl.Node
			seq := make([]byte, 0, len(file.Units))
			for _, du := range file.Units {
				if du.LibUnit == nil {
					continue
				}
				units = append(units, du.LibUnit)
				seq = append(seq, unitLetter(du.LibUnit))
			}
			if !slices.Contains(patterns, string(seq)) {
				rep.Report(engine.FileLocation(in.Name), "sequence of units not allowed")
			}
			if len(units) <= 1 {
				return
			}
			switch units[0].Kind {
			case vhdl.KEntity:
				checkEntityUnits(rep, units)
			case vhdl.KPackage:
				checkPackageUnits(rep, units)
			default:
				rep.Report(engine.NodeLocation(units[0]), "first unit must be either an entity or a package")
			}
		})
}

func checkEntityUnits(rep engine.Reporter, units []*vhdl.Node) {
	ent, arch := units[0], units[1]
	if arch.Kind != vhdl.KArchitecture {
		rep.Report(engine.NodeLocation(arch), "second unit of a file must be an architecture")
		return
	}
	if arch.EntityName.Name() != ent.Name() {
		rep.Report(engine.NodeLocation(arch.EntityName), "unrelated architecture after entity")
		return
	}
	if len(units) > 2 && units[2].Kind != vhdl.KConfiguration {
		rep.Report(engine.NodeLocation(units[2]), "third unit must be a configuration")
		return
	}
	if len(units) > 3 {
		rep.Report(engine.NodeLocation(units[3]), "too many units in a file")
	}
}

func checkPackageUnits(rep engine.Reporter, units []*vhdl.Node) {
	pkg, body := units[0], units[1]
	if body.Kind != vhdl.KPackageBody {
		rep.Report(engine.NodeLocation(body), "second unit of a file must be a package body")
		return
	}
	if body.Name() != pkg.Name() {
		rep.Report(engine.NodeLocation(body), "unrelated package body after package declaration")
		return
	}
	if len(units) > 2 {
		rep.Report(engine.NodeLocation(units[2]), "too many units in a file")
	}
}

func oneModuleTests() []engine.TestCase {
	r := OneModule()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.OK("File with a package and its body", r, "pkg1.vhdl"),
		engine.Fail("Two entities in a file", r, "twoentities.vhdl"),
		engine.Fail("Unrelated architecture", r, "unrelatedarch.vhdl"),
	}
}

// FileName checks that a file is named after its first unit.
func FileName(ext string) *engine.Rule {
	return engine.NewSyntaxUnit("FileName", "file named after its first unit",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			for _, du := range file.Units {
				if du.LibUnit == nil {
					continue
				}
				want := du.LibUnit.Ident + ext
				if filepath.Base(in.Name) != want {
					rep.Report(engine.NodeLocation(du.LibUnit), "filename must be "+want)
				}
				return
			}
		})
}

func fileNameTests() []engine.TestCase {
	r := FileName(".vhdl")
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("File with incorrect name", r, "badname.vhdl"),
	}
}

// EntityItems forbids declarations and statements in entities, except
// assertions.
func EntityItems() *engine.Rule {
	return engine.NewSyntaxNode("EntityItems", "no declaration nor statement in entities",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KEntity {
				return
			}
			if len(n.Decls) > 0 {
				rep.Report(engine.NodeLocation(n.Decls[0]), "declaration not allowed in entity")
			}
			for _, s := range n.Stmts {
				if s.Kind != vhdl.KConcurrentAssert {
					rep.Report(engine.NodeLocation(s), "concurrent statement not allowed in entity")
				}
			}
		})
}

func entityItemsTests() []engine.TestCase {
	r := EntityItems()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.OK("Entity with an assertion", r, "entityassert.vhdl"),
		engine.Fail("Entity with a declaration", r, "entitydecl.vhdl"),
		engine.Fail("Entity with a process", r, "entityprocess.vhdl"),
	}
}

// ContextUse requires use clauses to be part of the context clause.
func ContextUse() *engine.Rule {
	return engine.NewSyntaxNode("ContextUse", "no use clause within a unit",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KUseClause || n.Parent == nil || n.Parent.Kind == vhdl.KDesignUnit {
				return
			}
			rep.Report(engine.NodeLocation(n), "use clause must be global (placed before the unit)")
		})
}

func contextUseTests() []engine.TestCase {
	r := ContextUse()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Local use clause", r, "localuse.vhdl"),
	}
}
