package syntaxrules

import (
	"fmt"
	"slices"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

type clauseKind int

const (
	clauseLibrary clauseKind = iota
	clauseUse
)

// clause is a library or use clause of a context, reduced to the names the
// grouping checks need.
type clause struct {
	kind clauseKind
	node *vhdl.Node
	// name is the library of a library clause or the package of a use
	// clause.
	name    string
	library string
	line    int
}

// Context checks that context clauses are organized in groups: each group
// starts with a library clause after an empty line and lists the use
// clauses of that library. std and work need no library clause.
func Context() *engine.Rule {
	return engine.NewSyntaxUnit("Context", "context clauses organized by groups",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			for _, du := range file.Units {
				var clauses []clause
				for _, cl := range du.Context {
					switch cl.Kind {
					case vhdl.KLibraryClause:
						clauses = append(clauses, libraryClause(rep, cl))
					case vhdl.KUseClause:
						if c, ok := useClause(rep, cl); ok {
							clauses = append(clauses, c)
						}
					}
				}
				if len(clauses) > 0 {
					checkGroups(rep, clauses)
				}
			}
		})
}

func libraryClause(rep engine.Reporter, n *vhdl.Node) clause {
	loc := engine.NodeLocation(n)
	if n.InList {
		rep.Report(loc, "library must be alone")
	}
	switch n.Name() {
	case vhdl.LibStd:
		rep.Report(loc, "do not use library clause for 'std'")
	case "work":
		rep.Report(loc, "do not use library clause for 'work'")
	}
	return clause{kind: clauseLibrary, node: n, name: n.Name(), line: loc.Line}
}

func useClause(rep engine.Reporter, n *vhdl.Node) (clause, bool) {
	loc := engine.NodeLocation(n)
	if len(n.Names) > 1 {
		rep.Report(loc, "there must be an one package per use")
	}
	name := n.Names[0]
	if name.Kind != vhdl.KSelectedByAll {
		rep.Report(loc, "missing .all after package name")
		return clause{}, false
	}
	pkg := name.Prefix
	if pkg.Kind != vhdl.KSelectedName {
		rep.Report(loc, "use-d name must be a selected name")
		return clause{}, false
	}
	lib := pkg.Prefix
	if lib.Kind != vhdl.KSimpleName {
		rep.Report(loc, "use-d prefix name must be a simple name")
		return clause{}, false
	}
	return clause{kind: clauseUse, node: n, name: pkg.Name(), library: lib.Name(), line: loc.Line}, true
}

func checkGroups(rep engine.Reporter, clauses []clause) {
	lib := ""
	for i, cl := range clauses {
		loc := engine.NodeLocation(cl.node)
		last := i == len(clauses)-1
		if cl.kind == clauseLibrary {
			if i != 0 && clauses[i-1].line >= cl.line-1 {
				rep.Report(loc, "empty line required before library clause")
			}
			if last || clauses[i+1].kind == clauseLibrary {
				rep.Report(loc, "library clause not followed by use")
			}
			if cl.name == vhdl.LibIEEE && lib != "" {
				rep.Report(loc, "library for 'ieee' must be the first")
			}
			lib = cl.name
			continue
		}
		switch {
		case cl.library == vhdl.LibStd:
			if lib != "" && lib != vhdl.LibIEEE {
				rep.Report(loc, "use for std package must be in the ieee group")
			}
			if !last && clauses[i+1].line < cl.line+2 {
				rep.Report(loc, "use for std package must be followed by a blank line")
			}
		case lib == "":
			rep.Report(loc, "missing library clause for use clause")
		case cl.library == "work":
		case cl.library != lib:
			rep.Report(loc, "use clause not below the corresponding library clause")
		}
	}
}

func contextTests() []engine.TestCase {
	r := Context()
	return []engine.TestCase{
		engine.OK("File without ieee", r, "pkg1.vhdl"),
		engine.OK("Simple ieee group", r, "hello.vhdl"),
		engine.OK("Simple use of textio", r, "context1.vhdl"),
		engine.Fail("Incorrect library clause for work", r, "context2.vhdl"),
		engine.Fail("Incorrect library clause for std", r, "context3.vhdl"),
		engine.OK("More complex example", r, "context4.vhdl"),
		engine.Fail("Missing empty line before library clause", r, "context5.vhdl"),
		engine.Fail("Multiple libraries for the same clause", r, "context6.vhdl"),
	}
}

// IeeePackages restricts the ieee packages named by context use clauses to
// std_logic_1164, numeric_std and extra.
func IeeePackages(extra ...string) *engine.Rule {
	allowed := append([]string{"std_logic_1164", "numeric_std"}, extra...)
	return engine.NewSyntaxUnit("IeeePackages", "only standard ieee packages",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			for _, du := range file.Units {
				for _, cl := range du.Context {
					if cl.Kind != vhdl.KUseClause {
						continue
					}
					for _, name := range cl.Names {
						checkIeeeUse(rep, name, allowed)
					}
				}
			}
		})
}

func checkIeeeUse(rep engine.Reporter, name *vhdl.Node, allowed []string) {
	if name.Kind == vhdl.KSelectedByAll {
		name = name.Prefix
	}
	if name.Kind != vhdl.KSelectedName {
		rep.Report(engine.NodeLocation(name), "unhandled use clause form")
		return
	}
	lib := name.Prefix
	if lib.Kind != vhdl.KSimpleName {
		rep.Report(engine.NodeLocation(name), "unhandled use clause form")
		return
	}
	if lib.Name() != vhdl.LibIEEE || slices.Contains(allowed, name.Name()) {
		return
	}
	rep.Report(engine.NodeLocation(name), fmt.Sprintf("non-allowed use of IEEE package %s", name.Ident))
}

func ieeePackagesTests() []engine.TestCase {
	r := IeeePackages()
	return []engine.TestCase{
		engine.OK("File without ieee", r, "pkg1.vhdl"),
		engine.OK("Standard ieee package", r, "hello.vhdl"),
		engine.Fail("Non-standard ieee package", r, "ieeepkg1.vhdl"),
		engine.OK("Extra ieee package", IeeePackages("math_real"), "ieeepkg2.vhdl"),
	}
}
