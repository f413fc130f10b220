package semrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Unused reports declarations of architectures, together with their
// entity, and of package bodies that are never referenced. Loop iterators
// with a one-character name are not reported.
func Unused() *engine.Rule {
	var used map[*vhdl.Node]bool
	mark := func(root *vhdl.Node) {
		vhdl.Walk(root, func(n *vhdl.Node) bool {
			if n.Ref != nil {
				used[n.Ref] = true
			}
			return true
		})
	}
	report := func(rep engine.Reporter, lu *vhdl.Node) {
		declarations(lu, func(d *vhdl.Node) {
			if used[d] || neverReferenced(d) {
				return
			}
			rep.Report(engine.NodeLocation(d), fmt.Sprintf("%s is not used", d.Ident))
		})
	}
	return engine.NewSemanticUnit("Unused", "no unused declaration",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			lu := du.LibUnit
			switch lu.Kind {
			case vhdl.KArchitecture:
				used = map[*vhdl.Node]bool{}
				ent := lu.EntityName.Ref
				if ent != nil {
					mark(ent)
				}
				mark(lu)
				if ent != nil {
					report(rep, ent)
				}
				report(rep, lu)
			case vhdl.KPackageBody:
				used = map[*vhdl.Node]bool{}
				mark(lu)
				report(rep, lu)
			}
		})
}

// neverReferenced reports whether d is a declaration references never
// point to.
func neverReferenced(d *vhdl.Node) bool {
	switch d.Kind {
	case vhdl.KFunctionBody, vhdl.KProcedureBody:
		// Calls are bound to the earlier declaration.
		return d.Spec != nil
	case vhdl.KInterfaceConstant, vhdl.KInterfaceSignal, vhdl.KInterfaceVariable,
		vhdl.KInterfaceFile:
		p := d.Parent
		return p != nil && p.IsSubprogram() && p.Spec != nil
	case vhdl.KIteratorDecl:
		return len(d.Ident) == 1
	}
	return false
}

func unusedTests() []engine.TestCase {
	r := Unused()
	return []engine.TestCase{
		engine.OK("File without references", r, "hello.vhdl"),
		engine.Fail("Unused port", r, "unused1.vhdl"),
		engine.OK("Used generic", r, "unused2.vhdl"),
		engine.Fail("Unused constant declaration in package body", r, "unused3.vhdl"),
		engine.OK("Used function with a specification", r, "unused4.vhdl"),
		engine.OK("Short loop iterator", r, "unused5.vhdl"),
	}
}
