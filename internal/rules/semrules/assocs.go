package semrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Assocs requires generic and port maps of instantiations to associate by
// name, in the order of the interface declarations.
func Assocs() *engine.Rule {
	return engine.NewSemanticUnit("Assocs", "associations follow the interface order",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			vhdl.Walk(du.LibUnit, func(n *vhdl.Node) bool {
				if n.Kind != vhdl.KInstanceStmt {
					return true
				}
				unit := n.Target.Ref
				if unit == nil || (unit.Kind != vhdl.KComponentDecl && unit.Kind != vhdl.KEntity) {
					return false
				}
				checkAssocOrder(rep, unit.Generics, n.GenericMap)
				checkAssocOrder(rep, unit.Ports, n.PortMap)
				return false
			})
		})
}

func checkAssocOrder(rep engine.Reporter, inters, assocs []*vhdl.Node) {
	i := 0
	for _, a := range assocs {
		if a.Formal == nil {
			name := "?"
			if i < len(inters) {
				name = inters[i].Ident
			}
			rep.Report(engine.NodeLocation(a), fmt.Sprintf("association by position for %s", name))
			return
		}
		inter, whole := formalInterface(a.Formal)
		if inter == nil {
			continue
		}
		for i < len(inters) && inters[i] != inter {
			i++
		}
		if i == len(inters) {
			rep.Report(engine.NodeLocation(a), fmt.Sprintf("incorrect association order for %s", inter.Ident))
			return
		}
		if whole {
			i++
		}
	}
}

// formalInterface returns the interface a formal designates and whether
// the association covers all of it.
func formalInterface(f *vhdl.Node) (*vhdl.Node, bool) {
	switch f.Kind {
	case vhdl.KSimpleName:
		if isInterface(f.Ref) {
			return f.Ref, true
		}
	case vhdl.KSelectedName:
		inter, _ := formalInterface(f.Prefix)
		return inter, false
	case vhdl.KCall:
		if isInterface(f.Prefix.Ref) {
			return f.Prefix.Ref, false
		}
		if f.Prefix.Kind == vhdl.KSelectedName || f.Prefix.Kind == vhdl.KCall {
			inter, _ := formalInterface(f.Prefix)
			return inter, false
		}
		// Conversion function.
		if len(f.Args) == 1 {
			return formalInterface(f.Args[0].Actual)
		}
	}
	return nil, false
}

func isInterface(d *vhdl.Node) bool {
	if d == nil {
		return false
	}
	switch d.Kind {
	case vhdl.KInterfaceConstant, vhdl.KInterfaceSignal, vhdl.KInterfaceVariable, vhdl.KInterfaceFile:
		return true
	}
	return false
}

func assocsTests() []engine.TestCase {
	r := Assocs()
	return []engine.TestCase{
		engine.OK("File without instantiations", r, "hello.vhdl"),
		engine.OK("Simple component", r, "assocs1.vhdl"),
		engine.Fail("Simple component with incorrect order", r, "assocs2.vhdl"),
		engine.OK("Simple component without generics", r, "assocs3.vhdl"),
		engine.Fail("Component with instantiation by position", r, "assocs4.vhdl"),
		engine.OK("Record port associated by element", r, "assocs5.vhdl"),
	}
}
