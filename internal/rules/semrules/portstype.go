package semrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// PortsType requires ports of top entities to be std_logic,
// std_logic_vector or records of those.
func PortsType() *engine.Rule {
	return engine.NewSemanticUnit("PortsType", "ports of top units are std_logic/_vector",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			if !in.Props.Has(engine.PropTop) || du.LibUnit.Kind != vhdl.KEntity {
				return
			}
			for _, p := range du.LibUnit.Ports {
				if !portType(p.Type, 0) {
					rep.Report(engine.NodeLocation(p),
						fmt.Sprintf("type of port '%s' must be std_logic/_vector", p.Ident))
				}
			}
		})
}

// portType reports whether a subtype indication denotes std_logic, a
// std_logic_vector or a record whose elements all pass the check.
func portType(ind *vhdl.Node, depth int) bool {
	if mark := vhdl.TypeMark(ind); mark != nil && isIeee(mark.Ref, "std_logic_1164", "std_logic") {
		return true
	}
	decl := vhdl.TypeDeclaration(ind)
	if decl == nil {
		return false
	}
	if isIeee(decl, "std_logic_1164", "std_logic_vector") {
		return true
	}
	if decl.Type == nil || decl.Type.Kind != vhdl.KRecordTypeDef || depth > 16 {
		return false
	}
	for _, e := range decl.Type.Elements {
		if !portType(e.Type, depth+1) {
			return false
		}
	}
	return true
}

func portsTypeTests() []engine.TestCase {
	r := PortsType()
	return []engine.TestCase{
		engine.OK("File without ports", r, "--top", "hello.vhdl"),
		engine.OK("Correct ports", r, "--top", "porttypes1.vhdl"),
		engine.Fail("Port std_ulogic", r, "--top", "porttypes2.vhdl"),
		engine.Fail("Port std_ulogic_vector", r, "--top", "porttypes3.vhdl"),
		engine.OK("Port with record", r, "--top", "porttypes4.vhdl"),
		engine.Fail("Port with bad record", r, "--top", "porttypes5.vhdl"),
		engine.OK("Port with nested record", r, "--top", "porttypes6.vhdl"),
		engine.OK("Not a top unit", r, "porttypes2.vhdl"),
	}
}
