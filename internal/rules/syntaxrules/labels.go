package syntaxrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// ProcessLabel requires every process to have a label or a comment on the
// line above it.
func ProcessLabel() *engine.Rule {
	return engine.NewSyntaxUnit("ProcessLabel", "processes are labeled or commented",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			vhdl.Walk(file, func(n *vhdl.Node) bool {
				if n.Kind != vhdl.KProcessStmt || n.HasLabel() {
					return true
				}
				loc := engine.NodeLocation(n)
				if _, ok := in.Comment(loc.Line - 1); !ok {
					rep.Report(loc, "missing label or comment for process")
				}
				return true
			})
		})
}

func processLabelTests() []engine.TestCase {
	r := ProcessLabel()
	return []engine.TestCase{
		engine.OK("Process with a label", r, "hello.vhdl"),
		engine.OK("Process with a comment", r, "processlabel1.vhdl"),
		engine.Fail("Process without label nor comment", r, "processlabel2.vhdl"),
	}
}

// hasEndLabel lists the constructs whose name must be repeated after end.
var hasEndLabel = map[vhdl.Kind]bool{
	vhdl.KEntity: true, vhdl.KArchitecture: true, vhdl.KPackage: true,
	vhdl.KPackageBody: true, vhdl.KConfiguration: true,
	vhdl.KProtectedTypeDecl: true, vhdl.KProtectedTypeBody: true,
	vhdl.KPhysicalTypeDef: true, vhdl.KRecordTypeDef: true,
	vhdl.KFunctionBody: true, vhdl.KProcedureBody: true,
	vhdl.KLoopStmt: true, vhdl.KCaseStmt: true, vhdl.KIfStmt: true,
	vhdl.KBlockStmt: true, vhdl.KProcessStmt: true,
	vhdl.KForGenerate: true, vhdl.KIfGenerate: true,
}

// EndLabel requires the name of a named construct after its end keyword.
func EndLabel() *engine.Rule {
	return engine.NewSyntaxNode("EndLabel", "name repeated after 'end'",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if !hasEndLabel[n.Kind] || n.Ident == "" || n.EndLabel {
				return
			}
			// Alternatives of if statements carry no end.
			loc, ok := markLocation(n, markEnd)
			if !ok {
				return
			}
			rep.Report(loc, fmt.Sprintf("missing '%s' after 'end'", n.Ident))
		})
}

func endLabelTests() []engine.TestCase {
	r := EndLabel()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Simple entity without end label", r, "endlabel1.vhdl"),
		engine.Fail("Labeled loop without end label", r, "endlabel2.vhdl"),
		engine.Fail("Record type without end label", r, "endlabel3.vhdl"),
	}
}
