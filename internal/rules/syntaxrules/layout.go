package syntaxrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Instantiation requires named associations in instantiations, one per
// line with aligned arrows.
func Instantiation() *engine.Rule {
	return engine.NewSyntaxNode("Instantiation", "layout of instantiations",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KInstanceStmt {
				return
			}
			checkAssociations(rep, n.GenericMap)
			checkAssociations(rep, n.PortMap)
		})
}

func checkAssociations(rep engine.Reporter, assocs []*vhdl.Node) {
	line, col := -1, -1
	for _, a := range assocs {
		if a.Formal == nil {
			rep.Report(engine.NodeLocation(a), "association by name required")
			continue
		}
		arrow, ok := markLocation(a, markArrow)
		if !ok {
			continue
		}
		switch {
		case arrow.Line <= line:
			rep.Report(engine.NodeLocation(a), "one association per line")
		case col >= 0 && arrow.Col != col:
			rep.Report(engine.NodeLocation(a), "`=>` place is not aligned with previous one")
		}
		line, col = arrow.Line, arrow.Col
	}
}

func instantiationTests() []engine.TestCase {
	r := Instantiation()
	return []engine.TestCase{
		engine.OK("Architecture without instantiation", r, "hello.vhdl"),
		engine.OK("Correct instantiation", r, "instantiation1.vhdl"),
		engine.Fail("Association not by name", r, "instantiation2.vhdl"),
		engine.Fail("Associations on the same line", r, "instantiation3.vhdl"),
		engine.Fail("Associations not aligned", r, "instantiation4.vhdl"),
	}
}

// Parenthesis reports parentheses around a whole condition or selector
// when both are on the same line.
func Parenthesis() *engine.Rule {
	return engine.NewSyntaxNode("Parenthesis", "no useless parenthesis",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			switch n.Kind {
			case vhdl.KIfStmt, vhdl.KLoopStmt, vhdl.KExitStmt, vhdl.KNextStmt,
				vhdl.KIfGenerate, vhdl.KCondWaveform,
				vhdl.KCaseStmt, vhdl.KCaseGenerate, vhdl.KSelectedAssign, vhdl.KReturnStmt:
			default:
				return
			}
			e := n.Expr
			if e == nil || e.Kind != vhdl.KParenExpr {
				return
			}
			right, ok := markLocation(e, markRParen)
			if !ok {
				return
			}
			left := engine.NodeLocation(e)
			if left.Line != right.Line {
				return
			}
			rep.Report(left, "useless parenthesis around expression")
		})
}

func parenthesisTests() []engine.TestCase {
	r := Parenthesis()
	return []engine.TestCase{
		engine.OK("Simple file", r, "hello.vhdl"),
		engine.Fail("Parenthesis around an if condition", r, "parenthesis1.vhdl"),
		engine.OK("Parenthesis over several lines", r, "parenthesis2.vhdl"),
		engine.Fail("Parenthesis around a return expression", r, "parenthesis3.vhdl"),
	}
}

// SubprgIsLayout requires 'is' and 'begin' of subprogram bodies with
// declarations to be on the same column.
func SubprgIsLayout() *engine.Rule {
	return engine.NewSyntaxNode("SubprgIsLayout", "position of 'is' in subprogram bodies",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind == vhdl.KFunctionBody || n.Kind == vhdl.KProcedureBody {
				checkIsBegin(rep, n)
			}
		})
}

func checkIsBegin(rep engine.Reporter, n *vhdl.Node) {
	if len(n.Decls) == 0 {
		return
	}
	is, ok1 := markLocation(n, markIs)
	begin, ok2 := markLocation(n, markBegin)
	if ok1 && ok2 && is.Col != begin.Col {
		rep.Report(is, "'is' and 'begin' must be on the same column")
	}
}

func subprgIsLayoutTests() []engine.TestCase {
	r := SubprgIsLayout()
	return []engine.TestCase{
		engine.OK("Correct column for 'is' in procedure body", r, "subprgislayout1.vhdl"),
		engine.Fail("Bad column for 'is' in procedure body", r, "subprgislayout2.vhdl"),
		engine.OK("Function body without declarations", r, "pkg1.vhdl"),
	}
}

// BeginEndLayout requires 'begin' and 'end' to be aligned.
func BeginEndLayout() *engine.Rule {
	return engine.NewSyntaxNode("BeginEndLayout", "alignment of 'begin' and 'end'",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			switch n.Kind {
			case vhdl.KArchitecture, vhdl.KBlockStmt, vhdl.KEntity, vhdl.KForGenerate,
				vhdl.KIfGenerate, vhdl.KProcessStmt, vhdl.KFunctionBody, vhdl.KProcedureBody:
			default:
				return
			}
			begin, ok1 := markLocation(n, markBegin)
			end, ok2 := markLocation(n, markEnd)
			if !ok1 || !ok2 {
				return
			}
			if begin.Col != end.Col {
				rep.Report(end, "'begin' and 'end' must be aligned on the same column")
			}
			if n.Kind == vhdl.KFunctionBody || n.Kind == vhdl.KProcedureBody {
				checkIsBegin(rep, n)
			}
		})
}

func beginEndLayoutTests() []engine.TestCase {
	r := BeginEndLayout()
	return []engine.TestCase{
		engine.OK("Process with a label", r, "hello.vhdl"),
		engine.OK("'begin' in entity", r, "entityassert.vhdl"),
		engine.Fail("Unaligned 'begin' in architecture", r, "beginend1.vhdl"),
		engine.Fail("Unaligned 'begin' in process", r, "beginend2.vhdl"),
		engine.Fail("Bad column for 'is' in procedure body", r, "subprgislayout2.vhdl"),
	}
}

// EntityLayout requires entity generics and ports to be declared one per
// line, with aligned names, colons, subtypes and default values. Ports
// must have an explicit mode.
func EntityLayout() *engine.Rule {
	return engine.NewSyntaxNode("EntityLayout", "layout of entity interfaces",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KEntity {
				return
			}
			checkInterfaceLayout(rep, n.Generics)
			checkInterfaceLayout(rep, n.Ports)
			for _, p := range n.Ports {
				if !p.HasMode {
					rep.Report(engine.NodeLocation(p), "in/out/inout required for port")
				}
			}
		})
}

func checkInterfaceLayout(rep engine.Reporter, decls []*vhdl.Node) {
	line, nameCol, colonCol, subtypeCol, assignCol := -1, -1, -1, -1, -1
	for _, d := range decls {
		loc := engine.NodeLocation(d)
		if start, ok := markLocation(d, markStart); ok {
			loc = start
		}
		if loc.Line <= line {
			rep.Report(engine.NodeLocation(d), "one generic/port per line")
		} else {
			if nameCol >= 0 && loc.Col != nameCol {
				rep.Report(engine.NodeLocation(d), "name is not aligned with previous one")
			}
			if colon, ok := markLocation(d, markColon); ok {
				if colonCol >= 0 && colon.Col != colonCol {
					rep.Report(engine.NodeLocation(d), "':' is not aligned with previous one")
				}
				colonCol = colon.Col
			}
			if d.Type != nil {
				st := leftmost(d.Type)
				if subtypeCol >= 0 && st.Col != subtypeCol {
					rep.Report(engine.NodeLocation(d), "subtype is not aligned with previous one")
				}
				subtypeCol = st.Col
			}
			if assign, ok := markLocation(d, markAssign); ok {
				if assignCol >= 0 && assign.Col != assignCol {
					rep.Report(engine.NodeLocation(d), "':=' is not aligned with previous one")
				}
				assignCol = assign.Col
			}
		}
		nameCol, line = loc.Col, loc.Line
	}
}

func entityLayoutTests() []engine.TestCase {
	r := EntityLayout()
	return []engine.TestCase{
		engine.OK("Simple entity", r, "hello.vhdl"),
		engine.OK("Entity with generics", r, "generics1.vhdl"),
		engine.Fail("':=' not correctly aligned", r, "entitylayout1.vhdl"),
		engine.Fail("':' not correctly aligned", r, "entitylayout2.vhdl"),
		engine.Fail("Subtype not correctly aligned", r, "entitylayout3.vhdl"),
		engine.Fail("Identifier list", r, "entitylayout4.vhdl"),
		engine.Fail("Missing mode for port", r, "entitylayout5.vhdl"),
	}
}

// ComplexStmtLayout requires 'then', 'loop' and 'generate' to be either on
// the line of their statement or on its column.
func ComplexStmtLayout() *engine.Rule {
	return engine.NewSyntaxUnit("ComplexStmtLayout", "placement of then, loop and generate",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			vhdl.Walk(file, func(n *vhdl.Node) bool {
				switch n.Kind {
				case vhdl.KIfStmt:
					checkLineOrCol(rep, n, markThen)
				case vhdl.KLoopStmt:
					if n.Op == vhdl.TokFor || n.Op == vhdl.TokWhile {
						checkLineOrCol(rep, n, markLoop)
					}
				case vhdl.KForGenerate:
					checkLineOrCol(rep, n, markGenerate)
				case vhdl.KIfGenerate:
					// Alternatives start with elsif or else.
					if n.Parent == nil || n.Parent.Else != n {
						checkLineOrCol(rep, n, markGenerate)
					}
				}
				return true
			})
		})
}

func checkLineOrCol(rep engine.Reporter, n *vhdl.Node, get func(*vhdl.Marks) int) {
	kw, ok := markLocation(n, get)
	if !ok {
		return
	}
	ref := engine.NodeLocation(n)
	if kw.Line == ref.Line || kw.Col == ref.Col {
		return
	}
	rep.Report(kw, fmt.Sprintf("indentation: must be at col %d instead of %d", ref.Col, kw.Col))
}

func complexStmtLayoutTests() []engine.TestCase {
	r := ComplexStmtLayout()
	return []engine.TestCase{
		engine.OK("Simple file", r, "hello.vhdl"),
		engine.OK("Then on its own line", r, "complexstmt1.vhdl"),
		engine.Fail("Incorrect if statement", r, "complexstmt2.vhdl"),
		engine.Fail("Incorrect elsif", r, "complexstmt3.vhdl"),
		engine.Fail("Incorrect for statement", r, "complexstmt4.vhdl"),
		engine.Fail("Incorrect for-generate statement", r, "complexstmt5.vhdl"),
	}
}
