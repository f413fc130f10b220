package syntaxrules

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Indentation checks that declarations and statements are indented by
// width columns per nesting level, with closing keywords aligned on the
// construct they close. Units start at column 1.
func Indentation(width int) *engine.Rule {
	return engine.NewSyntaxUnit("Indentation", "indentation of declarations and statements",
		func(rep engine.Reporter, in *engine.Input, file *vhdl.Node) {
			c := &indenter{rep: rep, width: width}
			for _, du := range file.Units {
				c.unit(du, 1)
			}
		})
}

type indenter struct {
	rep   engine.Reporter
	width int
}

// at requires the offset off of a part of n to be at column col. A
// negative offset is an absent keyword.
func (c *indenter) at(n *vhdl.Node, off, col int) {
	if off < 0 {
		return
	}
	loc := engine.OffsetLocation(n, off)
	if loc.Col != col {
		c.rep.Report(loc, fmt.Sprintf("indentation: must be at col %d instead of %d", col, loc.Col))
	}
}

// lineOrCol requires the offset off to be on the line of ref or on its
// column.
func (c *indenter) lineOrCol(n *vhdl.Node, ref, off int) {
	if off < 0 {
		return
	}
	r := engine.OffsetLocation(n, ref)
	loc := engine.OffsetLocation(n, off)
	if loc.Line == r.Line || loc.Col == r.Col {
		return
	}
	c.rep.Report(loc, fmt.Sprintf("indentation: must be at col %d instead of %d", r.Col, loc.Col))
}

func (c *indenter) unit(du *vhdl.Node, level int) {
	prev := -1
	for _, cl := range du.Context {
		// The clauses of "library a, b;" share their position.
		if cl.Pos != prev {
			c.at(cl, cl.Pos, level)
		}
		prev = cl.Pos
	}
	lu := du.LibUnit
	if lu == nil {
		return
	}
	next := level + c.width
	c.at(lu, lu.Pos, level)
	switch lu.Kind {
	case vhdl.KEntity:
		c.at(lu, lu.Mark(markGeneric), next)
		c.at(lu, lu.Mark(markPort), next)
		c.decls(lu.Decls, next)
		c.at(lu, lu.Mark(markBegin), level)
		c.concurrent(lu.Stmts, next)
	case vhdl.KArchitecture:
		c.decls(lu.Decls, next)
		c.at(lu, lu.Mark(markBegin), level)
		c.concurrent(lu.Stmts, next)
	case vhdl.KPackage:
		c.at(lu, lu.Mark(markGeneric), next)
		c.decls(lu.Decls, next)
	case vhdl.KPackageBody:
		c.decls(lu.Decls, next)
	case vhdl.KConfiguration:
		c.decls(lu.Decls, next)
		for _, bc := range lu.Stmts {
			c.at(bc, bc.Pos, next)
		}
	}
	c.at(lu, lu.Mark(markEnd), level)
}

// declStart returns the offset of the first keyword of a declaration.
func declStart(d *vhdl.Node) int {
	if off := d.Mark(markStart); off >= 0 {
		return off
	}
	return d.Pos
}

func (c *indenter) decls(list []*vhdl.Node, level int) {
	next := level + c.width
	for _, d := range list {
		if d.SharedType {
			continue
		}
		c.at(d, declStart(d), level)
		switch d.Kind {
		case vhdl.KComponentDecl:
			c.at(d, d.Mark(markGeneric), next)
			c.at(d, d.Mark(markPort), next)
			c.at(d, d.Mark(markEnd), level)
		case vhdl.KFunctionBody, vhdl.KProcedureBody:
			c.decls(d.Decls, next)
			c.at(d, d.Mark(markBegin), level)
			c.sequential(d.Stmts, next)
			c.at(d, d.Mark(markEnd), level)
		case vhdl.KTypeDecl:
			c.typeDef(d.Type, level)
		}
	}
}

// typeDef checks the inner lines of record, physical and protected types.
func (c *indenter) typeDef(def *vhdl.Node, level int) {
	if def == nil {
		return
	}
	next := level + c.width
	switch def.Kind {
	case vhdl.KRecordTypeDef:
		for _, e := range def.Elements {
			if !e.SharedType {
				c.at(e, e.Pos, next)
			}
		}
	case vhdl.KPhysicalTypeDef:
		for _, u := range def.Literals {
			c.at(u, u.Pos, next)
		}
	case vhdl.KProtectedTypeDecl, vhdl.KProtectedTypeBody:
		c.decls(def.Decls, next)
	default:
		return
	}
	c.at(def, def.Mark(markEnd), level)
}

func (c *indenter) concurrent(list []*vhdl.Node, level int) {
	next := level + c.width
	for _, n := range list {
		c.at(n, n.Pos, level)
		switch n.Kind {
		case vhdl.KBlockStmt:
			c.at(n, n.Mark(markGeneric), next)
			c.at(n, n.Mark(markPort), next)
			c.decls(n.Decls, next)
			c.at(n, n.Mark(markBegin), level)
			c.concurrent(n.Stmts, next)
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KProcessStmt:
			c.decls(n.Decls, next)
			c.at(n, n.Mark(markBegin), level)
			c.sequential(n.Stmts, next)
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KForGenerate:
			c.lineOrCol(n, n.Pos, n.Mark(markGenerate))
			c.generateBody(n, level)
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KIfGenerate:
			c.lineOrCol(n, n.Pos, n.Mark(markGenerate))
			c.generateBody(n, level)
			for alt := n.Else; alt != nil; alt = alt.Else {
				c.at(alt, alt.Pos, level)
				c.lineOrCol(alt, alt.Pos, alt.Mark(markGenerate))
				c.generateBody(alt, level)
			}
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KCaseGenerate:
			c.lineOrCol(n, n.Pos, n.Mark(markGenerate))
			for _, alt := range n.Alts {
				c.at(alt, alt.Pos, next)
				c.generateBody(alt, next)
			}
			c.at(n, n.Mark(markEnd), level)
		}
	}
}

// generateBody checks the optional declarative part and the statements of
// a generate statement or of one of its alternatives.
func (c *indenter) generateBody(n *vhdl.Node, level int) {
	next := level + c.width
	c.decls(n.Decls, next)
	c.at(n, n.Mark(markBegin), level)
	c.concurrent(n.Stmts, next)
}

func (c *indenter) sequential(list []*vhdl.Node, level int) {
	next := level + c.width
	for _, n := range list {
		c.at(n, n.Pos, level)
		switch n.Kind {
		case vhdl.KIfStmt:
			for clause := n; clause != nil; clause = clause.Else {
				if clause != n {
					c.at(clause, clause.Pos, level)
				}
				c.lineOrCol(clause, clause.Pos, clause.Mark(markThen))
				c.sequential(clause.Stmts, next)
			}
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KLoopStmt:
			c.lineOrCol(n, n.Pos, n.Mark(markLoop))
			c.sequential(n.Stmts, next)
			c.at(n, n.Mark(markEnd), level)
		case vhdl.KCaseStmt:
			c.alternatives(n.Alts, next)
			c.at(n, n.Mark(markEnd), level)
		}
	}
}

// alternatives checks the 'when' of case alternatives. Choices continued
// on another line have their '|' three columns after the 'when'. A single
// statement may follow the arrow on the same line.
func (c *indenter) alternatives(alts []*vhdl.Node, level int) {
	for _, alt := range alts {
		c.at(alt, alt.Pos, level)
		when := engine.NodeLocation(alt)
		for i, ch := range alt.Choices {
			if i == 0 {
				continue
			}
			off := choiceStart(ch)
			if engine.OffsetLocation(ch, off).Line != when.Line {
				c.at(ch, off, level+3)
			}
		}
		if len(alt.Stmts) == 1 && engine.NodeLocation(alt.Stmts[0]).Line == when.Line {
			continue
		}
		c.sequential(alt.Stmts, level+c.width)
	}
}

// choiceStart returns the offset of the bar before a choice, or of the
// choice itself when the bar is not found.
func choiceStart(ch *vhdl.Node) int {
	src := ch.Source()
	if src == nil {
		return ch.Pos
	}
	for i := ch.Pos - 1; i >= 0; i-- {
		switch src.Buf[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '|', '!':
			return i
		}
		break
	}
	return ch.Pos
}

func indentationTests() []engine.TestCase {
	r := Indentation(2)
	return []engine.TestCase{
		engine.OK("Simple file", r, "hello.vhdl"),
		engine.Fail("Incorrect generic indentation", r, "indent1.vhdl"),
		engine.Fail("Incorrect port indentation", r, "indent2.vhdl"),
		engine.OK("Case statement", r, "indent3.vhdl"),
		engine.Fail("Type declaration", r, "indent4.vhdl"),
		engine.Fail("Alias declaration", r, "indent5.vhdl"),
		engine.Fail("Attribute declaration", r, "indent6.vhdl"),
		engine.OK("Attribute declaration and spec", r, "indent7.vhdl"),
		engine.Fail("Attribute specification", r, "indent8.vhdl"),
		engine.Fail("Use clause", r, "indent9.vhdl"),
		engine.Fail("Configuration specification", r, "indent10.vhdl"),
		engine.Fail("Disconnection specification", r, "indent11.vhdl"),
		engine.Fail("Misaligned end if", r, "indent12.vhdl"),
		engine.Fail("Misplaced continued choice", r, "indent13.vhdl"),
		engine.OK("Record, labeled loop and generate", r, "indent14.vhdl"),
		engine.Fail("Four columns per level", Indentation(4), "hello.vhdl"),
	}
}
