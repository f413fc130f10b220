// Package syntaxrules checks the unanalyzed syntax tree of a design file:
// unit layout, naming conventions, forbidden constructs and the placement
// of keywords.
package syntaxrules

import (
	"strings"
	"unicode"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// All returns every syntax rule with its default settings.
func All() []*engine.Rule {
	return []*engine.Rule{
		OneModule(), FileName(".vhdl"), ProcessLabel(), EndLabel(), PortsName(),
		SignalsName(), ContextUse(), Context(), IeeePackages(), EntityItems(),
		NameDecl(vhdl.KConstantDecl, func(s string) bool { return s != "reserved" }),
		GenericsName(), PortMode(), NoUserAttributes(), NoUserAttrName(), NoCharEnumLit(),
		EnumName(), GuardedSignals(), Disconnection(), BlockStatement(), GroupDeclaration(),
		ConfigSpec(), Instantiation(), Parenthesis(), SubprgIsLayout(), BeginEndLayout(),
		EntityLayout(), ComplexStmtLayout(), Indentation(2),
	}
}

// Tests returns the self-tests of every syntax rule.
func Tests() []engine.TestCase {
	var out []engine.TestCase
	for _, fn := range []func() []engine.TestCase{
		oneModuleTests, fileNameTests, processLabelTests, endLabelTests, portsNameTests,
		signalsNameTests, contextUseTests, contextTests, ieeePackagesTests, entityItemsTests,
		nameDeclTests, genericsNameTests, portModeTests, noUserAttributesTests,
		noUserAttrNameTests, noCharEnumLitTests, enumNameTests, guardedSignalsTests,
		disconnectionTests, blockStatementTests, groupDeclarationTests, configSpecTests,
		instantiationTests, parenthesisTests, subprgIsLayoutTests, beginEndLayoutTests,
		entityLayoutTests, complexStmtLayoutTests, indentationTests,
	} {
		out = append(out, fn()...)
	}
	return out
}

// Mark accessors.
var (
	markStart    = func(m *vhdl.Marks) int { return m.Start }
	markIs       = func(m *vhdl.Marks) int { return m.Is }
	markBegin    = func(m *vhdl.Marks) int { return m.Begin }
	markEnd      = func(m *vhdl.Marks) int { return m.End }
	markThen     = func(m *vhdl.Marks) int { return m.Then }
	markLoop     = func(m *vhdl.Marks) int { return m.Loop }
	markGenerate = func(m *vhdl.Marks) int { return m.Generate }
	markColon    = func(m *vhdl.Marks) int { return m.Colon }
	markAssign   = func(m *vhdl.Marks) int { return m.Assign }
	markArrow    = func(m *vhdl.Marks) int { return m.Arrow }
	markRParen   = func(m *vhdl.Marks) int { return m.RParen }
	markGeneric  = func(m *vhdl.Marks) int { return m.Generic }
	markPort     = func(m *vhdl.Marks) int { return m.Port }
)

// markLocation returns the location of a recorded keyword of n.
func markLocation(n *vhdl.Node, get func(*vhdl.Marks) int) (engine.Location, bool) {
	off := n.Mark(get)
	if off < 0 {
		return engine.Location{}, false
	}
	return engine.OffsetLocation(n, off), true
}

// leftmost returns the location of the first character of a name or a
// subtype indication.
func leftmost(n *vhdl.Node) engine.Location {
	first := n
	for p := n; p != nil; p = p.Prefix {
		if p.Pos >= 0 && p.Pos < first.Pos {
			first = p
		}
	}
	return engine.OffsetLocation(n, first.Pos)
}

// isPort reports whether n is a port of an entity, a component or a block.
func isPort(n *vhdl.Node) bool {
	if n.Kind != vhdl.KInterfaceSignal || n.Parent == nil {
		return false
	}
	return hasInterfaces(n.Parent) && contains(n.Parent.Ports, n)
}

// isGeneric reports whether n is a generic of an entity, a component or a
// block.
func isGeneric(n *vhdl.Node) bool {
	if n.Kind != vhdl.KInterfaceConstant || n.Parent == nil {
		return false
	}
	return hasInterfaces(n.Parent) && contains(n.Parent.Generics, n)
}

func hasInterfaces(n *vhdl.Node) bool {
	switch n.Kind {
	case vhdl.KEntity, vhdl.KComponentDecl, vhdl.KBlockStmt:
		return true
	}
	return false
}

func contains(list []*vhdl.Node, n *vhdl.Node) bool {
	for _, c := range list {
		if c == n {
			return true
		}
	}
	return false
}

// isUpper reports whether s has at least one cased letter and no lower case
// one.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isCharLiteral reports whether an enumeration literal is a character.
func isCharLiteral(s string) bool {
	return strings.HasPrefix(s, "'")
}
