package syntaxrules

import (
	"fmt"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// PortsName requires port names to end with the suffix of their mode.
func PortsName() *engine.Rule {
	return engine.NewSyntaxNode("PortsName", "port suffix matches the mode",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if !isPort(n) {
				return
			}
			s := n.Ident
			loc := engine.NodeLocation(n)
			switch n.Mode {
			case vhdl.ModeOut:
				if !strings.HasSuffix(s, "_o") {
					rep.Report(loc, fmt.Sprintf("out port '%s' must end with '_o'", s))
				}
			case vhdl.ModeIn, vhdl.ModeNone:
				if !strings.HasSuffix(s, "_i") {
					rep.Report(loc, fmt.Sprintf("in port '%s' must end with '_i'", s))
				}
			case vhdl.ModeInout:
				if !strings.HasSuffix(s, "_b") {
					rep.Report(loc, fmt.Sprintf("inout port '%s' must end with '_b'", s))
				}
			case vhdl.ModeBuffer:
				rep.Report(loc, fmt.Sprintf("buffer port '%s' not allowed", s))
			case vhdl.ModeLinkage:
				rep.Report(loc, fmt.Sprintf("linkage port '%s' not allowed", s))
			}
		})
}

func portsNameTests() []engine.TestCase {
	r := PortsName()
	return []engine.TestCase{
		engine.OK("File with correct ports", r, "hello.vhdl"),
		engine.Fail("Out port without '_o'", r, "portsname1.vhdl"),
		engine.Fail("Buffer port", r, "portmode1.vhdl"),
	}
}

// SignalsName checks the order of the suffixes of signals and ports:
// direction last, then '_n', then '_a', then any '_p', '_d' or '_dN'.
func SignalsName() *engine.Rule {
	return engine.NewSyntaxNode("SignalsName", "order of signal name suffixes",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KSignalDecl && !isPort(n) {
				return
			}
			checkSignalSuffixes(rep, n)
		})
}

func checkSignalSuffixes(rep engine.Reporter, n *vhdl.Node) {
	orig := n.Ident
	s := orig
	if l := len(s); l > 2 && s[l-2] == '_' && strings.IndexByte("oib", s[l-1]) >= 0 {
		s = s[:l-2]
	}
	s = strings.TrimSuffix(s, "_n")
	s = strings.TrimSuffix(s, "_a")
	for {
		l := len(s)
		switch {
		case strings.HasSuffix(s, "_p"), strings.HasSuffix(s, "_d"):
			s = s[:l-2]
			continue
		case l > 3 && s[l-3] == '_' && s[l-2] == 'd' && s[l-1] >= '0' && s[l-1] <= '9':
			s = s[:l-3]
			continue
		}
		break
	}
	loc := engine.NodeLocation(n)
	if strings.HasSuffix(s, "_n") {
		rep.Report(loc, fmt.Sprintf("'_n' suffix of signal '%s' is too early", orig))
	}
	if strings.HasSuffix(s, "_a") {
		rep.Report(loc, fmt.Sprintf("'_a' suffix of signal '%s' is too early", orig))
	}
}

func signalsNameTests() []engine.TestCase {
	r := SignalsName()
	return []engine.TestCase{
		engine.OK("File without suffixes", r, "hello.vhdl"),
		engine.OK("Correct signals", r, "signalsname1.vhdl"),
		engine.Fail("Bad suffix order in signal name", r, "signalsname2.vhdl"),
		engine.Fail("Bad suffix order in port name", r, "signalsname3.vhdl"),
	}
}

// NameDecl checks the name of every declaration of kind against pred.
func NameDecl(kind vhdl.Kind, pred func(string) bool) *engine.Rule {
	return engine.NewSyntaxNode("NameDecl", "naming of "+kind.String()+" declarations",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != kind || pred(n.Ident) {
				return
			}
			rep.Report(engine.NodeLocation(n), fmt.Sprintf("incorrect name '%s'", n.Ident))
		})
}

func nameDeclTests() []engine.TestCase {
	r := NameDecl(vhdl.KConstantDecl, func(s string) bool { return s != "Reserved" })
	return []engine.TestCase{
		engine.OK("File without constants", r, "hello.vhdl"),
		engine.Fail("Incorrect name", r, "namedecl1.vhdl"),
		engine.OK("Correct name", r, "namedecl2.vhdl"),
	}
}

// GenericsName requires generics to be named g_UPPER.
func GenericsName() *engine.Rule {
	return engine.NewSyntaxNode("GenericsName", "generics are named g_UPPER",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if !isGeneric(n) {
				return
			}
			s := n.Ident
			loc := engine.NodeLocation(n)
			if !strings.HasPrefix(s, "g_") {
				rep.Report(loc, fmt.Sprintf("generic '%s' must start with 'g_'", s))
			}
			if len(s) < 2 || !isUpper(s[2:]) {
				rep.Report(loc, fmt.Sprintf("generic '%s' must be in upper case after 'g_'", s))
			}
		})
}

func genericsNameTests() []engine.TestCase {
	r := GenericsName()
	return []engine.TestCase{
		engine.OK("File without generics", r, "hello.vhdl"),
		engine.OK("Correct generic", r, "generics1.vhdl"),
		engine.Fail("Generic not in upper case", r, "generics2.vhdl"),
		engine.Fail("Generic without 'g_' prefix", r, "generics3.vhdl"),
	}
}

// EnumName requires enumeration literals in upper case.
func EnumName() *engine.Rule {
	return engine.NewSyntaxNode("EnumName", "enumeration literals in upper case",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KEnumLiteral || isUpper(n.Ident) {
				return
			}
			rep.Report(engine.NodeLocation(n),
				fmt.Sprintf("enumeration literal '%s' must be in upper case", n.Ident))
		})
}

func enumNameTests() []engine.TestCase {
	r := EnumName()
	return []engine.TestCase{
		engine.OK("File without enum", r, "hello.vhdl"),
		engine.OK("Simple enum", r, "enum1.vhdl"),
		engine.Fail("Simple enum with incorrect case", r, "enum2.vhdl"),
	}
}

// NoCharEnumLit forbids character literals in enumeration types.
func NoCharEnumLit() *engine.Rule {
	return engine.NewSyntaxNode("NoCharEnumLit", "no character enumeration literal",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KEnumLiteral || !isCharLiteral(n.Ident) {
				return
			}
			rep.Report(engine.NodeLocation(n), "character not allowed in enumeration declaration")
		})
}

func noCharEnumLitTests() []engine.TestCase {
	r := NoCharEnumLit()
	return []engine.TestCase{
		engine.OK("File without enum", r, "hello.vhdl"),
		engine.OK("Enumerated type with identifiers", r, "enum1.vhdl"),
		engine.Fail("Enumerated type with character", r, "enumchar.vhdl"),
	}
}
