package semrules

import (
	"fmt"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// References requires names to be spelled like their declaration. Names
// of libraries and of ieee declarations are in lower case. Names from the
// std library are in lower case too, except the control characters of
// type character which are in upper case.
func References() *engine.Rule {
	return engine.NewSemanticNode("References", "names are spelled like their declaration",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			switch n.Kind {
			case vhdl.KSimpleName, vhdl.KSelectedName, vhdl.KLibraryClause,
				vhdl.KAttributeName, vhdl.KAttributeSpec:
			default:
				return
			}
			if n.Ref == nil || n.Ident == "" {
				return
			}
			want := spelling(n.Ref, n.Ident)
			if n.Ident == want {
				return
			}
			loc := engine.NodeLocation(n)
			if n.Kind == vhdl.KSelectedName {
				loc = engine.OffsetLocation(n, n.Suffix)
			}
			rep.Report(loc, fmt.Sprintf("%s is not the correct spelling for '%s'", n.Ident, want))
		})
}

// spelling returns how a reference written ref must be spelled to denote
// the declaration d.
func spelling(d *vhdl.Node, ref string) string {
	if d.Kind == vhdl.KLibrary {
		return strings.ToLower(ref)
	}
	switch libraryOf(d) {
	case vhdl.LibStd:
		if isControlCharacter(d) {
			return strings.ToUpper(ref)
		}
		return strings.ToLower(ref)
	case vhdl.LibIEEE:
		return strings.ToLower(ref)
	}
	return d.Ident
}

// isControlCharacter reports whether d is an identifier literal of
// std.standard.character, like NUL.
func isControlCharacter(d *vhdl.Node) bool {
	if d.Kind != vhdl.KEnumLiteral || strings.HasPrefix(d.Ident, "'") {
		return false
	}
	def := d.Parent
	if def == nil || def.Parent == nil {
		return false
	}
	return def.Parent.Kind == vhdl.KTypeDecl && def.Parent.Name() == "character"
}

func referencesTests() []engine.TestCase {
	r := References()
	return []engine.TestCase{
		engine.OK("File without references", r, "hello.vhdl"),
		engine.OK("Correct reference (simple name)", r, "reference1.vhdl"),
		engine.Fail("Incorrect reference (simple name)", r, "reference2.vhdl"),
		engine.OK("Correct reference (library clause)", r, "reference3.vhdl"),
		engine.Fail("Incorrect reference (library clause)", r, "reference4.vhdl"),
		engine.OK("Correct reference (library name, selected name)", r, "reference5.vhdl"),
		engine.Fail("Incorrect reference (library name)", r, "reference6.vhdl"),
		engine.Fail("Incorrect reference (selected name)", r, "reference7.vhdl"),
		engine.OK("Correct reference (name from ieee library)", r, "reference8.vhdl"),
		engine.Fail("Incorrect reference (name from ieee library)", r, "reference9.vhdl"),
		engine.OK("Correct reference (name from standard package)", r, "reference10.vhdl"),
		engine.Fail("Incorrect reference (name from standard package)", r, "reference11.vhdl"),
		engine.OK("Correct reference (control character name)", r, "reference12.vhdl"),
		engine.OK("Correct reference (attribute)", r, "reference13.vhdl"),
		engine.Fail("Incorrect reference (attribute spec)", r, "reference14.vhdl"),
		engine.OK("Correct reference (attribute name)", r, "reference15.vhdl"),
		engine.Fail("Incorrect reference (attribute name)", r, "reference16.vhdl"),
		engine.OK("Reference to an entity", r, "reference17.vhdl"),
		engine.OK("Architecture in an entity aspect", r, "reference18.vhdl"),
		engine.OK("Unknown architecture in an entity aspect", r, "reference19.vhdl"),
		engine.Fail("Incorrect reference to an architecture", r, "reference20.vhdl"),
	}
}
