package semrules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// StdHidding forbids user declarations named after a declaration of
// std.standard or of an ieee package the unit uses.
func StdHidding() *engine.Rule {
	var (
		standard map[string]bool
		ieee     = map[string]bool{}
		seen     []*vhdl.Node
	)
	return engine.NewSemanticUnit("StdHidding", "standard names are not redeclared",
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			if standard == nil {
				standard = map[string]bool{}
				if std := in.Library.Standard(); std != nil {
					gatherIdentifiers(standard, std)
				}
			}
			for _, pkg := range usedPackages(du) {
				if libraryOf(pkg) != vhdl.LibIEEE || slices.Contains(seen, pkg) {
					continue
				}
				seen = append(seen, pkg)
				gatherIdentifiers(ieee, pkg)
			}
			declarations(du.LibUnit, func(d *vhdl.Node) {
				name := d.Name()
				if standard[name] {
					rep.Report(engine.NodeLocation(d),
						fmt.Sprintf("declaration of %s uses a standard name", d.Ident))
				}
				if ieee[name] {
					rep.Report(engine.NodeLocation(d),
						fmt.Sprintf("declaration of %s uses an ieee name", d.Ident))
				}
			})
		})
}

// gatherIdentifiers adds the names declared by a package to set, along
// with enumeration literals and physical units. Operator symbols and
// character literals are left out.
func gatherIdentifiers(set map[string]bool, pkg *vhdl.Node) {
	add := func(d *vhdl.Node) {
		if d.Ident == "" || strings.HasPrefix(d.Ident, `"`) || strings.HasPrefix(d.Ident, "'") {
			return
		}
		set[d.Name()] = true
	}
	for _, d := range pkg.Decls {
		switch d.Kind {
		case vhdl.KAttributeSpec, vhdl.KConfigSpec, vhdl.KDisconnectSpec, vhdl.KUseClause:
			continue
		}
		add(d)
		if d.Kind != vhdl.KTypeDecl || d.Type == nil {
			continue
		}
		switch d.Type.Kind {
		case vhdl.KEnumTypeDef, vhdl.KPhysicalTypeDef:
			for _, lit := range d.Type.Literals {
				add(lit)
			}
		}
	}
}

func stdHiddingTests() []engine.TestCase {
	r := StdHidding()
	return []engine.TestCase{
		engine.OK("File without ieee", r, "hello.vhdl"),
		engine.Fail("Redefinition of a standard identifier", r, "stdhide1.vhdl"),
		engine.Fail("Redefinition of an ieee identifier", r, "stdhide2.vhdl"),
	}
}
