// Package semrules checks analyzed design units: names are bound to their
// declarations, so the rules can follow references across units and into
// the std and ieee libraries.
package semrules

import (
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// All returns every semantic rule with its default settings.
func All() []*engine.Rule {
	return []*engine.Rule{
		Unused(), StdHidding(), Dependences(), PortsType(), Assocs(), References(),
	}
}

// Tests returns the self-tests of every semantic rule.
func Tests() []engine.TestCase {
	var out []engine.TestCase
	for _, fn := range []func() []engine.TestCase{
		unusedTests, stdHiddingTests, dependencesTests, portsTypeTests, assocsTests,
		referencesTests,
	} {
		out = append(out, fn()...)
	}
	return out
}

// declarations calls fn for every declaration nested in a library unit.
// The unit itself, enumeration literals, physical units, record elements,
// component interfaces and members of protected types are not visited.
func declarations(lu *vhdl.Node, fn func(*vhdl.Node)) {
	vhdl.Walk(lu, func(n *vhdl.Node) bool {
		if n == lu {
			return true
		}
		switch n.Kind {
		case vhdl.KTypeDecl, vhdl.KComponentDecl:
			fn(n)
			return false
		case vhdl.KEntity, vhdl.KArchitecture, vhdl.KPackage, vhdl.KPackageBody,
			vhdl.KConfiguration:
			return false
		}
		if n.IsDeclaration() {
			fn(n)
		}
		return true
	})
}

// libraryOf returns the library holding the unit that declares d.
func libraryOf(d *vhdl.Node) string {
	du := d.DesignUnit()
	if du == nil || du.Unit == nil {
		return ""
	}
	return du.Unit.Library
}

// isIeee reports whether d is the declaration of name in ieee.pkg.
func isIeee(d *vhdl.Node, pkg, name string) bool {
	if d == nil || d.Name() != name {
		return false
	}
	du := d.DesignUnit()
	if du == nil || du.Unit == nil || du.LibUnit == nil {
		return false
	}
	return du.Unit.Library == vhdl.LibIEEE && du.LibUnit.Name() == pkg
}

// usedPackages returns the packages named by the use clauses of a design
// unit's context.
func usedPackages(du *vhdl.Node) []*vhdl.Node {
	var out []*vhdl.Node
	for _, cl := range du.Context {
		if cl.Kind != vhdl.KUseClause {
			continue
		}
		for _, name := range cl.Names {
			if name.Kind == vhdl.KSelectedByAll {
				name = name.Prefix
			}
			if name.Ref != nil && name.Ref.Kind == vhdl.KPackage {
				out = append(out, name.Ref)
			}
		}
	}
	return out
}
