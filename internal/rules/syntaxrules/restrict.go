package syntaxrules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// PortMode forbids buffer and linkage ports.
func PortMode() *engine.Rule {
	return engine.NewSyntaxNode("PortMode", "no buffer nor linkage port",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if !isPort(n) {
				return
			}
			switch n.Mode {
			case vhdl.ModeBuffer, vhdl.ModeLinkage:
				rep.Report(engine.NodeLocation(n), fmt.Sprintf("%s port '%s' not allowed", n.Mode, n.Ident))
			}
		})
}

func portModeTests() []engine.TestCase {
	r := PortMode()
	return []engine.TestCase{
		engine.OK("File with ports", r, "hello.vhdl"),
		engine.Fail("Not allowed buffer port", r, "portmode1.vhdl"),
	}
}

// NoUserAttributes forbids attribute declarations except the allowed ones.
func NoUserAttributes(allowed ...string) *engine.Rule {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = strings.ToLower(a)
	}
	return engine.NewSyntaxNode("NoUserAttributes", "no user attribute declaration",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KAttributeDecl || slices.Contains(names, n.Name()) {
				return
			}
			rep.Report(engine.NodeLocation(n),
				fmt.Sprintf("user attribute declaration for '%s' not allowed", n.Ident))
		})
}

func noUserAttributesTests() []engine.TestCase {
	return []engine.TestCase{
		engine.OK("File without attributes", NoUserAttributes(), "hello.vhdl"),
		engine.Fail("Simple attribute declaration", NoUserAttributes(), "attrdecl.vhdl"),
		engine.OK("Allowed attribute declaration", NoUserAttributes("KEEP"), "attrdecl.vhdl"),
	}
}

// predefinedAttrs are the attribute names NoUserAttrName accepts. User and
// predefined attributes cannot be told apart before analysis.
var predefinedAttrs = []string{
	"length", "left", "right", "low", "high", "range", "reverse_range", "ascending",
	"pos", "val", "image", "value", "event", "delayed", "stable", "quiet",
}

// NoUserAttrName forbids attribute names other than common predefined ones.
func NoUserAttrName() *engine.Rule {
	return engine.NewSyntaxNode("NoUserAttrName", "no user attribute name",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KAttributeName || slices.Contains(predefinedAttrs, strings.ToLower(n.Ident)) {
				return
			}
			rep.Report(engine.NodeLocation(n), fmt.Sprintf("attribute name '%s' not allowed", n.Ident))
		})
}

func noUserAttrNameTests() []engine.TestCase {
	r := NoUserAttrName()
	return []engine.TestCase{
		engine.OK("File without attributes", r, "hello.vhdl"),
		engine.Fail("Simple attribute name", r, "attrname1.vhdl"),
		engine.OK("Predefined attribute name", r, "attrname2.vhdl"),
	}
}

// GuardedSignals forbids guarded signals and guarded signal parameters.
func GuardedSignals() *engine.Rule {
	return engine.NewSyntaxNode("GuardedSignals", "no guarded signal",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KSignalDecl && n.Kind != vhdl.KInterfaceSignal {
				return
			}
			if n.Guarded {
				rep.Report(engine.NodeLocation(n), fmt.Sprintf("signal '%s' must not be guarded", n.Ident))
			}
		})
}

func guardedSignalsTests() []engine.TestCase {
	r := GuardedSignals()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Guarded signal declaration", r, "guarded1.vhdl"),
		engine.OK("Resolved signal declaration", r, "guarded2.vhdl"),
		engine.Fail("Guarded interface", r, "guarded3.vhdl"),
	}
}

// Disconnection forbids disconnection specifications.
func Disconnection() *engine.Rule {
	return forbid("Disconnection", vhdl.KDisconnectSpec, "disconnection specification not allowed")
}

func disconnectionTests() []engine.TestCase {
	r := Disconnection()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Simple disconnection specification", r, "disconnection.vhdl"),
	}
}

// ConfigSpec forbids configuration specifications.
func ConfigSpec() *engine.Rule {
	return forbid("ConfigSpec", vhdl.KConfigSpec, "configuration specification not allowed")
}

func configSpecTests() []engine.TestCase {
	r := ConfigSpec()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Simple configuration specification", r, "configspec.vhdl"),
	}
}

// GroupDeclaration forbids groups and group templates.
func GroupDeclaration() *engine.Rule {
	return engine.NewSyntaxNode("GroupDeclaration", "no group declaration",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			switch n.Kind {
			case vhdl.KGroupDecl:
				rep.Report(engine.NodeLocation(n), "group declaration not allowed")
			case vhdl.KGroupTemplateDecl:
				rep.Report(engine.NodeLocation(n), "group template declaration not allowed")
			}
		})
}

func groupDeclarationTests() []engine.TestCase {
	r := GroupDeclaration()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.Fail("Group template and group", r, "groupdecl.vhdl"),
	}
}

// BlockStatement forbids block headers and guard expressions.
func BlockStatement() *engine.Rule {
	return engine.NewSyntaxNode("BlockStatement", "blocks without header nor guard",
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind != vhdl.KBlockStmt {
				return
			}
			loc := engine.NodeLocation(n)
			if len(n.Generics) > 0 {
				rep.Report(loc, "block cannot declare generics")
			}
			if len(n.Ports) > 0 {
				rep.Report(loc, "block cannot declare ports")
			}
			if n.Expr != nil {
				rep.Report(loc, "block cannot have an implicit GUARD signal")
			}
		})
}

func blockStatementTests() []engine.TestCase {
	r := BlockStatement()
	return []engine.TestCase{
		engine.OK("File with an entity and an architecture", r, "hello.vhdl"),
		engine.OK("Simple block", r, "block1.vhdl"),
		engine.Fail("Block with ports", r, "block2.vhdl"),
		engine.Fail("Guarded block", r, "block3.vhdl"),
	}
}

// forbid reports every node of kind.
func forbid(name string, kind vhdl.Kind, msg string) *engine.Rule {
	return engine.NewSyntaxNode(name, "no "+kind.String(),
		func(rep engine.Reporter, in *engine.Input, n *vhdl.Node) {
			if n.Kind == kind {
				rep.Report(engine.NodeLocation(n), msg)
			}
		})
}
