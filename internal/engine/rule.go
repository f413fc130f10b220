package engine

import "github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"

// Kind is the representation a rule inspects.
type Kind int

const (
	KindInvalid Kind = iota
	KindWholeFile
	KindToken
	KindSyntaxUnit
	KindSyntaxNode
	KindSemanticUnit
	KindSemanticNode
	KindSynthesisUnit
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindWholeFile:
		return "file"
	case KindToken:
		return "token"
	case KindSyntaxUnit:
		return "syntax"
	case KindSyntaxNode:
		return "syntax node"
	case KindSemanticUnit:
		return "semantic"
	case KindSemanticNode:
		return "semantic node"
	case KindSynthesisUnit:
		return "synthesis"
	}
	return "invalid"
}

// Check signatures, one per kind.
type (
	// WholeFileFunc receives the lines of a file, terminators included.
	WholeFileFunc func(rep Reporter, loc Location, lines [][]byte)
	// TokenFunc is called for every token, comments and the final EOF included.
	TokenFunc func(rep Reporter, loc TokenLocation, buf []byte, tok vhdl.TokenKind)
	// SyntaxUnitFunc receives the unanalyzed design file.
	SyntaxUnitFunc func(rep Reporter, in *Input, file *vhdl.Node)
	// NodeFunc is called for every node of a tree.
	NodeFunc func(rep Reporter, in *Input, n *vhdl.Node)
	// UnitFunc receives one analyzed design unit.
	UnitFunc func(rep Reporter, in *Input, du *vhdl.Node)
)

// Rule is one named check. Exactly one of the check functions is set, the
// one matching Kind.
type Rule struct {
	Name string
	Kind Kind
	// Doc is a one-line description used by listings.
	Doc string

	wholeFile  WholeFileFunc
	token      TokenFunc
	syntaxUnit SyntaxUnitFunc
	node       NodeFunc
	unit       UnitFunc
}

func NewWholeFile(name, doc string, fn WholeFileFunc) *Rule {
	return &Rule{Name: name, Kind: KindWholeFile, Doc: doc, wholeFile: fn}
}

func NewToken(name, doc string, fn TokenFunc) *Rule {
	return &Rule{Name: name, Kind: KindToken, Doc: doc, token: fn}
}

func NewSyntaxUnit(name, doc string, fn SyntaxUnitFunc) *Rule {
	return &Rule{Name: name, Kind: KindSyntaxUnit, Doc: doc, syntaxUnit: fn}
}

func NewSyntaxNode(name, doc string, fn NodeFunc) *Rule {
	return &Rule{Name: name, Kind: KindSyntaxNode, Doc: doc, node: fn}
}

func NewSemanticUnit(name, doc string, fn UnitFunc) *Rule {
	return &Rule{Name: name, Kind: KindSemanticUnit, Doc: doc, unit: fn}
}

func NewSemanticNode(name, doc string, fn NodeFunc) *Rule {
	return &Rule{Name: name, Kind: KindSemanticNode, Doc: doc, node: fn}
}

func NewSynthesisUnit(name, doc string, fn UnitFunc) *Rule {
	return &Rule{Name: name, Kind: KindSynthesisUnit, Doc: doc, unit: fn}
}

// As renames the rule. An empty name keeps the current one.
func (r *Rule) As(name string) *Rule {
	if name != "" {
		r.Name = name
	}
	return r
}

// valid reports whether the check function matching Kind is present.
func (r *Rule) valid() bool {
	if r == nil || r.Name == "" {
		return false
	}
	switch r.Kind {
	case KindWholeFile:
		return r.wholeFile != nil
	case KindToken:
		return r.token != nil
	case KindSyntaxUnit:
		return r.syntaxUnit != nil
	case KindSyntaxNode, KindSemanticNode:
		return r.node != nil
	case KindSemanticUnit, KindSynthesisUnit:
		return r.unit != nil
	}
	return false
}
