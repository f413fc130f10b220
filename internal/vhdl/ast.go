package vhdl

import "strings"

// Kind identifies a syntax tree node.
type Kind int

const (
	KInvalid Kind = iota

	// Files and units.
	KDesignFile
	KDesignUnit
	KLibraryClause
	KUseClause
	KEntity
	KArchitecture
	KPackage
	KPackageBody
	KConfiguration
	KBlockConfiguration

	// Interface declarations.
	KInterfaceConstant
	KInterfaceSignal
	KInterfaceVariable
	KInterfaceFile

	// Declarations.
	KSignalDecl
	KConstantDecl
	KVariableDecl
	KFileDecl
	KTypeDecl
	KSubtypeDecl
	KComponentDecl
	KAttributeDecl
	KAttributeSpec
	KAliasDecl
	KFunctionDecl
	KProcedureDecl
	KFunctionBody
	KProcedureBody
	KConfigSpec
	KDisconnectSpec
	KGroupTemplateDecl
	KGroupDecl
	KIteratorDecl
	KElementDecl
	KEnumLiteral
	KUnitDecl

	// Type definitions.
	KEnumTypeDef
	KRangeTypeDef
	KPhysicalTypeDef
	KArrayTypeDef
	KRecordTypeDef
	KAccessTypeDef
	KFileTypeDef
	KProtectedTypeDecl
	KProtectedTypeBody
	KIncompleteTypeDef

	// Concurrent statements.
	KProcessStmt
	KBlockStmt
	KInstanceStmt
	KConcurrentAssign
	KSelectedAssign
	KConcurrentAssert
	KConcurrentCall
	KForGenerate
	KIfGenerate
	KCaseGenerate

	// Sequential statements.
	KIfStmt
	KCaseStmt
	KLoopStmt
	KNextStmt
	KExitStmt
	KReturnStmt
	KNullStmt
	KWaitStmt
	KAssertStmt
	KReportStmt
	KSignalAssign
	KVariableAssign
	KCallStmt

	// Statement parts.
	KCondWaveform
	KSelectedWaveform
	KCaseAlternative
	KWaveformElement
	KAssociation

	// Expressions and names.
	KSimpleName
	KSelectedName
	KSelectedByAll
	KAttributeName
	KCall
	KCharLiteral
	KStringLiteral
	KBitStringLiteral
	KIntegerLiteral
	KRealLiteral
	KPhysicalLiteral
	KNullLiteral
	KOpen
	KOthers
	KBox
	KAggregate
	KParenExpr
	KBinary
	KUnary
	KRange
	KQualifiedExpr
	KAllocator
	KSubtypeIndication
	KSignature

	// KLibrary denotes a library named by a library clause.
	KLibrary
)

var kindText = map[Kind]string{
	KDesignFile: "design file", KDesignUnit: "design unit", KLibraryClause: "library clause",
	KUseClause: "use clause", KEntity: "entity", KArchitecture: "architecture",
	KPackage: "package", KPackageBody: "package body", KConfiguration: "configuration",
	KBlockConfiguration: "block configuration",
	KInterfaceConstant: "interface constant", KInterfaceSignal: "interface signal",
	KInterfaceVariable: "interface variable", KInterfaceFile: "interface file",
	KSignalDecl: "signal", KConstantDecl: "constant", KVariableDecl: "variable",
	KFileDecl: "file", KTypeDecl: "type", KSubtypeDecl: "subtype", KComponentDecl: "component",
	KAttributeDecl: "attribute declaration", KAttributeSpec: "attribute specification",
	KAliasDecl: "alias", KFunctionDecl: "function declaration", KProcedureDecl: "procedure declaration",
	KFunctionBody: "function body", KProcedureBody: "procedure body",
	KConfigSpec: "configuration specification", KDisconnectSpec: "disconnection specification",
	KGroupTemplateDecl: "group template", KGroupDecl: "group", KIteratorDecl: "iterator",
	KElementDecl: "record element", KEnumLiteral: "enumeration literal", KUnitDecl: "unit",
	KEnumTypeDef: "enumeration type", KRangeTypeDef: "range type", KPhysicalTypeDef: "physical type",
	KArrayTypeDef: "array type", KRecordTypeDef: "record type", KAccessTypeDef: "access type",
	KFileTypeDef: "file type", KProtectedTypeDecl: "protected type",
	KProtectedTypeBody: "protected type body", KIncompleteTypeDef: "incomplete type",
	KProcessStmt: "process", KBlockStmt: "block", KInstanceStmt: "instantiation",
	KConcurrentAssign: "concurrent signal assignment", KSelectedAssign: "selected signal assignment",
	KConcurrentAssert: "concurrent assertion", KConcurrentCall: "concurrent procedure call",
	KForGenerate: "for generate", KIfGenerate: "if generate", KCaseGenerate: "case generate",
	KIfStmt: "if", KCaseStmt: "case", KLoopStmt: "loop", KNextStmt: "next", KExitStmt: "exit",
	KReturnStmt: "return", KNullStmt: "null", KWaitStmt: "wait", KAssertStmt: "assertion",
	KReportStmt: "report", KSignalAssign: "signal assignment", KVariableAssign: "variable assignment",
	KCallStmt: "procedure call", KCondWaveform: "conditional waveform",
	KSelectedWaveform: "selected waveform", KCaseAlternative: "case alternative",
	KWaveformElement: "waveform element", KAssociation: "association",
	KSimpleName: "simple name", KSelectedName: "selected name", KSelectedByAll: "selected by all name",
	KAttributeName: "attribute name", KCall: "parenthesis name", KCharLiteral: "character literal",
	KStringLiteral: "string literal", KBitStringLiteral: "bit string literal",
	KIntegerLiteral: "integer literal", KRealLiteral: "real literal",
	KPhysicalLiteral: "physical literal", KNullLiteral: "null literal", KOpen: "open",
	KOthers: "others", KBox: "box", KAggregate: "aggregate", KParenExpr: "parenthesis expression",
	KBinary: "binary operator", KUnary: "unary operator", KRange: "range",
	KQualifiedExpr: "qualified expression", KAllocator: "allocator",
	KSubtypeIndication: "subtype indication", KSignature: "signature", KLibrary: "library",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "invalid"
}

// Mode is the mode of an interface declaration.
type Mode int

const (
	ModeNone Mode = iota
	ModeIn
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInout:
		return "inout"
	case ModeBuffer:
		return "buffer"
	case ModeLinkage:
		return "linkage"
	}
	return ""
}

// Marks holds the offsets of keywords and delimiters recorded when the
// parser runs with extended locations. A value of -1 means absent.
type Marks struct {
	Start    int
	Is       int
	Begin    int
	End      int
	Then     int
	Loop     int
	Generate int
	Colon    int
	Assign   int
	Arrow    int
	RParen   int
	Generic  int
	Port     int
}

func newMarks() *Marks {
	return &Marks{
		Start: -1, Is: -1, Begin: -1, End: -1, Then: -1, Loop: -1, Generate: -1,
		Colon: -1, Assign: -1, Arrow: -1, RParen: -1, Generic: -1, Port: -1,
	}
}

// UnitState is the analysis state of a design unit.
type UnitState int

const (
	UnitParsed UnitState = iota
	UnitAnalyzing
	UnitAnalyzed
)

// UnitInfo is attached to KDesignUnit nodes.
type UnitInfo struct {
	Src     *SourceFile
	Library string
	State   UnitState
	// Deps lists the design units this unit refers to, in first-use order.
	Deps []*Node

	scope *scope
}

// Node is a syntax tree node. Which fields are set depends on Kind.
type Node struct {
	Kind   Kind
	Ident  string
	Pos    int
	End    int
	Parent *Node
	Ext    *Marks
	// Suffix is the offset of the suffix of a selected name; Pos is the
	// start of its prefix.
	Suffix int

	Unit    *UnitInfo
	LibUnit *Node

	Context     []*Node
	Units       []*Node
	Generics    []*Node
	Ports       []*Node
	Params      []*Node
	Decls       []*Node
	Stmts       []*Node
	Alts        []*Node
	Choices     []*Node
	GenericMap  []*Node
	PortMap     []*Node
	Sensitivity []*Node
	Names       []*Node
	Args        []*Node
	Literals    []*Node
	Elements    []*Node
	Waveform    []*Node

	EntityName *Node
	Type       *Node
	Expr       *Node
	Target     *Node
	Formal     *Node
	Actual     *Node
	Prefix     *Node
	Left       *Node
	Right      *Node
	Param      *Node
	Else       *Node

	Op        TokenKind
	Mode      Mode
	HasMode   bool
	EndLabel  bool
	Guarded   bool
	Postponed bool
	Shared    bool
	SensAll   bool
	Pure      bool
	HasBody   bool
	// InList is set on declarations followed by another identifier of the
	// same identifier list.
	InList bool
	// SharedType is set on declarations of an identifier list other than
	// the first one; their Type, Left and Expr are owned by the first
	// declaration.
	SharedType bool
	// Aspect is the instantiated unit kind: "component", "entity" or
	// "configuration".
	Aspect string
	// Arch names the architecture of an entity aspect.
	Arch *Node

	// Ref is the declaration a name denotes, set by the resolver.
	Ref *Node
	// Spec links a subprogram body to its earlier declaration.
	Spec *Node
}

// Name returns the lower-cased identifier.
func (n *Node) Name() string {
	if strings.HasPrefix(n.Ident, "\\") || strings.HasPrefix(n.Ident, "'") {
		return n.Ident
	}
	return strings.ToLower(n.Ident)
}

// HasLabel reports whether a statement carries a label.
func (n *Node) HasLabel() bool { return n.Ident != "" }

// Source returns the file the node was parsed from.
func (n *Node) Source() *SourceFile {
	for p := n; p != nil; p = p.Parent {
		if p.Unit != nil && p.Unit.Src != nil {
			return p.Unit.Src
		}
	}
	return nil
}

// DesignUnit returns the design unit containing n.
func (n *Node) DesignUnit() *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Kind == KDesignUnit {
			return p
		}
	}
	return nil
}

// Mark returns the offset of a recorded keyword, or -1.
func (n *Node) Mark(get func(*Marks) int) int {
	if n.Ext == nil {
		return -1
	}
	return get(n.Ext)
}

// IsDeclaration reports whether the node declares a named entity.
func (n *Node) IsDeclaration() bool {
	switch n.Kind {
	case KInterfaceConstant, KInterfaceSignal, KInterfaceVariable, KInterfaceFile,
		KSignalDecl, KConstantDecl, KVariableDecl, KFileDecl, KTypeDecl, KSubtypeDecl,
		KComponentDecl, KAttributeDecl, KAliasDecl, KFunctionDecl, KProcedureDecl,
		KFunctionBody, KProcedureBody, KGroupTemplateDecl, KGroupDecl, KIteratorDecl,
		KElementDecl, KEnumLiteral, KUnitDecl, KEntity, KArchitecture, KPackage,
		KPackageBody, KConfiguration:
		return true
	}
	return false
}

// IsSubprogram reports whether the node is a subprogram declaration or body.
func (n *Node) IsSubprogram() bool {
	switch n.Kind {
	case KFunctionDecl, KProcedureDecl, KFunctionBody, KProcedureBody:
		return true
	}
	return false
}

// IsProcess reports whether the node is a process statement.
func (n *Node) IsProcess() bool { return n.Kind == KProcessStmt }

// TypeMark returns the type mark of a subtype indication, or nil.
func TypeMark(n *Node) *Node {
	for n != nil {
		switch n.Kind {
		case KSimpleName, KSelectedName:
			return n
		case KCall, KAttributeName:
			n = n.Prefix
		case KSubtypeIndication:
			n = n.Type
		default:
			return nil
		}
	}
	return nil
}

// Children returns the direct children of n in source order.
func (n *Node) Children() []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addAll := func(cs []*Node) {
		for _, c := range cs {
			add(c)
		}
	}
	addAll(n.Context)
	addAll(n.Units)
	add(n.LibUnit)
	add(n.EntityName)
	add(n.Arch)
	add(n.Prefix)
	add(n.Formal)
	add(n.Target)
	add(n.Param)
	addAll(n.Generics)
	addAll(n.Ports)
	addAll(n.Params)
	addAll(n.GenericMap)
	addAll(n.PortMap)
	addAll(n.Names)
	addAll(n.Sensitivity)
	addAll(n.Choices)
	if !n.SharedType {
		add(n.Type)
		add(n.Left)
		add(n.Expr)
	}
	add(n.Right)
	add(n.Actual)
	addAll(n.Args)
	addAll(n.Literals)
	addAll(n.Elements)
	addAll(n.Waveform)
	addAll(n.Decls)
	addAll(n.Stmts)
	addAll(n.Alts)
	add(n.Else)
	return out
}

// Walk calls fn for n and every descendant in depth-first order. When fn
// returns false the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
