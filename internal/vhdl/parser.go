package vhdl

import (
	"errors"
	"strings"
)

// ParseMode selects what the parser records beyond the plain tree.
type ParseMode struct {
	// ExtendedLocations records keyword offsets in Node.Ext.
	ExtendedLocations bool
	// KeepParentheses keeps KParenExpr nodes around parenthesized expressions.
	KeepParentheses bool
}

// bailout is raised on the first syntax error and recovered by Parse.
type bailout struct{}

type parser struct {
	src  *SourceFile
	sc   *Scanner
	opts Options
	mode ParseMode

	tok     Token
	look    []Token
	prevEnd int
	err     error
	discard Marks
}

// Parse parses a design file. The returned KDesignFile owns the design units
// found in src, each tagged with the work library named in opts.
func Parse(src *SourceFile, opts Options, mode ParseMode) (file *Node, err error) {
	p := &parser{
		src:  src,
		sc:   Tokenize(src, opts.Std, false),
		opts: opts,
		mode: mode,
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			file, err = nil, p.err
		}
	}()
	p.next()
	file = p.designFile()
	if p.sc.Err() != nil {
		return nil, p.sc.Err()
	}
	setParents(file, nil)
	return file, nil
}

func setParents(n, parent *Node) {
	n.Parent = parent
	for _, c := range n.Children() {
		setParents(c, n)
	}
}

func (p *parser) next() {
	p.prevEnd = p.tok.Span.End
	if len(p.look) > 0 {
		p.tok = p.look[0]
		p.look = p.look[1:]
	} else {
		p.tok = p.sc.Next()
	}
	if p.tok.Kind == TokInvalid {
		p.fail(p.tok.Span.Start, "%s", p.sc.Err())
	}
}

// peek returns the token n positions after the current one.
func (p *parser) peek(n int) Token {
	for len(p.look) < n {
		p.look = append(p.look, p.sc.Next())
	}
	return p.look[n-1]
}

func (p *parser) at(k TokenKind) bool { return p.tok.Kind == k }

func (p *parser) atAny(ks ...TokenKind) bool {
	for _, k := range ks {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

func (p *parser) accept(k TokenKind) bool {
	if p.tok.Kind == k {
		p.next()
		return true
	}
	return false
}

// expect consumes a token of kind k and returns its start offset.
func (p *parser) expect(k TokenKind) int {
	pos := p.tok.Span.Start
	if p.tok.Kind != k {
		p.fail(pos, "%s expected, found %s", k, p.tok.Kind)
	}
	p.next()
	return pos
}

func (p *parser) fail(off int, format string, args ...any) {
	if p.err == nil {
		if err := p.sc.Err(); err != nil {
			var fe *Error
			if errors.As(err, &fe) {
				p.err = fe
			} else {
				p.err = err
			}
		} else {
			p.err = errorAt(p.src, off, format, args...)
		}
	}
	panic(bailout{})
}

func (p *parser) text() string {
	return string(p.src.Buf[p.tok.Span.Start:p.tok.Span.End])
}

func (p *parser) node(k Kind, pos int) *Node {
	n := &Node{Kind: k, Pos: pos, End: pos}
	if p.mode.ExtendedLocations {
		n.Ext = newMarks()
	}
	return n
}

// marks returns the node's keyword record, or a scratch record when
// extended locations are off.
func (p *parser) marks(n *Node) *Marks {
	if n.Ext != nil {
		return n.Ext
	}
	return &p.discard
}

func (p *parser) finish(n *Node) *Node {
	n.End = p.prevEnd
	return n
}

// identifier consumes an identifier and returns its text and offset.
func (p *parser) identifier() (string, int) {
	pos := p.tok.Span.Start
	if !p.atAny(TokIdentifier, TokExtendedIdentifier) {
		p.fail(pos, "identifier expected, found %s", p.tok.Kind)
	}
	s := p.text()
	p.next()
	return s, pos
}

// designator consumes an identifier or an operator symbol.
func (p *parser) designator() (string, int) {
	if p.at(TokString) {
		s, pos := p.text(), p.tok.Span.Start
		p.next()
		return s, pos
	}
	return p.identifier()
}

// endOf parses "end [kws] [label]" and records the end position on n.
// When required is false the keywords are optional.
func (p *parser) endOf(n *Node, required bool, kws ...TokenKind) {
	p.marks(n).End = p.expect(TokEnd)
	if len(kws) > 0 {
		if required || p.at(kws[0]) {
			for _, k := range kws {
				p.expect(k)
			}
		}
	}
	if p.atAny(TokIdentifier, TokExtendedIdentifier, TokString, TokCharacter) {
		label := p.text()
		if n.Ident != "" && !strings.EqualFold(label, n.Ident) && !p.opts.Relaxed {
			p.fail(p.tok.Span.Start, "misspelling, %q expected", n.Ident)
		}
		n.EndLabel = true
		p.next()
	}
}

func (p *parser) designFile() *Node {
	file := p.node(KDesignFile, 0)
	file.Unit = &UnitInfo{Src: p.src, Library: p.opts.Work}
	for !p.at(TokEOF) {
		file.Units = append(file.Units, p.designUnit())
	}
	return p.finish(file)
}

func (p *parser) designUnit() *Node {
	du := p.node(KDesignUnit, p.tok.Span.Start)
	du.Unit = &UnitInfo{Src: p.src, Library: p.opts.Work}
	for {
		switch p.tok.Kind {
		case TokLibrary:
			du.Context = append(du.Context, p.libraryClause()...)
			continue
		case TokUse:
			du.Context = append(du.Context, p.useClause())
			continue
		}
		break
	}
	switch p.tok.Kind {
	case TokEntity:
		du.LibUnit = p.entity()
	case TokArchitecture:
		du.LibUnit = p.architecture()
	case TokPackage:
		if p.peek(1).Kind == TokBody {
			du.LibUnit = p.packageBody()
		} else {
			du.LibUnit = p.packageDecl()
		}
	case TokConfiguration:
		du.LibUnit = p.configuration()
	default:
		p.fail(p.tok.Span.Start, "library unit expected, found %s", p.tok.Kind)
	}
	return p.finish(du)
}

func (p *parser) libraryClause() []*Node {
	pos := p.expect(TokLibrary)
	var out []*Node
	for {
		name, npos := p.identifier()
		n := p.node(KLibraryClause, pos)
		n.Ident = name
		marks := p.marks(n)
		marks.Start = npos
		out = append(out, n)
		if !p.accept(TokComma) {
			break
		}
		n.InList = true
	}
	p.expect(TokSemicolon)
	for _, n := range out {
		p.finish(n)
	}
	return out
}

func (p *parser) useClause() *Node {
	n := p.node(KUseClause, p.expect(TokUse))
	for {
		n.Names = append(n.Names, p.name())
		if !p.accept(TokComma) {
			break
		}
	}
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) entity() *Node {
	n := p.node(KEntity, p.expect(TokEntity))
	n.Ident, _ = p.identifier()
	p.marks(n).Is = p.expect(TokIs)
	p.interfaceClauses(n)
	n.Decls = p.declarations()
	if p.at(TokBegin) {
		p.marks(n).Begin = p.tok.Span.Start
		p.next()
		n.Stmts = p.concurrentStatements()
	}
	p.endOf(n, false, TokEntity)
	p.expect(TokSemicolon)
	return p.finish(n)
}

// interfaceClauses parses optional generic and port clauses of entities,
// components and blocks.
func (p *parser) interfaceClauses(n *Node) {
	if p.at(TokGeneric) && p.peek(1).Kind == TokLeftParen {
		p.marks(n).Generic = p.tok.Span.Start
		p.next()
		n.Generics = p.interfaceList(KInterfaceConstant)
		p.expect(TokSemicolon)
	}
	if p.at(TokPort) && p.peek(1).Kind == TokLeftParen {
		p.marks(n).Port = p.tok.Span.Start
		p.next()
		n.Ports = p.interfaceList(KInterfaceSignal)
		p.expect(TokSemicolon)
	}
}

func (p *parser) architecture() *Node {
	n := p.node(KArchitecture, p.expect(TokArchitecture))
	n.Ident, _ = p.identifier()
	p.expect(TokOf)
	n.EntityName = p.simpleName()
	p.marks(n).Is = p.expect(TokIs)
	n.Decls = p.declarations()
	p.marks(n).Begin = p.expect(TokBegin)
	n.Stmts = p.concurrentStatements()
	p.endOf(n, false, TokArchitecture)
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) packageDecl() *Node {
	n := p.node(KPackage, p.expect(TokPackage))
	n.Ident, _ = p.identifier()
	p.marks(n).Is = p.expect(TokIs)
	if p.at(TokGeneric) && p.peek(1).Kind == TokLeftParen {
		p.marks(n).Generic = p.tok.Span.Start
		p.next()
		n.Generics = p.interfaceList(KInterfaceConstant)
		p.expect(TokSemicolon)
	}
	n.Decls = p.declarations()
	p.endOf(n, false, TokPackage)
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) packageBody() *Node {
	n := p.node(KPackageBody, p.expect(TokPackage))
	p.expect(TokBody)
	n.Ident, _ = p.identifier()
	p.marks(n).Is = p.expect(TokIs)
	n.Decls = p.declarations()
	p.endOf(n, false, TokPackage, TokBody)
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) configuration() *Node {
	n := p.node(KConfiguration, p.expect(TokConfiguration))
	n.Ident, _ = p.identifier()
	p.expect(TokOf)
	n.EntityName = p.simpleName()
	p.marks(n).Is = p.expect(TokIs)
	n.Decls = p.declarations()
	if p.at(TokFor) {
		n.Stmts = append(n.Stmts, p.blockConfiguration())
	}
	p.endOf(n, false, TokConfiguration)
	p.expect(TokSemicolon)
	return p.finish(n)
}

// blockConfiguration keeps only the extent of a "for ... end for;" block.
// Its content is not needed by any consumer of the tree.
func (p *parser) blockConfiguration() *Node {
	n := p.node(KBlockConfiguration, p.expect(TokFor))
	depth := 1
	for depth > 0 {
		switch p.tok.Kind {
		case TokEOF:
			p.fail(p.tok.Span.Start, "'end for' expected")
		case TokFor:
			depth++
		case TokEnd:
			if p.peek(1).Kind == TokFor {
				depth--
				p.next()
			}
		}
		p.next()
	}
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) simpleName() *Node {
	name, pos := p.identifier()
	n := p.node(KSimpleName, pos)
	n.Ident = name
	return p.finish(n)
}

// interfaceList parses "( decl { ; decl } )". def is the kind used when the
// declaration carries no class keyword.
func (p *parser) interfaceList(def Kind) []*Node {
	p.expect(TokLeftParen)
	var out []*Node
	for {
		out = append(out, p.interfaceDecl(def)...)
		if !p.accept(TokSemicolon) {
			break
		}
	}
	p.expect(TokRightParen)
	return out
}

func (p *parser) interfaceDecl(def Kind) []*Node {
	kind := def
	switch p.tok.Kind {
	case TokSignal:
		kind = KInterfaceSignal
		p.next()
	case TokConstant:
		kind = KInterfaceConstant
		p.next()
	case TokVariable:
		kind = KInterfaceVariable
		p.next()
	case TokFile:
		kind = KInterfaceFile
		p.next()
	}
	decls := p.identifierList(kind)
	colon := p.expect(TokColon)
	mode, hasMode := ModeNone, false
	switch p.tok.Kind {
	case TokIn:
		mode = ModeIn
	case TokOut:
		mode = ModeOut
	case TokInout:
		mode = ModeInout
	case TokBuffer:
		mode = ModeBuffer
	case TokLinkage:
		mode = ModeLinkage
	}
	if mode != ModeNone {
		hasMode = true
		p.next()
	} else {
		mode = ModeIn
	}
	if kind == KInterfaceVariable && def == KInterfaceVariable && mode == ModeIn {
		// Procedure parameters of mode in default to the constant class.
		kind = KInterfaceConstant
	}
	typ := p.subtypeIndication()
	guarded := p.accept(TokBus)
	assign := -1
	var def0 *Node
	if p.at(TokAssign) {
		assign = p.tok.Span.Start
		p.next()
		def0 = p.expression()
	}
	for i, d := range decls {
		d.Kind = kind
		m := p.marks(d)
		m.Colon = colon
		m.Assign = assign
		d.Mode, d.HasMode = mode, hasMode
		d.Type = typ
		d.Expr = def0
		d.Guarded = guarded
		d.SharedType = i > 0
		p.finish(d)
	}
	return decls
}

// identifierList parses "id { , id }" into one declaration per identifier.
func (p *parser) identifierList(kind Kind) []*Node {
	var out []*Node
	for {
		name, pos := p.identifier()
		d := p.node(kind, pos)
		d.Ident = name
		p.marks(d).Start = pos
		out = append(out, d)
		if !p.accept(TokComma) {
			break
		}
		d.InList = true
	}
	return out
}

// startsDeclaration reports whether the current token begins a declarative item.
func (p *parser) startsDeclaration() bool {
	switch p.tok.Kind {
	case TokSignal, TokConstant, TokVariable, TokShared, TokFile, TokType, TokSubtype,
		TokComponent, TokAttribute, TokAlias, TokFunction, TokProcedure, TokPure,
		TokImpure, TokUse, TokFor, TokDisconnect, TokGroup:
		return true
	}
	return false
}

func (p *parser) declarations() []*Node {
	var out []*Node
	for p.startsDeclaration() {
		out = append(out, p.declaration()...)
	}
	return out
}

func (p *parser) declaration() []*Node {
	switch p.tok.Kind {
	case TokSignal:
		return p.objectDecl(KSignalDecl)
	case TokConstant:
		return p.objectDecl(KConstantDecl)
	case TokVariable, TokShared:
		return p.objectDecl(KVariableDecl)
	case TokFile:
		return p.fileDecl()
	case TokType:
		return []*Node{p.typeDecl()}
	case TokSubtype:
		return []*Node{p.subtypeDecl()}
	case TokComponent:
		return []*Node{p.componentDecl()}
	case TokAttribute:
		return []*Node{p.attribute()}
	case TokAlias:
		return []*Node{p.aliasDecl()}
	case TokFunction, TokProcedure, TokPure, TokImpure:
		return []*Node{p.subprogram()}
	case TokUse:
		return []*Node{p.useClause()}
	case TokFor:
		return []*Node{p.configSpec()}
	case TokDisconnect:
		return []*Node{p.disconnectSpec()}
	case TokGroup:
		return []*Node{p.group()}
	}
	p.fail(p.tok.Span.Start, "declaration expected")
	return nil
}

func (p *parser) objectDecl(kind Kind) []*Node {
	start := p.tok.Span.Start
	shared := p.accept(TokShared)
	p.next()
	decls := p.identifierList(kind)
	colon := p.expect(TokColon)
	typ := p.subtypeIndication()
	guarded := false
	if kind == KSignalDecl && p.atAny(TokRegister, TokBus) {
		guarded = true
		p.next()
	}
	assign := -1
	var init *Node
	if p.at(TokAssign) {
		assign = p.tok.Span.Start
		p.next()
		init = p.expression()
	}
	p.expect(TokSemicolon)
	for i, d := range decls {
		m := p.marks(d)
		m.Start = start
		m.Colon = colon
		m.Assign = assign
		d.Type = typ
		d.Expr = init
		d.Guarded = guarded
		d.Shared = shared
		d.SharedType = i > 0
		p.finish(d)
	}
	return decls
}

func (p *parser) fileDecl() []*Node {
	start := p.expect(TokFile)
	decls := p.identifierList(KFileDecl)
	colon := p.expect(TokColon)
	typ := p.subtypeIndication()
	var mode, name *Node
	if p.accept(TokOpen) {
		mode = p.expression()
	}
	if p.accept(TokIs) {
		if p.atAny(TokIn, TokOut) {
			p.next()
		}
		name = p.expression()
	}
	p.expect(TokSemicolon)
	for i, d := range decls {
		m := p.marks(d)
		m.Start = start
		m.Colon = colon
		d.Type = typ
		d.Left = mode
		d.Expr = name
		d.SharedType = i > 0
		p.finish(d)
	}
	return decls
}

func (p *parser) typeDecl() *Node {
	start := p.expect(TokType)
	name, pos := p.identifier()
	n := p.node(KTypeDecl, pos)
	n.Ident = name
	p.marks(n).Start = start
	if p.accept(TokSemicolon) {
		n.Type = p.finish(p.node(KIncompleteTypeDef, pos))
		return p.finish(n)
	}
	p.marks(n).Is = p.expect(TokIs)
	n.Type = p.typeDefinition(n)
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) typeDefinition(decl *Node) *Node {
	pos := p.tok.Span.Start
	switch p.tok.Kind {
	case TokLeftParen:
		def := p.node(KEnumTypeDef, pos)
		p.next()
		for {
			lit := p.node(KEnumLiteral, p.tok.Span.Start)
			if p.at(TokCharacter) {
				lit.Ident = p.text()
				p.next()
			} else {
				lit.Ident, _ = p.identifier()
			}
			def.Literals = append(def.Literals, p.finish(lit))
			if !p.accept(TokComma) {
				break
			}
		}
		p.expect(TokRightParen)
		return p.finish(def)
	case TokRange:
		p.next()
		rng := p.rangeConstraint()
		if !p.at(TokUnits) {
			def := p.node(KRangeTypeDef, pos)
			def.Expr = rng
			return p.finish(def)
		}
		def := p.node(KPhysicalTypeDef, pos)
		def.Expr = rng
		def.Ident = decl.Ident
		p.expect(TokUnits)
		for !p.at(TokEnd) {
			name, upos := p.identifier()
			u := p.node(KUnitDecl, upos)
			u.Ident = name
			if p.accept(TokEqual) {
				u.Expr = p.expression()
			}
			p.expect(TokSemicolon)
			def.Literals = append(def.Literals, p.finish(u))
		}
		p.endOf(def, true, TokUnits)
		return p.finish(def)
	case TokArray:
		def := p.node(KArrayTypeDef, pos)
		p.next()
		p.expect(TokLeftParen)
		for {
			def.Args = append(def.Args, p.indexSubtype())
			if !p.accept(TokComma) {
				break
			}
		}
		p.expect(TokRightParen)
		p.expect(TokOf)
		def.Type = p.subtypeIndication()
		return p.finish(def)
	case TokRecord:
		def := p.node(KRecordTypeDef, pos)
		def.Ident = decl.Ident
		p.next()
		for !p.at(TokEnd) {
			elems := p.identifierList(KElementDecl)
			colon := p.expect(TokColon)
			typ := p.subtypeIndication()
			p.expect(TokSemicolon)
			for i, e := range elems {
				p.marks(e).Colon = colon
				e.Type = typ
				e.SharedType = i > 0
				def.Elements = append(def.Elements, p.finish(e))
			}
		}
		p.endOf(def, true, TokRecord)
		return p.finish(def)
	case TokAccess:
		def := p.node(KAccessTypeDef, pos)
		p.next()
		def.Type = p.subtypeIndication()
		return p.finish(def)
	case TokFile:
		def := p.node(KFileTypeDef, pos)
		p.next()
		p.expect(TokOf)
		def.Type = p.name()
		return p.finish(def)
	case TokProtected:
		p.next()
		kind := KProtectedTypeDecl
		if p.accept(TokBody) {
			kind = KProtectedTypeBody
		}
		def := p.node(kind, pos)
		def.Ident = decl.Ident
		def.Decls = p.declarations()
		if kind == KProtectedTypeBody {
			p.endOf(def, true, TokProtected, TokBody)
		} else {
			p.endOf(def, true, TokProtected)
		}
		return p.finish(def)
	}
	p.fail(pos, "type definition expected")
	return nil
}

// indexSubtype parses "type_mark range <>" or a discrete range.
func (p *parser) indexSubtype() *Node {
	pos := p.tok.Span.Start
	e := p.discreteRange()
	if p.at(TokRange) && p.peek(1).Kind == TokBox {
		p.next()
		p.next()
		st := p.node(KSubtypeIndication, pos)
		st.Type = e
		st.Expr = p.finish(p.node(KBox, p.prevEnd-2))
		return p.finish(st)
	}
	return e
}

func (p *parser) subtypeDecl() *Node {
	start := p.expect(TokSubtype)
	name, pos := p.identifier()
	n := p.node(KSubtypeDecl, pos)
	n.Ident = name
	p.marks(n).Start = start
	p.marks(n).Is = p.expect(TokIs)
	n.Type = p.subtypeIndication()
	p.expect(TokSemicolon)
	return p.finish(n)
}

// subtypeIndication parses "[resolution] type_mark [constraint]".
func (p *parser) subtypeIndication() *Node {
	pos := p.tok.Span.Start
	mark := p.name()
	if p.atAny(TokIdentifier, TokExtendedIdentifier) {
		// The first name was a resolution function.
		st := p.node(KSubtypeIndication, pos)
		st.Prefix = mark
		st.Type = p.name()
		if p.accept(TokRange) {
			st.Expr = p.rangeConstraint()
		}
		return p.finish(st)
	}
	if p.at(TokRange) && p.peek(1).Kind != TokBox {
		p.next()
		st := p.node(KSubtypeIndication, pos)
		st.Type = mark
		st.Expr = p.rangeConstraint()
		return p.finish(st)
	}
	return mark
}

// rangeConstraint parses "expr (to|downto) expr" or a range attribute name.
func (p *parser) rangeConstraint() *Node {
	pos := p.tok.Span.Start
	left := p.simpleExpression()
	if p.atAny(TokTo, TokDownto) {
		r := p.node(KRange, pos)
		r.Op = p.tok.Kind
		p.next()
		r.Left = left
		r.Right = p.simpleExpression()
		return p.finish(r)
	}
	return left
}

// discreteRange parses a range or a subtype indication.
func (p *parser) discreteRange() *Node {
	return p.rangeOrExpression()
}

func (p *parser) componentDecl() *Node {
	start := p.expect(TokComponent)
	name, pos := p.identifier()
	n := p.node(KComponentDecl, pos)
	n.Ident = name
	p.marks(n).Start = start
	if p.at(TokIs) {
		p.marks(n).Is = p.tok.Span.Start
		p.next()
	}
	p.interfaceClauses(n)
	p.endOf(n, true, TokComponent)
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) attribute() *Node {
	start := p.expect(TokAttribute)
	name, pos := p.identifier()
	if p.accept(TokColon) {
		n := p.node(KAttributeDecl, pos)
		n.Ident = name
		p.marks(n).Start = start
		n.Type = p.name()
		p.expect(TokSemicolon)
		return p.finish(n)
	}
	n := p.node(KAttributeSpec, start)
	n.Ident = name
	p.expect(TokOf)
	switch p.tok.Kind {
	case TokOthers, TokAll:
		n.Names = append(n.Names, p.finish(p.node(KOthers, p.tok.Span.Start)))
		p.next()
	default:
		for {
			d := p.node(KSimpleName, p.tok.Span.Start)
			if p.atAny(TokString, TokCharacter) {
				d.Ident = p.text()
				p.next()
			} else {
				d.Ident, _ = p.identifier()
			}
			if p.at(TokLeftBracket) {
				p.signature()
			}
			n.Names = append(n.Names, p.finish(d))
			if !p.accept(TokComma) {
				break
			}
		}
	}
	p.expect(TokColon)
	// Entity class.
	p.next()
	p.marks(n).Is = p.expect(TokIs)
	n.Expr = p.expression()
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) signature() *Node {
	n := p.node(KSignature, p.expect(TokLeftBracket))
	if !p.atAny(TokRightBracket, TokReturn) {
		for {
			n.Args = append(n.Args, p.name())
			if !p.accept(TokComma) {
				break
			}
		}
	}
	if p.accept(TokReturn) {
		n.Type = p.name()
	}
	p.expect(TokRightBracket)
	return p.finish(n)
}

func (p *parser) aliasDecl() *Node {
	start := p.expect(TokAlias)
	n := p.node(KAliasDecl, p.tok.Span.Start)
	if p.atAny(TokString, TokCharacter) {
		n.Ident = p.text()
		p.next()
	} else {
		n.Ident, _ = p.identifier()
	}
	p.marks(n).Start = start
	if p.accept(TokColon) {
		n.Type = p.subtypeIndication()
	}
	p.marks(n).Is = p.expect(TokIs)
	n.Expr = p.name()
	if p.at(TokLeftBracket) {
		n.Right = p.signature()
	}
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) subprogram() *Node {
	start := p.tok.Span.Start
	pure := true
	if p.atAny(TokPure, TokImpure) {
		pure = p.at(TokPure)
		p.next()
	}
	isFunc := p.at(TokFunction)
	if !isFunc && !p.at(TokProcedure) {
		p.fail(p.tok.Span.Start, "'function' or 'procedure' expected")
	}
	p.next()
	name, pos := p.designator()
	kind := KProcedureDecl
	if isFunc {
		kind = KFunctionDecl
	}
	n := p.node(kind, pos)
	n.Ident = name
	n.Pure = pure
	p.marks(n).Start = start
	p.accept(TokParameter)
	if p.at(TokLeftParen) {
		def := KInterfaceVariable
		if isFunc {
			def = KInterfaceConstant
		}
		n.Params = p.interfaceList(def)
	}
	if isFunc {
		p.expect(TokReturn)
		n.Type = p.name()
	}
	if p.accept(TokSemicolon) {
		return p.finish(n)
	}
	if isFunc {
		n.Kind = KFunctionBody
	} else {
		n.Kind = KProcedureBody
	}
	n.HasBody = true
	p.marks(n).Is = p.expect(TokIs)
	n.Decls = p.declarations()
	p.marks(n).Begin = p.expect(TokBegin)
	n.Stmts = p.sequentialStatements()
	if isFunc {
		p.endOf(n, false, TokFunction)
	} else {
		p.endOf(n, false, TokProcedure)
	}
	p.expect(TokSemicolon)
	return p.finish(n)
}

// configSpec parses "for list : comp binding;".
func (p *parser) configSpec() *Node {
	n := p.node(KConfigSpec, p.expect(TokFor))
	switch p.tok.Kind {
	case TokOthers, TokAll:
		n.Names = append(n.Names, p.finish(p.node(KOthers, p.tok.Span.Start)))
		p.next()
	default:
		for {
			n.Names = append(n.Names, p.simpleName())
			if !p.accept(TokComma) {
				break
			}
		}
	}
	p.expect(TokColon)
	n.Target = p.name()
	p.bindingIndication(n)
	p.expect(TokSemicolon)
	if p.at(TokEnd) && p.peek(1).Kind == TokFor {
		p.next()
		p.next()
		p.expect(TokSemicolon)
	}
	return p.finish(n)
}

func (p *parser) bindingIndication(n *Node) {
	if p.accept(TokUse) {
		switch p.tok.Kind {
		case TokEntity:
			p.next()
			n.Aspect = "entity"
			n.EntityName = p.selectedName()
			if p.at(TokLeftParen) {
				p.next()
				n.Arch = p.simpleName()
				p.expect(TokRightParen)
			}
		case TokConfiguration:
			p.next()
			n.Aspect = "configuration"
			n.EntityName = p.selectedName()
		case TokOpen:
			p.next()
			n.Aspect = "open"
		}
	}
	p.mapAspects(n)
}

func (p *parser) mapAspects(n *Node) {
	if p.at(TokGeneric) && p.peek(1).Kind == TokMap {
		p.marks(n).Generic = p.tok.Span.Start
		p.next()
		p.next()
		n.GenericMap = p.associationList()
	}
	if p.at(TokPort) && p.peek(1).Kind == TokMap {
		p.marks(n).Port = p.tok.Span.Start
		p.next()
		p.next()
		n.PortMap = p.associationList()
	}
}

func (p *parser) disconnectSpec() *Node {
	n := p.node(KDisconnectSpec, p.expect(TokDisconnect))
	switch p.tok.Kind {
	case TokOthers, TokAll:
		n.Names = append(n.Names, p.finish(p.node(KOthers, p.tok.Span.Start)))
		p.next()
	default:
		for {
			n.Names = append(n.Names, p.name())
			if !p.accept(TokComma) {
				break
			}
		}
	}
	p.expect(TokColon)
	n.Type = p.name()
	p.expect(TokAfter)
	n.Expr = p.expression()
	p.expect(TokSemicolon)
	return p.finish(n)
}

func (p *parser) group() *Node {
	start := p.expect(TokGroup)
	name, pos := p.identifier()
	if p.accept(TokIs) {
		n := p.node(KGroupTemplateDecl, pos)
		n.Ident = name
		p.marks(n).Start = start
		p.expect(TokLeftParen)
		for !p.at(TokRightParen) {
			if p.at(TokEOF) {
				p.fail(p.tok.Span.Start, "')' expected")
			}
			p.next()
		}
		p.expect(TokRightParen)
		p.expect(TokSemicolon)
		return p.finish(n)
	}
	n := p.node(KGroupDecl, pos)
	n.Ident = name
	p.marks(n).Start = start
	p.expect(TokColon)
	n.Type = p.simpleName()
	p.expect(TokLeftParen)
	for {
		n.Names = append(n.Names, p.name())
		if !p.accept(TokComma) {
			break
		}
	}
	p.expect(TokRightParen)
	p.expect(TokSemicolon)
	return p.finish(n)
}
