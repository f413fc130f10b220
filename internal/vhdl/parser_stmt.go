package vhdl

// concurrentStatements parses statements up to "end", or up to the
// alternative keywords of a generate statement.
func (p *parser) concurrentStatements() []*Node {
	var out []*Node
	for !p.atAny(TokEnd, TokElsif, TokElse, TokWhen, TokEOF) {
		out = append(out, p.concurrentStatement())
	}
	return out
}

func (p *parser) label() (string, int) {
	if p.atAny(TokIdentifier, TokExtendedIdentifier) && p.peek(1).Kind == TokColon {
		name, pos := p.identifier()
		p.next()
		return name, pos
	}
	return "", -1
}

func (p *parser) concurrentStatement() *Node {
	label, lpos := p.label()
	start := p.tok.Span.Start
	pos := start
	if label != "" {
		pos = lpos
	}
	var n *Node
	postponed := p.accept(TokPostponed)
	switch p.tok.Kind {
	case TokProcess:
		n = p.process(pos)
	case TokBlock:
		n = p.block(pos)
	case TokFor:
		n = p.forGenerate(pos)
	case TokIf:
		n = p.ifGenerate(pos)
	case TokCase:
		n = p.caseGenerate(pos)
	case TokAssert:
		n = p.node(KConcurrentAssert, pos)
		p.assertion(n)
		p.expect(TokSemicolon)
	case TokEntity, TokConfiguration, TokComponent:
		n = p.instantiation(pos)
	case TokWith:
		n = p.selectedAssign(pos)
	default:
		if label != "" && p.isInstantiation() {
			n = p.instantiation(pos)
			break
		}
		n = p.simpleConcurrent(pos)
	}
	n.Ident = label
	n.Postponed = n.Postponed || postponed
	p.marks(n).Start = start
	if n.Kind == KProcessStmt || n.Kind == KBlockStmt || n.Kind == KForGenerate ||
		n.Kind == KIfGenerate || n.Kind == KCaseGenerate {
		p.checkEndLabel(n)
	}
	return p.finish(n)
}

// checkEndLabel rejects end labels on unlabeled statements.
func (p *parser) checkEndLabel(n *Node) {
	if n.EndLabel && n.Ident == "" && !p.opts.Relaxed {
		p.fail(n.Pos, "end label for an unlabeled statement")
	}
}

// isInstantiation looks past a name for a map aspect or a semicolon.
func (p *parser) isInstantiation() bool {
	i := 1
	if !p.atAny(TokIdentifier, TokExtendedIdentifier) {
		return false
	}
	for p.peek(i).Kind == TokDot {
		if k := p.peek(i + 1).Kind; k != TokIdentifier && k != TokExtendedIdentifier {
			return false
		}
		i += 2
	}
	switch p.peek(i).Kind {
	case TokGeneric, TokPort, TokSemicolon:
		return true
	}
	return false
}

func (p *parser) process(pos int) *Node {
	n := p.node(KProcessStmt, pos)
	p.expect(TokProcess)
	if p.accept(TokLeftParen) {
		if p.at(TokAll) {
			n.SensAll = true
			p.next()
		} else {
			for {
				n.Sensitivity = append(n.Sensitivity, p.name())
				if !p.accept(TokComma) {
					break
				}
			}
		}
		p.expect(TokRightParen)
	}
	if p.at(TokIs) {
		p.marks(n).Is = p.tok.Span.Start
		p.next()
	}
	n.Decls = p.declarations()
	p.marks(n).Begin = p.expect(TokBegin)
	n.Stmts = p.sequentialStatements()
	p.marks(n).End = p.expect(TokEnd)
	if p.accept(TokPostponed) {
		n.Postponed = true
	}
	p.expect(TokProcess)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
	return n
}

// statementEndLabel consumes an optional label after "end <keyword>".
func (p *parser) statementEndLabel(n *Node) {
	if p.atAny(TokIdentifier, TokExtendedIdentifier) {
		n.EndLabel = true
		p.next()
	}
}

func (p *parser) block(pos int) *Node {
	n := p.node(KBlockStmt, pos)
	p.expect(TokBlock)
	if p.accept(TokLeftParen) {
		n.Expr = p.expression()
		p.expect(TokRightParen)
	}
	if p.at(TokIs) {
		p.marks(n).Is = p.tok.Span.Start
		p.next()
	}
	if p.at(TokGeneric) && p.peek(1).Kind == TokLeftParen {
		p.marks(n).Generic = p.tok.Span.Start
		p.next()
		n.Generics = p.interfaceList(KInterfaceConstant)
		p.expect(TokSemicolon)
		if p.at(TokGeneric) && p.peek(1).Kind == TokMap {
			p.next()
			p.next()
			n.GenericMap = p.associationList()
			p.expect(TokSemicolon)
		}
	}
	if p.at(TokPort) && p.peek(1).Kind == TokLeftParen {
		p.marks(n).Port = p.tok.Span.Start
		p.next()
		n.Ports = p.interfaceList(KInterfaceSignal)
		p.expect(TokSemicolon)
		if p.at(TokPort) && p.peek(1).Kind == TokMap {
			p.next()
			p.next()
			n.PortMap = p.associationList()
			p.expect(TokSemicolon)
		}
	}
	n.Decls = p.declarations()
	p.marks(n).Begin = p.expect(TokBegin)
	n.Stmts = p.concurrentStatements()
	p.marks(n).End = p.expect(TokEnd)
	p.expect(TokBlock)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
	return n
}

// generateBody parses "[decls begin] stmts [end [label];]" shared by the
// generate statements.
func (p *parser) generateBody(n *Node) {
	if p.startsDeclaration() || p.at(TokBegin) {
		n.Decls = p.declarations()
		p.marks(n).Begin = p.expect(TokBegin)
	}
	n.Stmts = p.concurrentStatements()
	if p.at(TokEnd) && p.peek(1).Kind != TokGenerate {
		// Alternative end: "end [alternative_label];"
		p.next()
		if p.atAny(TokIdentifier, TokExtendedIdentifier) {
			p.next()
		}
		p.expect(TokSemicolon)
	}
}

func (p *parser) generateEnd(n *Node) {
	p.marks(n).End = p.expect(TokEnd)
	p.expect(TokGenerate)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
}

func (p *parser) forGenerate(pos int) *Node {
	n := p.node(KForGenerate, pos)
	p.expect(TokFor)
	n.Param = p.iterator()
	p.marks(n).Generate = p.expect(TokGenerate)
	p.generateBody(n)
	p.generateEnd(n)
	return n
}

func (p *parser) iterator() *Node {
	name, pos := p.identifier()
	it := p.node(KIteratorDecl, pos)
	it.Ident = name
	p.expect(TokIn)
	it.Expr = p.discreteRange()
	return p.finish(it)
}

func (p *parser) ifGenerate(pos int) *Node {
	n := p.node(KIfGenerate, pos)
	p.expect(TokIf)
	p.alternativeLabel()
	n.Expr = p.expression()
	p.marks(n).Generate = p.expect(TokGenerate)
	p.generateBody(n)
	tail := n
	for p.atAny(TokElsif, TokElse) {
		alt := p.node(KIfGenerate, p.tok.Span.Start)
		isElse := p.at(TokElse)
		p.next()
		if !isElse || !p.at(TokGenerate) {
			p.alternativeLabel()
		}
		if !isElse {
			alt.Expr = p.expression()
		}
		p.marks(alt).Generate = p.expect(TokGenerate)
		p.generateBody(alt)
		tail.Else = p.finish(alt)
		tail = alt
	}
	p.generateEnd(n)
	return n
}

func (p *parser) alternativeLabel() {
	if p.atAny(TokIdentifier, TokExtendedIdentifier) && p.peek(1).Kind == TokColon {
		p.next()
		p.next()
	}
}

func (p *parser) caseGenerate(pos int) *Node {
	n := p.node(KCaseGenerate, pos)
	p.expect(TokCase)
	n.Expr = p.expression()
	p.marks(n).Generate = p.expect(TokGenerate)
	for p.at(TokWhen) {
		alt := p.node(KCaseAlternative, p.tok.Span.Start)
		p.next()
		p.alternativeLabel()
		alt.Choices = p.choices()
		p.marks(alt).Arrow = p.expect(TokArrow)
		p.generateBody(alt)
		n.Alts = append(n.Alts, p.finish(alt))
	}
	p.generateEnd(n)
	return n
}

func (p *parser) instantiation(pos int) *Node {
	n := p.node(KInstanceStmt, pos)
	switch p.tok.Kind {
	case TokEntity:
		p.next()
		n.Aspect = "entity"
		n.Target = p.selectedName()
		if p.at(TokLeftParen) {
			p.next()
			n.Arch = p.simpleName()
			p.expect(TokRightParen)
		}
	case TokConfiguration:
		p.next()
		n.Aspect = "configuration"
		n.Target = p.selectedName()
	default:
		p.accept(TokComponent)
		n.Aspect = "component"
		n.Target = p.selectedName()
	}
	p.mapAspects(n)
	p.expect(TokSemicolon)
	return n
}

func (p *parser) simpleConcurrent(pos int) *Node {
	target := p.target()
	if p.at(TokLessEqual) {
		n := p.node(KConcurrentAssign, pos)
		n.Target = target
		p.marks(n).Assign = p.tok.Span.Start
		p.next()
		n.Guarded = p.accept(TokGuarded)
		p.delayMechanism(n)
		n.Alts = p.conditionalWaveforms()
		p.expect(TokSemicolon)
		return n
	}
	n := p.node(KConcurrentCall, pos)
	n.Expr = target
	p.expect(TokSemicolon)
	return n
}

// target parses a name or an aggregate used as assignment target.
func (p *parser) target() *Node {
	if p.at(TokLeftParen) {
		return p.parenthesized()
	}
	return p.name()
}

func (p *parser) delayMechanism(n *Node) {
	switch {
	case p.accept(TokTransport):
		n.Op = TokTransport
	case p.at(TokReject):
		p.next()
		n.Right = p.expression()
		p.expect(TokInertial)
		n.Op = TokInertial
	case p.accept(TokInertial):
		n.Op = TokInertial
	}
}

func (p *parser) conditionalWaveforms() []*Node {
	var out []*Node
	for {
		cw := p.node(KCondWaveform, p.tok.Span.Start)
		cw.Waveform = p.waveform()
		if p.accept(TokWhen) {
			cw.Expr = p.expression()
		}
		out = append(out, p.finish(cw))
		if cw.Expr == nil || !p.accept(TokElse) {
			break
		}
	}
	return out
}

func (p *parser) waveform() []*Node {
	if p.at(TokUnaffected) {
		p.next()
		return nil
	}
	var out []*Node
	for {
		el := p.node(KWaveformElement, p.tok.Span.Start)
		if p.at(TokNull) {
			el.Expr = p.finish(p.node(KNullLiteral, p.tok.Span.Start))
			p.next()
		} else {
			el.Expr = p.expression()
		}
		if p.accept(TokAfter) {
			el.Right = p.expression()
		}
		out = append(out, p.finish(el))
		if !p.accept(TokComma) {
			break
		}
	}
	return out
}

func (p *parser) selectedAssign(pos int) *Node {
	n := p.node(KSelectedAssign, pos)
	p.expect(TokWith)
	n.Expr = p.expression()
	p.expect(TokSelect)
	n.Target = p.target()
	p.marks(n).Assign = p.expect(TokLessEqual)
	n.Guarded = p.accept(TokGuarded)
	p.delayMechanism(n)
	for {
		sw := p.node(KSelectedWaveform, p.tok.Span.Start)
		sw.Waveform = p.waveform()
		p.expect(TokWhen)
		sw.Choices = p.choices()
		n.Alts = append(n.Alts, p.finish(sw))
		if !p.accept(TokComma) {
			break
		}
	}
	p.expect(TokSemicolon)
	return n
}

func (p *parser) assertion(n *Node) {
	p.expect(TokAssert)
	n.Expr = p.expression()
	p.reportSeverity(n)
}

func (p *parser) reportSeverity(n *Node) {
	if p.accept(TokReport) {
		n.Left = p.expression()
	}
	if p.accept(TokSeverity) {
		n.Right = p.expression()
	}
}

// choices parses "choice { | choice }".
func (p *parser) choices() []*Node {
	var out []*Node
	for {
		if p.at(TokOthers) {
			out = append(out, p.finish(p.node(KOthers, p.tok.Span.Start)))
			p.next()
		} else {
			out = append(out, p.discreteRange())
		}
		if !p.accept(TokBar) {
			break
		}
	}
	return out
}

func (p *parser) sequentialStatements() []*Node {
	var out []*Node
	for !p.atAny(TokEnd, TokElsif, TokElse, TokWhen, TokEOF) {
		out = append(out, p.sequentialStatement())
	}
	return out
}

func (p *parser) sequentialStatement() *Node {
	label, lpos := p.label()
	pos := p.tok.Span.Start
	var n *Node
	switch p.tok.Kind {
	case TokIf:
		n = p.ifStatement(label)
	case TokCase:
		n = p.caseStatement(label)
	case TokFor, TokWhile, TokLoop:
		n = p.loopStatement(label)
	case TokNext, TokExit:
		kind := KNextStmt
		if p.at(TokExit) {
			kind = KExitStmt
		}
		n = p.node(kind, pos)
		p.next()
		if p.atAny(TokIdentifier, TokExtendedIdentifier) {
			n.Target = p.simpleName()
		}
		if p.accept(TokWhen) {
			n.Expr = p.expression()
		}
		p.expect(TokSemicolon)
	case TokReturn:
		n = p.node(KReturnStmt, pos)
		p.next()
		if !p.at(TokSemicolon) {
			n.Expr = p.expression()
		}
		p.expect(TokSemicolon)
	case TokNull:
		n = p.node(KNullStmt, pos)
		p.next()
		p.expect(TokSemicolon)
	case TokWait:
		n = p.waitStatement()
	case TokAssert:
		n = p.node(KAssertStmt, pos)
		p.assertion(n)
		p.expect(TokSemicolon)
	case TokReport:
		n = p.node(KReportStmt, pos)
		p.next()
		n.Left = p.expression()
		if p.accept(TokSeverity) {
			n.Right = p.expression()
		}
		p.expect(TokSemicolon)
	default:
		n = p.assignOrCall(pos)
	}
	n.Ident = label
	// Like concurrent statements, a labeled statement starts at its label.
	p.marks(n).Start = n.Pos
	if label != "" {
		n.Pos = lpos
	}
	return p.finish(n)
}

func (p *parser) assignOrCall(pos int) *Node {
	target := p.target()
	switch p.tok.Kind {
	case TokLessEqual:
		n := p.node(KSignalAssign, pos)
		n.Target = target
		p.marks(n).Assign = p.tok.Span.Start
		p.next()
		p.delayMechanism(n)
		alts := p.conditionalWaveforms()
		if len(alts) == 1 && alts[0].Expr == nil {
			n.Waveform = alts[0].Waveform
		} else {
			n.Alts = alts
		}
		p.expect(TokSemicolon)
		return n
	case TokAssign:
		n := p.node(KVariableAssign, pos)
		n.Target = target
		p.marks(n).Assign = p.tok.Span.Start
		p.next()
		n.Expr = p.expression()
		if p.at(TokWhen) {
			// VHDL-2008 conditional variable assignment.
			cond := p.node(KCondWaveform, n.Expr.Pos)
			cond.Waveform = []*Node{n.Expr}
			p.next()
			cond.Expr = p.expression()
			n.Alts = append(n.Alts, p.finish(cond))
			for p.accept(TokElse) {
				c := p.node(KCondWaveform, p.tok.Span.Start)
				c.Waveform = []*Node{p.expression()}
				if p.accept(TokWhen) {
					c.Expr = p.expression()
				}
				n.Alts = append(n.Alts, p.finish(c))
			}
			n.Expr = nil
		}
		p.expect(TokSemicolon)
		return n
	}
	n := p.node(KCallStmt, pos)
	n.Expr = target
	p.expect(TokSemicolon)
	return n
}

func (p *parser) ifStatement(label string) *Node {
	n := p.node(KIfStmt, p.expect(TokIf))
	n.Ident = label
	n.Expr = p.expression()
	p.marks(n).Then = p.expect(TokThen)
	n.Stmts = p.sequentialStatements()
	tail := n
	for p.at(TokElsif) {
		alt := p.node(KIfStmt, p.expect(TokElsif))
		alt.Expr = p.expression()
		p.marks(alt).Then = p.expect(TokThen)
		alt.Stmts = p.sequentialStatements()
		tail.Else = p.finish(alt)
		tail = alt
	}
	if p.at(TokElse) {
		alt := p.node(KIfStmt, p.expect(TokElse))
		alt.Stmts = p.sequentialStatements()
		tail.Else = p.finish(alt)
	}
	p.marks(n).End = p.expect(TokEnd)
	p.expect(TokIf)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
	return n
}

func (p *parser) caseStatement(label string) *Node {
	n := p.node(KCaseStmt, p.expect(TokCase))
	n.Ident = label
	p.accept(TokCondition)
	n.Expr = p.expression()
	p.marks(n).Is = p.expect(TokIs)
	for p.at(TokWhen) {
		alt := p.node(KCaseAlternative, p.tok.Span.Start)
		p.next()
		alt.Choices = p.choices()
		p.marks(alt).Arrow = p.expect(TokArrow)
		alt.Stmts = p.sequentialStatements()
		n.Alts = append(n.Alts, p.finish(alt))
	}
	p.marks(n).End = p.expect(TokEnd)
	p.expect(TokCase)
	p.accept(TokCondition)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
	return n
}

func (p *parser) loopStatement(label string) *Node {
	n := p.node(KLoopStmt, p.tok.Span.Start)
	n.Ident = label
	switch p.tok.Kind {
	case TokWhile:
		p.next()
		n.Op = TokWhile
		n.Expr = p.expression()
	case TokFor:
		p.next()
		n.Op = TokFor
		n.Param = p.iterator()
	}
	p.marks(n).Loop = p.expect(TokLoop)
	n.Stmts = p.sequentialStatements()
	p.marks(n).End = p.expect(TokEnd)
	p.expect(TokLoop)
	p.statementEndLabel(n)
	p.expect(TokSemicolon)
	return n
}

func (p *parser) waitStatement() *Node {
	n := p.node(KWaitStmt, p.expect(TokWait))
	if p.accept(TokOn) {
		for {
			n.Sensitivity = append(n.Sensitivity, p.name())
			if !p.accept(TokComma) {
				break
			}
		}
	}
	if p.accept(TokUntil) {
		n.Expr = p.expression()
	}
	if p.accept(TokFor) {
		n.Right = p.expression()
	}
	p.expect(TokSemicolon)
	return n
}
