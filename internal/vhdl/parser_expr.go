package vhdl

func isLogicalOp(k TokenKind) bool {
	switch k {
	case TokAnd, TokOr, TokXor, TokNand, TokNor, TokXnor:
		return true
	}
	return false
}

func isRelationalOp(k TokenKind) bool {
	switch k {
	case TokEqual, TokNotEqual, TokLess, TokLessEqual, TokGreater, TokGreaterEqual,
		TokMatchEqual, TokMatchNotEqual, TokMatchLess, TokMatchLessEqual,
		TokMatchGreater, TokMatchGreaterEqual:
		return true
	}
	return false
}

func isShiftOp(k TokenKind) bool {
	switch k {
	case TokSll, TokSrl, TokSla, TokSra, TokRol, TokRor:
		return true
	}
	return false
}

func isAddingOp(k TokenKind) bool {
	return k == TokPlus || k == TokMinus || k == TokAmpersand
}

func isMultiplyingOp(k TokenKind) bool {
	switch k {
	case TokStar, TokSlash, TokMod, TokRem:
		return true
	}
	return false
}

func (p *parser) binary(left *Node, next func() *Node) *Node {
	n := p.node(KBinary, p.tok.Span.Start)
	n.Op = p.tok.Kind
	p.next()
	n.Left = left
	n.Right = next()
	n.End = p.prevEnd
	return n
}

func (p *parser) expression() *Node {
	if p.at(TokCondition) {
		n := p.node(KUnary, p.tok.Span.Start)
		n.Op = TokCondition
		p.next()
		n.Expr = p.primary()
		return p.finish(n)
	}
	left := p.relation()
	for isLogicalOp(p.tok.Kind) {
		left = p.binary(left, p.relation)
	}
	return left
}

func (p *parser) relation() *Node {
	left := p.shiftExpression()
	if isRelationalOp(p.tok.Kind) {
		left = p.binary(left, p.shiftExpression)
	}
	return left
}

func (p *parser) shiftExpression() *Node {
	left := p.simpleExpression()
	if isShiftOp(p.tok.Kind) {
		left = p.binary(left, p.simpleExpression)
	}
	return left
}

func (p *parser) simpleExpression() *Node {
	var left *Node
	if p.atAny(TokPlus, TokMinus) {
		n := p.node(KUnary, p.tok.Span.Start)
		n.Op = p.tok.Kind
		p.next()
		n.Expr = p.term()
		left = p.finish(n)
	} else {
		left = p.term()
	}
	for isAddingOp(p.tok.Kind) {
		left = p.binary(left, p.term)
	}
	return left
}

func (p *parser) term() *Node {
	left := p.factor()
	for isMultiplyingOp(p.tok.Kind) {
		left = p.binary(left, p.factor)
	}
	return left
}

func (p *parser) factor() *Node {
	if p.atAny(TokAbs, TokNot) || p.opts.Std >= Std08 && isLogicalOp(p.tok.Kind) {
		n := p.node(KUnary, p.tok.Span.Start)
		n.Op = p.tok.Kind
		p.next()
		n.Expr = p.primary()
		return p.finish(n)
	}
	left := p.primary()
	if p.at(TokDoubleStar) {
		left = p.binary(left, p.primary)
	}
	return left
}

func (p *parser) primary() *Node {
	pos := p.tok.Span.Start
	switch p.tok.Kind {
	case TokInteger, TokReal:
		kind := KIntegerLiteral
		if p.at(TokReal) {
			kind = KRealLiteral
		}
		lit := p.node(kind, pos)
		lit.Ident = p.text()
		p.next()
		p.finish(lit)
		if p.atAny(TokIdentifier, TokExtendedIdentifier) {
			phys := p.node(KPhysicalLiteral, pos)
			phys.Left = lit
			phys.Prefix = p.simpleName()
			return p.finish(phys)
		}
		return lit
	case TokIdentifier, TokExtendedIdentifier:
		return p.name()
	case TokString:
		if p.peek(1).Kind == TokLeftParen {
			return p.name()
		}
		lit := p.node(KStringLiteral, pos)
		lit.Ident = p.text()
		p.next()
		return p.finish(lit)
	case TokBitString:
		lit := p.node(KBitStringLiteral, pos)
		lit.Ident = p.text()
		p.next()
		return p.finish(lit)
	case TokCharacter:
		lit := p.node(KCharLiteral, pos)
		lit.Ident = p.text()
		p.next()
		return p.finish(lit)
	case TokNull:
		p.next()
		return p.finish(p.node(KNullLiteral, pos))
	case TokLeftParen:
		return p.parenthesized()
	case TokNew:
		n := p.node(KAllocator, pos)
		p.next()
		n.Expr = p.subtypeIndication()
		return p.finish(n)
	}
	p.fail(pos, "expression expected, found %s", p.tok.Kind)
	return nil
}

// selectedName parses "id { . id }" without call or attribute suffixes.
func (p *parser) selectedName() *Node {
	n := p.simpleName()
	for p.at(TokDot) {
		p.next()
		s := p.node(KSelectedName, n.Pos)
		s.Suffix = p.tok.Span.Start
		s.Prefix = n
		s.Ident, _ = p.identifier()
		n = p.finish(s)
	}
	return n
}

// name parses a name with its selected, indexed, attribute and qualified
// expression suffixes.
func (p *parser) name() *Node {
	pos := p.tok.Span.Start
	var n *Node
	switch p.tok.Kind {
	case TokIdentifier, TokExtendedIdentifier:
		n = p.simpleName()
	case TokString:
		n = p.node(KStringLiteral, pos)
		n.Ident = p.text()
		p.next()
		p.finish(n)
	case TokCharacter:
		n = p.node(KCharLiteral, pos)
		n.Ident = p.text()
		p.next()
		p.finish(n)
	default:
		p.fail(pos, "name expected, found %s", p.tok.Kind)
	}
	for {
		switch p.tok.Kind {
		case TokDot:
			p.next()
			if p.at(TokAll) {
				s := p.node(KSelectedByAll, n.Pos)
				s.Suffix = p.tok.Span.Start
				s.Prefix = n
				p.next()
				n = p.finish(s)
				continue
			}
			s := p.node(KSelectedName, n.Pos)
			s.Suffix = p.tok.Span.Start
			s.Prefix = n
			if p.atAny(TokCharacter, TokString) {
				s.Ident = p.text()
				p.next()
			} else {
				s.Ident, _ = p.identifier()
			}
			n = p.finish(s)
		case TokLeftParen:
			c := p.node(KCall, n.Pos)
			c.Prefix = n
			c.Args = p.associationList()
			n = p.finish(c)
		case TokTick:
			p.next()
			if p.at(TokLeftParen) {
				q := p.node(KQualifiedExpr, n.Pos)
				q.Prefix = n
				q.Expr = p.parenthesized()
				n = p.finish(q)
				continue
			}
			a := p.node(KAttributeName, p.tok.Span.Start)
			a.Prefix = n
			if p.atAny(TokIdentifier, TokExtendedIdentifier) || p.tok.Kind.IsKeyword() {
				a.Ident = p.text()
				p.next()
			} else {
				p.fail(p.tok.Span.Start, "attribute designator expected")
			}
			if p.at(TokLeftParen) {
				p.next()
				for {
					a.Args = append(a.Args, p.expression())
					if !p.accept(TokComma) {
						break
					}
				}
				p.expect(TokRightParen)
			}
			n = p.finish(a)
		default:
			return n
		}
	}
}

// rangeOrExpression parses an expression optionally followed by a direction.
func (p *parser) rangeOrExpression() *Node {
	pos := p.tok.Span.Start
	left := p.expression()
	switch {
	case p.atAny(TokTo, TokDownto):
		r := p.node(KRange, pos)
		r.Op = p.tok.Kind
		p.next()
		r.Left = left
		r.Right = p.simpleExpression()
		return p.finish(r)
	case p.at(TokRange) && p.peek(1).Kind != TokBox:
		p.next()
		st := p.node(KSubtypeIndication, pos)
		st.Type = left
		st.Expr = p.rangeConstraint()
		return p.finish(st)
	}
	return left
}

// associationList parses "( [formal =>] actual { , ... } )".
func (p *parser) associationList() []*Node {
	p.expect(TokLeftParen)
	var out []*Node
	for {
		a := p.node(KAssociation, p.tok.Span.Start)
		actual := p.actual()
		if p.at(TokArrow) {
			a.Formal = actual
			p.marks(a).Arrow = p.tok.Span.Start
			p.next()
			actual = p.actual()
		}
		a.Actual = actual
		out = append(out, p.finish(a))
		if !p.accept(TokComma) {
			break
		}
	}
	p.expect(TokRightParen)
	return out
}

func (p *parser) actual() *Node {
	switch p.tok.Kind {
	case TokOpen:
		n := p.node(KOpen, p.tok.Span.Start)
		p.next()
		return p.finish(n)
	case TokInertial:
		p.next()
	}
	return p.rangeOrExpression()
}

// parenthesized parses an aggregate or a parenthesized expression.
func (p *parser) parenthesized() *Node {
	lpos := p.expect(TokLeftParen)
	var elems []*Node
	positional := true
	for {
		a := p.node(KAssociation, p.tok.Span.Start)
		var choices []*Node
		for {
			if p.at(TokOthers) {
				choices = append(choices, p.finish(p.node(KOthers, p.tok.Span.Start)))
				p.next()
			} else {
				choices = append(choices, p.rangeOrExpression())
			}
			if !p.accept(TokBar) {
				break
			}
		}
		if p.at(TokArrow) {
			positional = false
			p.marks(a).Arrow = p.tok.Span.Start
			p.next()
			a.Choices = choices
			a.Actual = p.expression()
		} else {
			if len(choices) != 1 || choices[0].Kind == KOthers {
				p.fail(p.tok.Span.Start, "'=>' expected")
			}
			a.Actual = choices[0]
		}
		elems = append(elems, p.finish(a))
		if !p.accept(TokComma) {
			break
		}
	}
	rpos := p.expect(TokRightParen)
	if positional && len(elems) == 1 && elems[0].Actual.Kind != KRange {
		inner := elems[0].Actual
		if !p.mode.KeepParentheses {
			return inner
		}
		n := p.node(KParenExpr, lpos)
		n.Expr = inner
		p.marks(n).RParen = rpos
		return p.finish(n)
	}
	agg := p.node(KAggregate, lpos)
	agg.Elements = elems
	return p.finish(agg)
}
