package vhdl

import "strings"

// Scanner turns a source buffer into tokens.
type Scanner struct {
	src      *SourceFile
	cur      cursor
	std      Std
	comments bool
	prev     TokenKind
	err      error
}

// Tokenize returns a scanner over src. When comments is set, comments are
// returned as TokComment tokens instead of being skipped.
func Tokenize(src *SourceFile, std Std, comments bool) *Scanner {
	return &Scanner{
		src:      src,
		cur:      newCursor(src.Buf),
		std:      std,
		comments: comments,
		prev:     TokInvalid,
	}
}

// Err returns the first lexical error, if any.
func (s *Scanner) Err() error { return s.err }

// Source returns the scanned file.
func (s *Scanner) Source() *SourceFile { return s.src }

// Text returns the bytes of tok.
func (s *Scanner) Text(tok Token) string {
	return string(s.src.Buf[tok.Span.Start:tok.Span.End])
}

func (s *Scanner) fail(off int, format string, args ...any) {
	if s.err == nil {
		s.err = errorAt(s.src, off, format, args...)
	}
}

// Next returns the next token. After the end of the buffer it keeps
// returning TokEOF.
func (s *Scanner) Next() Token {
	for {
		tok, skip := s.scan()
		if skip {
			continue
		}
		if tok.Kind != TokComment {
			s.prev = tok.Kind
		}
		return tok
	}
}

func (s *Scanner) scan() (Token, bool) {
	s.skipSpaces()
	start := s.cur.pos()
	if s.cur.eof() {
		return Token{Kind: TokEOF, Span: Span{Start: start, End: start}}, false
	}
	ch := s.cur.peek()
	switch {
	case ch == '-' && s.cur.peekAt(1) == '-':
		s.lineComment()
		return Token{Kind: TokComment, Span: s.cur.spanFrom(start)}, !s.comments
	case ch == '/' && s.cur.peekAt(1) == '*' && s.std >= Std08:
		s.blockComment(start)
		return Token{Kind: TokComment, Span: s.cur.spanFrom(start)}, !s.comments
	case isLetter(ch):
		return s.identifier(start), false
	case isDigit(ch):
		return s.number(start), false
	case ch == '"':
		s.stringLiteral(start)
		return Token{Kind: TokString, Span: s.cur.spanFrom(start)}, false
	case ch == '\\':
		s.extendedIdentifier(start)
		return Token{Kind: TokExtendedIdentifier, Span: s.cur.spanFrom(start)}, false
	case ch == '\'':
		if s.isCharacterLiteral() {
			s.cur.bump()
			s.cur.bump()
			s.cur.bump()
			return Token{Kind: TokCharacter, Span: s.cur.spanFrom(start)}, false
		}
		s.cur.bump()
		return Token{Kind: TokTick, Span: s.cur.spanFrom(start)}, false
	}
	if kind, ok := s.delimiter(); ok {
		return Token{Kind: kind, Span: s.cur.spanFrom(start)}, false
	}
	s.cur.bump()
	s.fail(start, "invalid character %q", ch)
	return Token{Kind: TokInvalid, Span: s.cur.spanFrom(start)}, false
}

func (s *Scanner) skipSpaces() {
	for !s.cur.eof() {
		switch s.cur.peek() {
		case ' ', '\t', '\v', '\f', '\r', '\n', 0xa0:
			s.cur.bump()
		default:
			return
		}
	}
}

func (s *Scanner) lineComment() {
	for !s.cur.eof() {
		ch := s.cur.peek()
		if ch == '\n' || ch == '\r' {
			return
		}
		s.cur.bump()
	}
}

func (s *Scanner) blockComment(start int) {
	s.cur.bump()
	s.cur.bump()
	for !s.cur.eof() {
		if s.cur.peek() == '*' && s.cur.peekAt(1) == '/' {
			s.cur.bump()
			s.cur.bump()
			return
		}
		s.cur.bump()
	}
	s.fail(start, "unterminated block comment")
}

// isCharacterLiteral disambiguates a tick from a character literal.
// After a name, a closing parenthesis or 'all', it is an attribute tick.
func (s *Scanner) isCharacterLiteral() bool {
	switch s.prev {
	case TokIdentifier, TokExtendedIdentifier, TokRightParen, TokRightBracket, TokAll, TokString:
		return false
	}
	return s.cur.peekAt(2) == '\'' && s.cur.off+2 < s.cur.limit
}

func (s *Scanner) identifier(start int) Token {
	for isIdentByte(s.cur.peek()) {
		s.cur.bump()
	}
	text := string(s.src.Buf[start:s.cur.pos()])
	if s.cur.peek() == '"' && isBitStringBase(text, s.std) {
		s.stringLiteral(s.cur.pos())
		return Token{Kind: TokBitString, Span: s.cur.spanFrom(start)}
	}
	if strings.Contains(text, "__") || strings.HasSuffix(text, "_") {
		s.fail(start, "invalid identifier %q", text)
	}
	if kind, ok := LookupKeyword(text, s.std); ok {
		return Token{Kind: kind, Span: s.cur.spanFrom(start)}
	}
	return Token{Kind: TokIdentifier, Span: s.cur.spanFrom(start)}
}

func isBitStringBase(text string, std Std) bool {
	switch strings.ToLower(text) {
	case "b", "o", "x":
		return true
	case "d", "ub", "uo", "ux", "sb", "so", "sx":
		return std >= Std08
	}
	return false
}

func (s *Scanner) digits(allowHex bool) {
	for {
		ch := s.cur.peek()
		if isDigit(ch) || ch == '_' || (allowHex && isHexLetter(ch)) {
			s.cur.bump()
			continue
		}
		return
	}
}

func (s *Scanner) number(start int) Token {
	kind := TokInteger
	s.digits(false)
	switch ch := s.cur.peek(); {
	case ch == '#' || ch == ':' && isHexDigit(s.cur.peekAt(1)):
		s.cur.bump()
		s.digits(true)
		if s.cur.peek() == '.' {
			kind = TokReal
			s.cur.bump()
			s.digits(true)
		}
		if !s.cur.eat(ch) {
			s.fail(start, "missing '%c' at end of based literal", ch)
		}
	case ch == '.' && isDigit(s.cur.peekAt(1)):
		kind = TokReal
		s.cur.bump()
		s.digits(false)
	case isLetter(ch) && s.std >= Std08:
		// Sized bit string literal: 12ux"abc".
		save := s.cur.pos()
		for isLetter(s.cur.peek()) {
			s.cur.bump()
		}
		base := string(s.src.Buf[save:s.cur.pos()])
		if s.cur.peek() == '"' && isBitStringBase(base, s.std) {
			s.stringLiteral(s.cur.pos())
			return Token{Kind: TokBitString, Span: s.cur.spanFrom(start)}
		}
		s.cur.reset(save)
	}
	if ch := s.cur.peek(); ch == 'e' || ch == 'E' {
		save := s.cur.pos()
		s.cur.bump()
		if c := s.cur.peek(); c == '+' || c == '-' {
			s.cur.bump()
		}
		if isDigit(s.cur.peek()) {
			s.digits(false)
		} else {
			s.cur.reset(save)
		}
	}
	return Token{Kind: kind, Span: s.cur.spanFrom(start)}
}

// stringLiteral scans a double-quoted literal starting at the quote.
func (s *Scanner) stringLiteral(start int) {
	s.cur.bump()
	for {
		if s.cur.eof() {
			s.fail(start, "unterminated string literal")
			return
		}
		ch := s.cur.peek()
		if ch == '\n' || ch == '\r' {
			s.fail(start, "string literal must end on the same line")
			return
		}
		s.cur.bump()
		if ch == '"' {
			if s.cur.peek() == '"' {
				s.cur.bump()
				continue
			}
			return
		}
	}
}

func (s *Scanner) extendedIdentifier(start int) {
	s.cur.bump()
	for {
		if s.cur.eof() {
			s.fail(start, "unterminated extended identifier")
			return
		}
		ch := s.cur.peek()
		if ch == '\n' || ch == '\r' {
			s.fail(start, "extended identifier must end on the same line")
			return
		}
		s.cur.bump()
		if ch == '\\' {
			if s.cur.peek() == '\\' {
				s.cur.bump()
				continue
			}
			return
		}
	}
}

func (s *Scanner) delimiter() (TokenKind, bool) {
	ch := s.cur.bump()
	next := s.cur.peek()
	two := func(k TokenKind) (TokenKind, bool) {
		s.cur.bump()
		return k, true
	}
	switch ch {
	case '&':
		return TokAmpersand, true
	case '(':
		return TokLeftParen, true
	case ')':
		return TokRightParen, true
	case '*':
		if next == '*' {
			return two(TokDoubleStar)
		}
		return TokStar, true
	case '+':
		return TokPlus, true
	case ',':
		return TokComma, true
	case '-':
		return TokMinus, true
	case '.':
		return TokDot, true
	case '/':
		if next == '=' {
			return two(TokNotEqual)
		}
		return TokSlash, true
	case ':':
		if next == '=' {
			return two(TokAssign)
		}
		return TokColon, true
	case ';':
		return TokSemicolon, true
	case '<':
		switch next {
		case '=':
			return two(TokLessEqual)
		case '>':
			return two(TokBox)
		case '<':
			if s.std >= Std08 {
				return two(TokDoubleLess)
			}
		}
		return TokLess, true
	case '=':
		if next == '>' {
			return two(TokArrow)
		}
		return TokEqual, true
	case '>':
		switch next {
		case '=':
			return two(TokGreaterEqual)
		case '>':
			if s.std >= Std08 {
				return two(TokDoubleGreater)
			}
		}
		return TokGreater, true
	case '|', '!':
		return TokBar, true
	case '[':
		return TokLeftBracket, true
	case ']':
		return TokRightBracket, true
	case '^':
		return TokCaret, true
	case '@':
		return TokAt, true
	case '?':
		if s.std < Std08 {
			break
		}
		switch next {
		case '?':
			return two(TokCondition)
		case '=':
			return two(TokMatchEqual)
		case '/':
			if s.cur.peekAt(1) == '=' {
				s.cur.bump()
				return two(TokMatchNotEqual)
			}
		case '<':
			if s.cur.peekAt(1) == '=' {
				s.cur.bump()
				return two(TokMatchLessEqual)
			}
			return two(TokMatchLess)
		case '>':
			if s.cur.peekAt(1) == '=' {
				s.cur.bump()
				return two(TokMatchGreaterEqual)
			}
			return two(TokMatchGreater)
		}
	}
	s.cur.reset(s.cur.pos() - 1)
	return TokInvalid, false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= 0xc0 && b != 0xd7 && b != 0xf7
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexLetter(b byte) bool { return b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F' }

func isHexDigit(b byte) bool { return isDigit(b) || isHexLetter(b) }

func isIdentByte(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_' || b >= 0x80 && b != 0xa0
}
