package vhdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanKinds(t *testing.T, text string, std Std, comments bool) []TokenKind {
	t.Helper()
	s := Tokenize(NewSourceFile("t.vhdl", []byte(text)), std, comments)
	var out []TokenKind
	for {
		tok := s.Next()
		if tok.Kind == TokEOF {
			break
		}
		out = append(out, tok.Kind)
	}
	require.NoError(t, s.Err())
	return out
}

func TestScannerTokens(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		std      Std
		comments bool
		want     []TokenKind
	}{
		{"attribute tick", "a'length", Std93c, false,
			[]TokenKind{TokIdentifier, TokTick, TokIdentifier}},
		{"character literal", "x <= '1';", Std93c, false,
			[]TokenKind{TokIdentifier, TokLessEqual, TokCharacter, TokSemicolon}},
		{"character in call", "f('a')", Std93c, false,
			[]TokenKind{TokIdentifier, TokLeftParen, TokCharacter, TokRightParen}},
		{"tick after paren", "f(x)'range", Std93c, false,
			[]TokenKind{TokIdentifier, TokLeftParen, TokIdentifier, TokRightParen, TokTick, TokRange}},
		{"comment kept", "-- hi\nx", Std93c, true,
			[]TokenKind{TokComment, TokIdentifier}},
		{"comment skipped", "-- hi\nx", Std93c, false,
			[]TokenKind{TokIdentifier}},
		{"block comment in 08", "/* c */ x", Std08, true,
			[]TokenKind{TokComment, TokIdentifier}},
		{"literals", `x"FF" 16#ff# 1.5e3 1_000 "str"`, Std93c, false,
			[]TokenKind{TokBitString, TokInteger, TokReal, TokInteger, TokString}},
		{"extended identifier", `\ext id\`, Std93c, false,
			[]TokenKind{TokExtendedIdentifier}},
		{"keywords ignore case", "ENTITY e IS", Std93c, false,
			[]TokenKind{TokEntity, TokIdentifier, TokIs}},
		{"matching operator", "a ?= b", Std08, false,
			[]TokenKind{TokIdentifier, TokMatchEqual, TokIdentifier}},
		{"compound delimiters", ":= => /= <= >= <> **", Std93c, false,
			[]TokenKind{TokAssign, TokArrow, TokNotEqual, TokLessEqual, TokGreaterEqual, TokBox, TokDoubleStar}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanKinds(t, tt.text, tt.std, tt.comments))
		})
	}
}

func TestScannerKeywordsByStandard(t *testing.T) {
	assert.Equal(t, []TokenKind{TokIdentifier}, scanKinds(t, "protected", Std93c, false))
	assert.Equal(t, []TokenKind{TokProtected}, scanKinds(t, "protected", Std00, false))
	assert.Equal(t, []TokenKind{TokIdentifier}, scanKinds(t, "xnor", Std87, false))
	assert.Equal(t, []TokenKind{TokXnor}, scanKinds(t, "xnor", Std93, false))
}

func TestScannerSpans(t *testing.T) {
	s := Tokenize(NewSourceFile("t.vhdl", []byte("entity foo")), Std93c, false)
	first := s.Next()
	second := s.Next()
	assert.Equal(t, Span{Start: 0, End: 6}, first.Span)
	assert.Equal(t, Span{Start: 7, End: 10}, second.Span)
	assert.Equal(t, "foo", s.Text(second))
	assert.Equal(t, TokEOF, s.Next().Kind)
	assert.Equal(t, TokEOF, s.Next().Kind)
}

func TestScannerErrors(t *testing.T) {
	for _, text := range []string{`"abc`, "\"ab\ncd\"", `\id`, "a__b", "a$"} {
		s := Tokenize(NewSourceFile("t.vhdl", []byte(text)), Std93c, false)
		for s.Next().Kind != TokEOF {
		}
		require.Error(t, s.Err(), text)
		var e *Error
		require.ErrorAs(t, s.Err(), &e)
		assert.Equal(t, "t.vhdl", e.Loc.File)
	}
}

func TestSourcePositions(t *testing.T) {
	src := NewSourceFile("f", []byte("ab\ncd\r\nef\rg"))
	tests := []struct {
		off       int
		line, col int
	}{
		{0, 1, 1}, {1, 1, 2}, {3, 2, 1}, {4, 2, 2}, {7, 3, 1}, {10, 4, 1},
	}
	for _, tt := range tests {
		line, col := src.Position(tt.off)
		assert.Equal(t, tt.line, line, "line of %d", tt.off)
		assert.Equal(t, tt.col, col, "col of %d", tt.off)
	}
	lines := src.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "cd\r\n", string(lines[1]))
	assert.Equal(t, "g", string(lines[3]))
}
