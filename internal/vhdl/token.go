package vhdl

import "strings"

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokInvalid TokenKind = iota
	TokEOF
	TokComment

	TokIdentifier
	TokExtendedIdentifier
	TokInteger
	TokReal
	TokCharacter
	TokString
	TokBitString

	// Delimiters.
	TokAmpersand    // &
	TokTick         // '
	TokLeftParen    // (
	TokRightParen   // )
	TokStar         // *
	TokDoubleStar   // **
	TokPlus         // +
	TokComma        // ,
	TokMinus        // -
	TokDot          // .
	TokSlash        // /
	TokColon        // :
	TokSemicolon    // ;
	TokLess         // <
	TokLessEqual    // <=
	TokEqual        // =
	TokNotEqual     // /=
	TokGreater      // >
	TokGreaterEqual // >=
	TokArrow        // =>
	TokAssign       // :=
	TokBox          // <>
	TokBar          // |
	TokLeftBracket  // [
	TokRightBracket // ]
	TokCaret        // ^
	TokAt           // @
	TokDoubleLess   // <<
	TokDoubleGreater
	TokCondition // ??
	TokMatchEqual
	TokMatchNotEqual
	TokMatchLess
	TokMatchLessEqual
	TokMatchGreater
	TokMatchGreaterEqual

	keywordFirst
	TokAbs
	TokAccess
	TokAfter
	TokAlias
	TokAll
	TokAnd
	TokArchitecture
	TokArray
	TokAssert
	TokAttribute
	TokBegin
	TokBlock
	TokBody
	TokBuffer
	TokBus
	TokCase
	TokComponent
	TokConfiguration
	TokConstant
	TokDisconnect
	TokDownto
	TokElse
	TokElsif
	TokEnd
	TokEntity
	TokExit
	TokFile
	TokFor
	TokFunction
	TokGenerate
	TokGeneric
	TokGuarded
	TokIf
	TokIn
	TokInout
	TokIs
	TokLabel
	TokLibrary
	TokLinkage
	TokLoop
	TokMap
	TokMod
	TokNand
	TokNew
	TokNext
	TokNor
	TokNot
	TokNull
	TokOf
	TokOn
	TokOpen
	TokOr
	TokOthers
	TokOut
	TokPackage
	TokPort
	TokProcedure
	TokProcess
	TokRange
	TokRecord
	TokRegister
	TokRem
	TokReport
	TokReturn
	TokSelect
	TokSeverity
	TokSignal
	TokSubtype
	TokThen
	TokTo
	TokTransport
	TokType
	TokUnits
	TokUntil
	TokUse
	TokVariable
	TokWait
	TokWhen
	TokWhile
	TokWith
	TokXor
	// VHDL-93
	TokGroup
	TokImpure
	TokInertial
	TokLiteral
	TokPostponed
	TokPure
	TokReject
	TokRol
	TokRor
	TokShared
	TokSla
	TokSll
	TokSra
	TokSrl
	TokUnaffected
	TokXnor
	// VHDL-2000
	TokProtected
	// VHDL-2008
	TokContext
	TokDefault
	TokForce
	TokParameter
	TokRelease
	keywordLast
)

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k > keywordFirst && k < keywordLast
}

var delimiterText = map[TokenKind]string{
	TokAmpersand:         "&",
	TokTick:              "'",
	TokLeftParen:         "(",
	TokRightParen:        ")",
	TokStar:              "*",
	TokDoubleStar:        "**",
	TokPlus:              "+",
	TokComma:             ",",
	TokMinus:             "-",
	TokDot:               ".",
	TokSlash:             "/",
	TokColon:             ":",
	TokSemicolon:         ";",
	TokLess:              "<",
	TokLessEqual:         "<=",
	TokEqual:             "=",
	TokNotEqual:          "/=",
	TokGreater:           ">",
	TokGreaterEqual:      ">=",
	TokArrow:             "=>",
	TokAssign:            ":=",
	TokBox:               "<>",
	TokBar:               "|",
	TokLeftBracket:       "[",
	TokRightBracket:      "]",
	TokCaret:             "^",
	TokAt:                "@",
	TokDoubleLess:        "<<",
	TokDoubleGreater:     ">>",
	TokCondition:         "??",
	TokMatchEqual:        "?=",
	TokMatchNotEqual:     "?/=",
	TokMatchLess:         "?<",
	TokMatchLessEqual:    "?<=",
	TokMatchGreater:      "?>",
	TokMatchGreaterEqual: "?>=",
}

var kindNames = map[TokenKind]string{
	TokInvalid:            "invalid",
	TokEOF:                "end of file",
	TokComment:            "comment",
	TokIdentifier:         "identifier",
	TokExtendedIdentifier: "extended identifier",
	TokInteger:            "integer literal",
	TokReal:               "real literal",
	TokCharacter:          "character literal",
	TokString:             "string literal",
	TokBitString:          "bit string literal",
}

func (k TokenKind) String() string {
	if s, ok := delimiterText[k]; ok {
		return "'" + s + "'"
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	if k.IsKeyword() {
		return "'" + keywordText[k] + "'"
	}
	return "token"
}

type keywordInfo struct {
	kind TokenKind
	std  Std
}

var (
	keywords    = map[string]keywordInfo{}
	keywordText = map[TokenKind]string{}
)

func addKeywords(std Std, pairs ...any) {
	for i := 0; i < len(pairs); i += 2 {
		text := pairs[i].(string)
		kind := pairs[i+1].(TokenKind)
		keywords[text] = keywordInfo{kind: kind, std: std}
		keywordText[kind] = text
	}
}

func init() {
	addKeywords(Std87,
		"abs", TokAbs, "access", TokAccess, "after", TokAfter, "alias", TokAlias,
		"all", TokAll, "and", TokAnd, "architecture", TokArchitecture, "array", TokArray,
		"assert", TokAssert, "attribute", TokAttribute, "begin", TokBegin, "block", TokBlock,
		"body", TokBody, "buffer", TokBuffer, "bus", TokBus, "case", TokCase,
		"component", TokComponent, "configuration", TokConfiguration, "constant", TokConstant,
		"disconnect", TokDisconnect, "downto", TokDownto, "else", TokElse, "elsif", TokElsif,
		"end", TokEnd, "entity", TokEntity, "exit", TokExit, "file", TokFile, "for", TokFor,
		"function", TokFunction, "generate", TokGenerate, "generic", TokGeneric,
		"guarded", TokGuarded, "if", TokIf, "in", TokIn, "inout", TokInout, "is", TokIs,
		"label", TokLabel, "library", TokLibrary, "linkage", TokLinkage, "loop", TokLoop,
		"map", TokMap, "mod", TokMod, "nand", TokNand, "new", TokNew, "next", TokNext,
		"nor", TokNor, "not", TokNot, "null", TokNull, "of", TokOf, "on", TokOn,
		"open", TokOpen, "or", TokOr, "others", TokOthers, "out", TokOut,
		"package", TokPackage, "port", TokPort, "procedure", TokProcedure,
		"process", TokProcess, "range", TokRange, "record", TokRecord,
		"register", TokRegister, "rem", TokRem, "report", TokReport, "return", TokReturn,
		"select", TokSelect, "severity", TokSeverity, "signal", TokSignal,
		"subtype", TokSubtype, "then", TokThen, "to", TokTo, "transport", TokTransport,
		"type", TokType, "units", TokUnits, "until", TokUntil, "use", TokUse,
		"variable", TokVariable, "wait", TokWait, "when", TokWhen, "while", TokWhile,
		"with", TokWith, "xor", TokXor)
	addKeywords(Std93,
		"group", TokGroup, "impure", TokImpure, "inertial", TokInertial,
		"literal", TokLiteral, "postponed", TokPostponed, "pure", TokPure,
		"reject", TokReject, "rol", TokRol, "ror", TokRor, "shared", TokShared,
		"sla", TokSla, "sll", TokSll, "sra", TokSra, "srl", TokSrl,
		"unaffected", TokUnaffected, "xnor", TokXnor)
	addKeywords(Std00, "protected", TokProtected)
	addKeywords(Std08,
		"context", TokContext, "default", TokDefault, "force", TokForce,
		"parameter", TokParameter, "release", TokRelease)
}

// LookupKeyword returns the reserved word kind for ident under std.
func LookupKeyword(ident string, std Std) (TokenKind, bool) {
	info, ok := keywords[strings.ToLower(ident)]
	if !ok || info.std > std {
		return TokIdentifier, false
	}
	return info.kind, true
}

// Token is a scanned token.
type Token struct {
	Kind TokenKind
	Span Span
}
