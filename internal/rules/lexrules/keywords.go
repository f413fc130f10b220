package lexrules

import (
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// IsLower accepts reserved words written in lower case.
func IsLower(word string) bool { return word == strings.ToLower(word) }

// KeywordCase reports reserved words rejected by accept.
func KeywordCase(accept func(string) bool) *engine.Rule {
	return engine.NewToken("KeywordCase", "reserved words are in lower case",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if !tok.IsKeyword() {
				return
			}
			if s := text(buf, loc); !accept(s) {
				rep.Reportf(loc.Location, "incorrect keyword case for %s", s)
			}
		})
}

func keywordCaseTests() []engine.TestCase {
	r := KeywordCase(IsLower)
	return []engine.TestCase{
		engine.OK("File with lower case keywords", r, "hello.vhdl"),
		engine.Fail("File with a keyword in upper case", r, "keyword.vhdl"),
		engine.Fail("File with a capitalized keyword", r, "keyword2.vhdl"),
	}
}

// ForbiddenId reports identifiers from ids, compared case-insensitively.
func ForbiddenId(ids ...string) *engine.Rule {
	forbidden := map[string]bool{}
	for _, id := range ids {
		forbidden[strings.ToLower(id)] = true
	}
	return engine.NewToken("ForbiddenId", "identifiers "+strings.Join(ids, ", ")+" are forbidden",
		func(rep engine.Reporter, loc engine.TokenLocation, buf []byte, tok vhdl.TokenKind) {
			if tok != vhdl.TokIdentifier {
				return
			}
			if s := strings.ToLower(text(buf, loc)); forbidden[s] {
				rep.Reportf(loc.Location, "use of forbidden identifier '%s'", s)
			}
		})
}

func forbiddenIdTests() []engine.TestCase {
	r := ForbiddenId("l", "o")
	return []engine.TestCase{
		engine.OK("File with no forbidden id", r, "hello.vhdl"),
		engine.Fail("File with identifier 'l'", r, "forbiddenid.vhdl"),
	}
}
