// Package ruleset assembles the rules of the rule packages into named
// rule sets driven by the configuration.
package ruleset

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/policy"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/filerules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/lexrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/semrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/syntaxrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/synthrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Default is the rule set used when none is named.
const Default = "ohwr"

var sets = map[string]func(*config.Config) []*engine.Rule{
	"ohwr": ohwr,
	"full": full,
}

// Names returns the known rule set names.
func Names() []string {
	out := make([]string, 0, len(sets))
	for name := range sets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build returns the rules of the named set, without those the
// configuration turns off, followed by the policy rules.
func Build(ctx context.Context, name string, cfg *config.Config) ([]*engine.Rule, error) {
	set, ok := sets[name]
	if !ok {
		return nil, &engine.ConfigError{Msg: fmt.Sprintf("unknown rule set %q (known: %s)", name, strings.Join(Names(), ", "))}
	}
	var out []*engine.Rule
	for _, r := range set(cfg) {
		if cfg.IsRuleEnabled(r.Name) {
			out = append(out, r)
		}
	}
	if cfg.Policies != "" {
		prs, err := policy.Rules(ctx, cfg.Policies)
		if err != nil {
			return nil, &engine.ConfigError{Msg: "loading policies", Err: err}
		}
		for _, r := range prs {
			if cfg.IsRuleEnabled(r.Name) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// OHWR returns the rules of the OHWR coding style.
func OHWR(cfg *config.Config) ([]*engine.Rule, error) {
	return Build(context.Background(), "ohwr", cfg)
}

func ohwr(cfg *config.Config) []*engine.Rule {
	typeName := func(s string) bool { return len(s) >= 3 && strings.HasPrefix(s, "t_") }
	return []*engine.Rule{
		// File rules.
		syntaxrules.FileName(cfg.Style.Extension),
		syntaxrules.OneModule("EA", "C", "P", "PB").As("FileContent"),
		filerules.Header().As("FileHeader"),
		filerules.LineLength(cfg.Style.LineLength).As("LineLength"),
		filerules.Newline().As("EndOfLine"),
		filerules.CharSet(),
		filerules.NoTAB(),
		filerules.BlankLine().As("LastLine"),
		filerules.NewlineEOF().As("LastLine"),
		filerules.NoSpaceEOL().As("TrailingSpaces"),

		// Format rules.
		lexrules.Comments(),
		syntaxrules.Indentation(cfg.Style.IndentWidth),
		lexrules.Spaces(),
		syntaxrules.Context(),
		syntaxrules.ContextUse().As("UseClause"),
		syntaxrules.EntityLayout(),
		syntaxrules.ComplexStmtLayout(),
		syntaxrules.SubprgIsLayout(),
		syntaxrules.EndLabel(),
		syntaxrules.Instantiation(),
		syntaxrules.ProcessLabel(),
		syntaxrules.Parenthesis(),

		// Identifiers.
		lexrules.KeywordCase(lexrules.IsLower).As("Keywords"),
		syntaxrules.NameDecl(vhdl.KArchitecture, func(s string) bool { return s == "arch" }).As("ArchNames"),
		syntaxrules.NameDecl(vhdl.KConstantDecl, func(s string) bool {
			return len(s) >= 3 && strings.HasPrefix(s, "c_") && isUpper(s[2:])
		}).As("Constants"),
		syntaxrules.GenericsName(),
		syntaxrules.PortsName(),
		syntaxrules.SignalsName(),
		syntaxrules.NameDecl(vhdl.KTypeDecl, typeName).As("TypesName"),
		syntaxrules.NameDecl(vhdl.KSubtypeDecl, typeName).As("TypesName"),
		syntaxrules.NameDecl(vhdl.KPackage, func(s string) bool {
			return len(s) >= 4 && strings.HasSuffix(s, "_pkg")
		}).As("PackagesName"),

		// Language subset.
		syntaxrules.IeeePackages(cfg.Style.IeeeExtraPackages...).As("IEEEPkg"),
		syntaxrules.NoUserAttributes(cfg.Style.AllowedAttributes...),
		syntaxrules.NoUserAttrName(),
		syntaxrules.EntityItems(),
		syntaxrules.NoCharEnumLit(),
		syntaxrules.GuardedSignals(),
		syntaxrules.Disconnection(),
		syntaxrules.BlockStatement(),
		syntaxrules.GroupDeclaration(),
		syntaxrules.PortMode(),
		syntaxrules.ConfigSpec(),

		// Synthesis.
		semrules.PortsType(),
	}
}

// full is the OHWR set plus every other semantic and synthesis rule.
func full(cfg *config.Config) []*engine.Rule {
	out := ohwr(cfg)
	out = append(out,
		semrules.Unused(),
		semrules.StdHidding(),
		semrules.Dependences(),
		semrules.Assocs(),
		semrules.References(),
	)
	return append(out, synthrules.All()...)
}

// isUpper reports whether s has at least one cased letter and no lower
// case one.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// All returns one instance of every rule with its default settings.
func All() []*engine.Rule {
	var out []*engine.Rule
	out = append(out, filerules.All()...)
	out = append(out, lexrules.All()...)
	out = append(out, syntaxrules.All()...)
	out = append(out, semrules.All()...)
	out = append(out, synthrules.All()...)
	return out
}

// SelfTests returns the self-tests of every rule. The fixture names are
// relative to rules.FixtureDir.
func SelfTests() []engine.TestCase {
	var out []engine.TestCase
	out = append(out, filerules.Tests()...)
	out = append(out, lexrules.Tests()...)
	out = append(out, syntaxrules.Tests()...)
	out = append(out, semrules.Tests()...)
	out = append(out, synthrules.Tests()...)
	return out
}
