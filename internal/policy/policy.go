// Package policy turns rego files into semantic rules. Each file declares
// a package vhdlstyle.<Name> with a violations set; the rule is named
// <Name> and evaluates that set over the facts of every checked unit.
package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/facts"
	"github.com/robert-at-pretension-io/vhdl-style/internal/validator"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// PackagePrefix is the rego package every policy lives under.
const PackagePrefix = "data.vhdlstyle."

// Violation is one element of a policy's violations set.
type Violation struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Policy is a prepared violations query.
type Policy struct {
	Name  string
	File  string
	query rego.PreparedEvalQuery
}

// Load prepares every .rego file of dir, in file name order.
func Load(ctx context.Context, dir string) ([]*Policy, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.rego"))
	if err != nil {
		return nil, fmt.Errorf("finding policy files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no policy files found in %s", dir)
	}
	sort.Strings(files)

	var out []*Policy
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		p, err := Compile(ctx, f, string(content))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Compile prepares the violations query of one rego module.
func Compile(ctx context.Context, file, src string) (*Policy, error) {
	mod, err := ast.ParseModule(file, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	path := mod.Package.Path.String()
	name := strings.TrimPrefix(path, PackagePrefix)
	if name == path || name == "" || strings.Contains(name, ".") {
		return nil, fmt.Errorf("%s: package %s is not of the form vhdlstyle.<Name>", file, strings.TrimPrefix(path, "data."))
	}

	query, err := rego.New(
		rego.Module(file, src),
		rego.Query(path+".violations"),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("preparing violations query of %s: %w", file, err)
	}
	return &Policy{Name: name, File: file, query: query}, nil
}

// Evaluate runs the policy over tables. The tables are checked against
// the facts schema first. Violations are sorted by position.
func (p *Policy) Evaluate(ctx context.Context, tables facts.Tables) ([]Violation, error) {
	if err := validator.ValidateFacts(tables); err != nil {
		return nil, err
	}
	input, err := structToMap(tables)
	if err != nil {
		return nil, fmt.Errorf("converting input: %w", err)
	}
	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", p.Name, err)
	}

	var out []Violation
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		values, ok := rs[0].Expressions[0].Value.([]interface{})
		if ok {
			for _, v := range values {
				vmap, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				out = append(out, Violation{
					Line:    getInt(vmap, "line"),
					Col:     getInt(vmap, "col"),
					Message: getString(vmap, "message"),
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Message < b.Message
	})
	return out, nil
}

// Rule wraps the policy into a semantic rule. A violation without a line
// is reported at the unit; evaluation failures are reported as
// diagnostics of the rule.
func (p *Policy) Rule() *engine.Rule {
	return engine.NewSemanticUnit(p.Name, "policy "+filepath.Base(p.File),
		func(rep engine.Reporter, in *engine.Input, du *vhdl.Node) {
			at := engine.NodeLocation(du.LibUnit)
			tables := facts.BuildTables([]*vhdl.Node{du}, func(string) bool { return in.Checked() })
			violations, err := p.Evaluate(context.Background(), tables)
			if err != nil {
				rep.Report(at, err.Error())
				return
			}
			for _, v := range violations {
				loc := at
				if v.Line >= 1 {
					col := v.Col
					if col < 1 {
						col = 1
					}
					loc = at.At(v.Line, col)
				}
				rep.Report(loc, v.Message)
			}
		})
}

// Rules loads the policies of dir as rules.
func Rules(ctx context.Context, dir string) ([]*engine.Rule, error) {
	policies, err := Load(ctx, dir)
	if err != nil {
		return nil, err
	}
	out := make([]*engine.Rule, len(policies))
	for i, p := range policies {
		out[i] = p.Rule()
	}
	return out, nil
}

// Helper functions
func structToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	err = json.Unmarshal(data, &result)
	return result, err
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case json.Number:
			i, _ := n.Int64()
			return int(i)
		}
	}
	return 0
}
