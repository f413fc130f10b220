package facts

import (
	"sort"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Tables is the relational fact model handed to the rego policies.
// Each slice is a relation (table) with flat rows.
type Tables struct {
	Files          []FileRow          `json:"files"`
	Entities       []EntityRow        `json:"entities"`
	Architectures  []ArchitectureRow  `json:"architectures"`
	Packages       []PackageRow       `json:"packages"`
	Ports          []PortRow          `json:"ports"`
	Generics       []GenericRow       `json:"generics"`
	Signals        []SignalRow        `json:"signals"`
	Constants      []ConstantRow      `json:"constants"`
	Processes      []ProcessRow       `json:"processes"`
	Instances      []InstanceRow      `json:"instances"`
	UseClauses     []UseClauseRow     `json:"use_clauses"`
	LibraryClauses []LibraryClauseRow `json:"library_clauses"`
	Dependencies   []DependencyRow    `json:"dependencies"`
}

type FileRow struct {
	Path    string `json:"path"`
	Library string `json:"library"`
	Checked bool   `json:"checked"`
}

type EntityRow struct {
	Name    string `json:"name"`
	Library string `json:"library"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

type ArchitectureRow struct {
	Name       string `json:"name"`
	EntityName string `json:"entity_name"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type PackageRow struct {
	Name    string `json:"name"`
	Library string `json:"library"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

type PortRow struct {
	Entity    string `json:"entity"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
	File      string `json:"file"`
	Line      int    `json:"line"`
}

type GenericRow struct {
	Entity string `json:"entity"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	File   string `json:"file"`
	Line   int    `json:"line"`
}

type SignalRow struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	File  string `json:"file"`
	Line  int    `json:"line"`
	Scope string `json:"scope"`
}

type ConstantRow struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	File  string `json:"file"`
	Line  int    `json:"line"`
	Scope string `json:"scope"`
}

type ProcessRow struct {
	Label       string   `json:"label"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	InArch      string   `json:"in_arch"`
	Sensitivity []string `json:"sensitivity"`
	SensAll     bool     `json:"sens_all"`
	Clocked     bool     `json:"clocked"`
}

type InstanceRow struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Aspect string `json:"aspect"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	InArch string `json:"in_arch"`
}

type UseClauseRow struct {
	File string `json:"file"`
	Item string `json:"item"`
	Line int    `json:"line"`
}

type LibraryClauseRow struct {
	File    string `json:"file"`
	Library string `json:"library"`
	Line    int    `json:"line"`
}

type DependencyRow struct {
	Unit   string `json:"unit"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	File   string `json:"file"`
}

// BuildTables converts resolved design units into the relational model.
// checked tells whether a file is checked or only imported; nil means
// every file is checked. Superseded units are skipped.
func BuildTables(units []*vhdl.Node, checked func(file string) bool) Tables {
	tables := emptyTables()
	seenFiles := make(map[string]bool)

	for _, du := range units {
		lu := du.LibUnit
		if lu == nil || du.Unit == nil || du.Unit.Src == nil {
			continue
		}
		file := du.Unit.Src.Name
		lib := du.Unit.Library
		if !seenFiles[file] {
			seenFiles[file] = true
			tables.Files = append(tables.Files, FileRow{
				Path:    file,
				Library: lib,
				Checked: checked == nil || checked(file),
			})
		}

		for _, cl := range du.Context {
			switch cl.Kind {
			case vhdl.KLibraryClause:
				tables.LibraryClauses = append(tables.LibraryClauses, LibraryClauseRow{
					File:    file,
					Library: cl.Name(),
					Line:    line(cl),
				})
			case vhdl.KUseClause:
				for _, n := range cl.Names {
					tables.UseClauses = append(tables.UseClauses, UseClauseRow{
						File: file,
						Item: strings.ToLower(text(n)),
						Line: line(n),
					})
				}
			}
		}

		for _, dep := range du.Unit.Deps {
			if dep.LibUnit == nil || dep.Unit == nil {
				continue
			}
			tables.Dependencies = append(tables.Dependencies, DependencyRow{
				Unit:   lib + "." + vhdl.UnitKey(lu),
				Target: dep.Unit.Library + "." + vhdl.UnitKey(dep.LibUnit),
				Kind:   dep.LibUnit.Kind.String(),
				File:   file,
			})
		}

		switch lu.Kind {
		case vhdl.KEntity:
			tables.Entities = append(tables.Entities, EntityRow{
				Name: lu.Name(), Library: lib, File: file, Line: line(lu),
			})
			for _, g := range lu.Generics {
				tables.Generics = append(tables.Generics, GenericRow{
					Entity: lu.Name(), Name: g.Name(), Type: text(g.Type), File: file, Line: line(g),
				})
			}
			for _, p := range lu.Ports {
				tables.Ports = append(tables.Ports, PortRow{
					Entity:    lu.Name(),
					Name:      p.Name(),
					Direction: direction(p.Mode),
					Type:      text(p.Type),
					File:      file,
					Line:      line(p),
				})
			}
		case vhdl.KArchitecture:
			tables.Architectures = append(tables.Architectures, ArchitectureRow{
				Name: lu.Name(), EntityName: lu.EntityName.Name(), File: file, Line: line(lu),
			})
		case vhdl.KPackage:
			tables.Packages = append(tables.Packages, PackageRow{
				Name: lu.Name(), Library: lib, File: file, Line: line(lu),
			})
		}

		scope := vhdl.UnitKey(lu)
		vhdl.Walk(lu, func(n *vhdl.Node) bool {
			switch n.Kind {
			case vhdl.KSignalDecl:
				tables.Signals = append(tables.Signals, SignalRow{
					Name: n.Name(), Type: text(n.Type), File: file, Line: line(n), Scope: scope,
				})
			case vhdl.KConstantDecl:
				tables.Constants = append(tables.Constants, ConstantRow{
					Name: n.Name(), Type: text(n.Type), Value: text(n.Expr), File: file, Line: line(n), Scope: scope,
				})
			case vhdl.KProcessStmt:
				tables.Processes = append(tables.Processes, processRow(n, file, scope))
			case vhdl.KInstanceStmt:
				aspect := n.Aspect
				if aspect == "" {
					aspect = "component"
				}
				tables.Instances = append(tables.Instances, InstanceRow{
					Name:   n.Name(),
					Target: strings.ToLower(text(n.Target)),
					Aspect: aspect,
					File:   file,
					Line:   line(n),
					InArch: scope,
				})
			}
			return true
		})
	}

	sort.Slice(tables.Files, func(i, j int) bool { return tables.Files[i].Path < tables.Files[j].Path })

	return tables
}

func processRow(n *vhdl.Node, file, scope string) ProcessRow {
	row := ProcessRow{
		Label:       n.Name(),
		File:        file,
		Line:        line(n),
		InArch:      scope,
		Sensitivity: []string{},
		SensAll:     n.SensAll,
	}
	for _, s := range n.Sensitivity {
		row.Sensitivity = append(row.Sensitivity, strings.ToLower(text(s)))
	}
	vhdl.Walk(n, func(c *vhdl.Node) bool {
		if row.Clocked {
			return false
		}
		switch c.Kind {
		case vhdl.KCall:
			if c.Prefix != nil && isEdge(c.Prefix.Ref) {
				row.Clocked = true
			}
		case vhdl.KAttributeName:
			if strings.EqualFold(c.Ident, "event") {
				row.Clocked = true
			}
		}
		return true
	})
	return row
}

// isEdge reports whether d is rising_edge or falling_edge of
// ieee.std_logic_1164.
func isEdge(d *vhdl.Node) bool {
	if d == nil || !d.IsSubprogram() {
		return false
	}
	if name := d.Name(); name != "rising_edge" && name != "falling_edge" {
		return false
	}
	du := d.DesignUnit()
	return du != nil && du.Unit.Library == vhdl.LibIEEE && du.LibUnit != nil &&
		du.LibUnit.Name() == "std_logic_1164"
}

func direction(m vhdl.Mode) string {
	if m == vhdl.ModeNone {
		return "in"
	}
	return m.String()
}

// text returns the source text of n with runs of blanks collapsed.
func text(n *vhdl.Node) string {
	if n == nil {
		return ""
	}
	src := n.Source()
	if src == nil || n.Pos < 0 || n.End > len(src.Buf) || n.Pos >= n.End {
		return ""
	}
	return strings.Join(strings.Fields(string(src.Buf[n.Pos:n.End])), " ")
}

func line(n *vhdl.Node) int {
	if l := vhdl.Locate(n).Line; l > 0 {
		return l
	}
	return 1
}
