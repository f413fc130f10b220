package facts

import (
	"fmt"
	"sort"
	"strings"
)

// DependentsGraph maps a file to the files depending on one of its units.
type DependentsGraph map[string]map[string]bool

// BuildDependentsGraph derives the file level dependents graph from the
// dependencies relation.
func BuildDependentsGraph(t Tables) DependentsGraph {
	unitFile := make(map[string]string)
	for _, e := range t.Entities {
		unitFile[e.Library+"."+e.Name] = e.File
	}
	for _, p := range t.Packages {
		unitFile[p.Library+"."+p.Name] = p.File
	}
	for _, d := range t.Dependencies {
		unitFile[d.Unit] = d.File
	}

	graph := make(DependentsGraph)
	for _, d := range t.Dependencies {
		depFile, ok := unitFile[d.Target]
		if !ok || depFile == d.File {
			continue
		}
		if graph[depFile] == nil {
			graph[depFile] = make(map[string]bool)
		}
		graph[depFile][d.File] = true
	}
	return graph
}

// ImpactReport lists the files affected by a change of Root, level by
// level: level 1 depends on Root directly, level 2 on level 1, and so on.
type ImpactReport struct {
	Root   string
	Levels [][]string
}

// ComputeImpact walks the dependents of root breadth first.
func ComputeImpact(root string, dependents DependentsGraph) ImpactReport {
	visited := map[string]bool{root: true}
	frontier := []string{root}
	var levels [][]string

	for len(frontier) > 0 {
		var next []string
		for _, f := range frontier {
			for dep := range dependents[f] {
				if visited[dep] {
					continue
				}
				visited[dep] = true
				next = append(next, dep)
			}
		}
		if len(next) == 0 {
			break
		}
		sort.Strings(next)
		levels = append(levels, next)
		frontier = next
	}

	return ImpactReport{Root: root, Levels: levels}
}

func (r ImpactReport) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s\n", r.Root))
	for i, level := range r.Levels {
		b.WriteString(fmt.Sprintf("    level %d (%d): %s\n", i+1, len(level), strings.Join(level, ", ")))
	}
	return b.String()
}
