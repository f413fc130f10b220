package facts

import (
	"strconv"
	"strings"
)

// Delta captures added and removed fact rows between two snapshots.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between two snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

func diffTables(from, to Tables) Tables {
	out := emptyTables()

	out.Files = diffRows(from.Files, to.Files, func(r FileRow) string {
		return key(r.Path, r.Library, boolKey(r.Checked))
	})
	out.Entities = diffRows(from.Entities, to.Entities, func(r EntityRow) string {
		return key(r.Name, r.Library, r.File, strconv.Itoa(r.Line))
	})
	out.Architectures = diffRows(from.Architectures, to.Architectures, func(r ArchitectureRow) string {
		return key(r.Name, r.EntityName, r.File, strconv.Itoa(r.Line))
	})
	out.Packages = diffRows(from.Packages, to.Packages, func(r PackageRow) string {
		return key(r.Name, r.Library, r.File, strconv.Itoa(r.Line))
	})
	out.Ports = diffRows(from.Ports, to.Ports, func(r PortRow) string {
		return key(r.Entity, r.Name, r.Direction, r.Type, r.File, strconv.Itoa(r.Line))
	})
	out.Generics = diffRows(from.Generics, to.Generics, func(r GenericRow) string {
		return key(r.Entity, r.Name, r.Type, r.File, strconv.Itoa(r.Line))
	})
	out.Signals = diffRows(from.Signals, to.Signals, func(r SignalRow) string {
		return key(r.Name, r.Type, r.File, strconv.Itoa(r.Line), r.Scope)
	})
	out.Constants = diffRows(from.Constants, to.Constants, func(r ConstantRow) string {
		return key(r.Name, r.Type, r.Value, r.File, strconv.Itoa(r.Line), r.Scope)
	})
	out.Processes = diffRows(from.Processes, to.Processes, func(r ProcessRow) string {
		return key(r.Label, r.File, strconv.Itoa(r.Line), r.InArch, strings.Join(r.Sensitivity, ","),
			boolKey(r.SensAll), boolKey(r.Clocked))
	})
	out.Instances = diffRows(from.Instances, to.Instances, func(r InstanceRow) string {
		return key(r.Name, r.Target, r.Aspect, r.File, strconv.Itoa(r.Line), r.InArch)
	})
	out.UseClauses = diffRows(from.UseClauses, to.UseClauses, func(r UseClauseRow) string {
		return key(r.File, r.Item, strconv.Itoa(r.Line))
	})
	out.LibraryClauses = diffRows(from.LibraryClauses, to.LibraryClauses, func(r LibraryClauseRow) string {
		return key(r.File, r.Library, strconv.Itoa(r.Line))
	})
	out.Dependencies = diffRows(from.Dependencies, to.Dependencies, func(r DependencyRow) string {
		return key(r.Unit, r.Target, r.Kind, r.File)
	})

	return out
}

func emptyTables() Tables {
	return Tables{
		Files:          []FileRow{},
		Entities:       []EntityRow{},
		Architectures:  []ArchitectureRow{},
		Packages:       []PackageRow{},
		Ports:          []PortRow{},
		Generics:       []GenericRow{},
		Signals:        []SignalRow{},
		Constants:      []ConstantRow{},
		Processes:      []ProcessRow{},
		Instances:      []InstanceRow{},
		UseClauses:     []UseClauseRow{},
		LibraryClauses: []LibraryClauseRow{},
		Dependencies:   []DependencyRow{},
	}
}

func diffRows[T any](from, to []T, key func(T) string) []T {
	fromSet := make(map[string]bool, len(from))
	for _, row := range from {
		fromSet[key(row)] = true
	}
	diff := []T{}
	for _, row := range to {
		if !fromSet[key(row)] {
			diff = append(diff, row)
		}
	}
	return diff
}

func key(fields ...string) string { return strings.Join(fields, "|") }

func boolKey(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
