package facts

// FilterTablesByFiles returns a new Tables object containing only rows whose file
// or path is present in the provided file set.
func FilterTablesByFiles(tables Tables, files map[string]bool) Tables {
	out := emptyTables()
	if len(files) == 0 {
		return out
	}

	out.Files = keep(tables.Files, files, func(r FileRow) string { return r.Path })
	out.Entities = keep(tables.Entities, files, func(r EntityRow) string { return r.File })
	out.Architectures = keep(tables.Architectures, files, func(r ArchitectureRow) string { return r.File })
	out.Packages = keep(tables.Packages, files, func(r PackageRow) string { return r.File })
	out.Ports = keep(tables.Ports, files, func(r PortRow) string { return r.File })
	out.Generics = keep(tables.Generics, files, func(r GenericRow) string { return r.File })
	out.Signals = keep(tables.Signals, files, func(r SignalRow) string { return r.File })
	out.Constants = keep(tables.Constants, files, func(r ConstantRow) string { return r.File })
	out.Processes = keep(tables.Processes, files, func(r ProcessRow) string { return r.File })
	out.Instances = keep(tables.Instances, files, func(r InstanceRow) string { return r.File })
	out.UseClauses = keep(tables.UseClauses, files, func(r UseClauseRow) string { return r.File })
	out.LibraryClauses = keep(tables.LibraryClauses, files, func(r LibraryClauseRow) string { return r.File })
	out.Dependencies = keep(tables.Dependencies, files, func(r DependencyRow) string { return r.File })

	return out
}

func keep[T any](rows []T, files map[string]bool, file func(T) string) []T {
	out := []T{}
	for _, row := range rows {
		if files[file(row)] {
			out = append(out, row)
		}
	}
	return out
}

// FilterDeltaByFiles returns a new Delta containing only rows for the specified files.
func FilterDeltaByFiles(delta Delta, files map[string]bool) Delta {
	return Delta{
		Added:   FilterTablesByFiles(delta.Added, files),
		Removed: FilterTablesByFiles(delta.Removed, files),
	}
}
