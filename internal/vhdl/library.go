package vhdl

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed builtin
var builtinFS embed.FS

// Built-in library names.
const (
	LibStd  = "std"
	LibIEEE = "ieee"
)

// Library holds the analyzed design units, keyed by library and unit key.
//
// Primary units are keyed by their name. Architectures are keyed as
// "entity(arch)" and package bodies as "pkg body".
type Library struct {
	opts    Options
	units   map[string]map[string]*Node
	order   map[string][]*Node
	libs    map[string]*Node
	builtin bool
}

// NewLibrary returns an empty library set. The std and ieee libraries are
// loaded on first use.
func NewLibrary(opts Options) *Library {
	return &Library{
		opts:  opts,
		units: map[string]map[string]*Node{},
		order: map[string][]*Node{},
		libs:  map[string]*Node{},
	}
}

// Options returns the options the library was created with.
func (l *Library) Options() Options { return l.opts }

// UnitKey returns the key under which a library unit is stored.
func UnitKey(lu *Node) string {
	switch lu.Kind {
	case KArchitecture:
		return lu.EntityName.Name() + "(" + lu.Name() + ")"
	case KPackageBody:
		return lu.Name() + " body"
	}
	return lu.Name()
}

// Insert registers a design unit under its library. A unit with the same
// key is superseded: its LibUnit is cleared so later passes skip it.
func (l *Library) Insert(du *Node) {
	if du.LibUnit == nil {
		return
	}
	lib := du.Unit.Library
	m := l.units[lib]
	if m == nil {
		m = map[string]*Node{}
		l.units[lib] = m
	}
	key := UnitKey(du.LibUnit)
	if old, ok := m[key]; ok && old != du {
		old.LibUnit = nil
		l.order[lib] = removeUnit(l.order[lib], old)
	}
	m[key] = du
	l.order[lib] = append(l.order[lib], du)
}

func removeUnit(list []*Node, du *Node) []*Node {
	for i, d := range list {
		if d == du {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Lookup returns the design unit stored under key in lib, or nil.
func (l *Library) Lookup(lib, key string) *Node {
	lib = strings.ToLower(lib)
	if lib == LibStd || lib == LibIEEE {
		l.loadBuiltins()
	}
	return l.units[lib][key]
}

// Units returns the design units of lib in insertion order.
func (l *Library) Units(lib string) []*Node {
	return append([]*Node(nil), l.order[strings.ToLower(lib)]...)
}

// Libraries returns the names of the libraries holding at least one unit.
func (l *Library) Libraries() []string {
	var out []string
	for name, list := range l.order {
		if len(list) > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Purge forgets every unit of the work library. Built-in libraries stay.
func (l *Library) Purge() {
	work := strings.ToLower(l.opts.Work)
	delete(l.units, work)
	delete(l.order, work)
}

// Exists reports whether a library of that name is known.
func (l *Library) Exists(name string) bool {
	switch name = strings.ToLower(name); name {
	case LibStd, LibIEEE, "work", strings.ToLower(l.opts.Work):
		return true
	}
	return len(l.order[name]) > 0
}

// libraryNode returns the node denoting a library name.
func (l *Library) libraryNode(name string) *Node {
	name = strings.ToLower(name)
	if n, ok := l.libs[name]; ok {
		return n
	}
	n := &Node{Kind: KLibrary, Ident: name, Pos: -1, End: -1}
	l.libs[name] = n
	return n
}

// Standard returns the std.standard package.
func (l *Library) Standard() *Node {
	du := l.Lookup(LibStd, "standard")
	if du == nil {
		return nil
	}
	return du.LibUnit
}

// IsBuiltin reports whether a design unit belongs to std or ieee.
func IsBuiltin(du *Node) bool {
	return du != nil && du.Unit != nil && (du.Unit.Library == LibStd || du.Unit.Library == LibIEEE)
}

func (l *Library) loadBuiltins() {
	if l.builtin {
		return
	}
	l.builtin = true
	dirs := []string{"builtin/std", "builtin/ieee"}
	if l.opts.IEEE == IEEESynopsys {
		dirs = append(dirs, "builtin/synopsys")
	}
	for _, dir := range dirs {
		lib := path.Base(dir)
		if lib == "synopsys" {
			lib = LibIEEE
		}
		entries, err := fs.ReadDir(builtinFS, dir)
		if err != nil {
			panic(fmt.Sprintf("vhdl: reading %s: %v", dir, err))
		}
		for _, e := range entries {
			name := path.Join(dir, e.Name())
			buf, err := fs.ReadFile(builtinFS, name)
			if err != nil {
				panic(fmt.Sprintf("vhdl: reading %s: %v", name, err))
			}
			opts := Options{Std: Std93c, Work: lib}
			file, err := Parse(NewSourceFile(name, buf), opts, ParseMode{})
			if err != nil {
				panic(fmt.Sprintf("vhdl: parsing %s: %v", name, err))
			}
			for _, du := range file.Units {
				l.Insert(du)
			}
		}
	}
}

// SetOptions replaces the options. Built-in libraries are reloaded on next
// use when the ieee flavor changes.
func (l *Library) SetOptions(opts Options) {
	if opts.IEEE != l.opts.IEEE && l.builtin {
		for _, lib := range []string{LibStd, LibIEEE} {
			delete(l.units, lib)
			delete(l.order, lib)
		}
		l.builtin = false
	}
	l.opts = opts
}
