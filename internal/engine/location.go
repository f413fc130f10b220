package engine

import (
	"fmt"

	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

// Location is a position in a checked file. Lines and columns are 1-based;
// columns count bytes.
type Location struct {
	File string
	Line int
	Col  int
}

// FileLocation returns the location of the start of a file.
func FileLocation(name string) Location {
	return Location{File: name, Line: 1, Col: 1}
}

// At returns a location in the same file.
func (l Location) At(line, col int) Location {
	return Location{File: l.File, Line: line, Col: col}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// IsValid reports whether the location points into a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line >= 1 && l.Col >= 1
}

// NodeLocation returns the location of a syntax tree node.
func NodeLocation(n *vhdl.Node) Location {
	return fromFrontend(vhdl.Locate(n))
}

// OffsetLocation returns the location of a byte offset in the file owning n.
func OffsetLocation(n *vhdl.Node, off int) Location {
	return fromFrontend(vhdl.LocateOffset(n, off))
}

func fromFrontend(loc vhdl.Location) Location {
	return Location{File: loc.File, Line: loc.Line, Col: loc.Col}
}

// TokenLocation is the location of a scanned token along with its byte
// range in the file buffer.
type TokenLocation struct {
	Location
	Start int
	End   int
}
