package vhdl

import (
	"fmt"
	"sort"
)

// Span is a byte range [Start, End) in a source buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// SourceFile is a loaded source buffer. Buf is never modified after load.
type SourceFile struct {
	Name string
	Buf  []byte

	lineStarts []int
}

// NewSourceFile wraps buf and indexes its line starts. A line ends after "\n",
// after "\r\n", or after a lone "\r".
func NewSourceFile(name string, buf []byte) *SourceFile {
	f := &SourceFile{Name: name, Buf: buf, lineStarts: []int{0}}
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\n':
			f.lineStarts = append(f.lineStarts, i+1)
		case '\r':
			if i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Position converts a byte offset into a 1-based line and byte column.
func (f *SourceFile) Position(off int) (line, col int) {
	if off < 0 {
		off = 0
	}
	if off > len(f.Buf) {
		off = len(f.Buf)
	}
	i := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, off - f.lineStarts[i] + 1
}

// Line returns the 1-based line number of off.
func (f *SourceFile) Line(off int) int {
	l, _ := f.Position(off)
	return l
}

// Lines splits the buffer into lines, keeping line terminators.
func (f *SourceFile) Lines() [][]byte {
	var lines [][]byte
	for i, start := range f.lineStarts {
		end := len(f.Buf)
		if i+1 < len(f.lineStarts) {
			end = f.lineStarts[i+1]
		}
		if start == end {
			// trailing empty line after the last terminator
			break
		}
		lines = append(lines, f.Buf[start:end])
	}
	return lines
}

// Location is a resolved source position.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// IsValid reports whether the location points into a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line >= 1 && l.Col >= 1
}

// Locate returns the location of the node's position within its design unit's source.
func Locate(n *Node) Location {
	return LocateOffset(n, n.Pos)
}

// LocateOffset returns the location of off within the source owning n.
func LocateOffset(n *Node, off int) Location {
	src := n.Source()
	if src == nil {
		return Location{}
	}
	line, col := src.Position(off)
	return Location{File: src.Name, Line: line, Col: col}
}
