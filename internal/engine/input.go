package engine

import "github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"

// Input is the state of one listed file as it goes through the phases.
type Input struct {
	Name  string
	Src   *vhdl.SourceFile
	Props Props

	// File is the unanalyzed tree, set by the syntax phase. Its units are
	// moved to the library by the semantic phase.
	File *vhdl.Node
	// Units are the design units of the file, owned by the library.
	Units []*vhdl.Node
	// Comments maps a line to the span of the comment found on it.
	Comments map[int]vhdl.Span
	// Library is the library shared by every input of the run.
	Library *vhdl.Library
}

// Buf returns the file contents.
func (in *Input) Buf() []byte { return in.Src.Buf }

// Comment returns the span of the comment on line, if any.
func (in *Input) Comment(line int) (vhdl.Span, bool) {
	sp, ok := in.Comments[line]
	return sp, ok
}

// Checked reports whether the rules apply to this input.
func (in *Input) Checked() bool { return !in.Props.Has(PropImport) }
