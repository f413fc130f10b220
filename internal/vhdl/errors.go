package vhdl

import "fmt"

// Error is a front-end failure located in a source file.
type Error struct {
	Loc Location
	Msg string
}

func (e *Error) Error() string {
	if !e.Loc.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

func errorAt(src *SourceFile, off int, format string, args ...any) *Error {
	line, col := src.Position(off)
	return &Error{
		Loc: Location{File: src.Name, Line: line, Col: col},
		Msg: fmt.Sprintf(format, args...),
	}
}
