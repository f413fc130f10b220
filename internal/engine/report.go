package engine

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

// Report prints the number of files checked and the verdict, and returns
// the matching exit status.
func (e *Exec) Report(w io.Writer) int {
	n := e.Files()
	plural := "s"
	if n < 2 {
		plural = ""
	}
	fmt.Fprintf(w, "%d file%s checked\n", n, plural)
	if errs := e.Errors(); errs > 0 {
		failColor.Fprintf(w, "%d error(s)\n", errs)
		return ExitFailed
	}
	okColor.Fprintln(w, "No error")
	return ExitOK
}
