package vhdl

// Frontend bundles the options and the library shared by every phase of a
// run.
type Frontend struct {
	Options Options
	Library *Library
}

// NewFrontend returns a front-end with default options and an empty library.
func NewFrontend() *Frontend {
	opts := DefaultOptions()
	return &Frontend{Options: opts, Library: NewLibrary(opts)}
}

// SetOption applies a command line flag to the front-end.
func (f *Frontend) SetOption(flag string) error {
	if err := f.Options.SetOption(flag); err != nil {
		return err
	}
	f.Library.SetOptions(f.Options)
	return nil
}

// Tokenize returns a scanner over src using the selected standard.
func (f *Frontend) Tokenize(src *SourceFile, comments bool) *Scanner {
	return Tokenize(src, f.Options.Std, comments)
}

// Parse parses a design file with the selected options.
func (f *Frontend) Parse(src *SourceFile, mode ParseMode) (*Node, error) {
	return Parse(src, f.Options, mode)
}

// Analyze detaches the units of a design file into the library.
func (f *Frontend) Analyze(file *Node) []*Node {
	units := file.Units
	for _, du := range units {
		du.Parent = nil
		f.Library.Insert(du)
	}
	file.Units = nil
	return units
}

// Resolve analyzes one design unit. Superseded units are skipped.
func (f *Frontend) Resolve(du *Node) error {
	return f.Library.Resolve(du)
}
