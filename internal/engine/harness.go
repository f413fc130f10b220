package engine

import (
	"context"
	"fmt"
	"path"
)

// TestCase runs one rule over fixture files and states whether it must
// report something.
type TestCase struct {
	Title string
	Rule  *Rule
	// Files are fixture names, optionally preceded by property switches.
	Files []string
	Fail  bool
}

// OK is a test expecting no diagnostic.
func OK(title string, rule *Rule, files ...string) TestCase {
	return TestCase{Title: title, Rule: rule, Files: files}
}

// Fail is a test expecting at least one diagnostic.
func Fail(title string, rule *Rule, files ...string) TestCase {
	return TestCase{Title: title, Rule: rule, Files: files, Fail: true}
}

// RunTest runs tc in a fresh Exec sharing this one's front-end and output.
// Fixture names are joined to dir. The work library is purged before and
// after the run. A failed expectation counts as one error of e and is
// reported as "ERROR: <rule>: test failed". The returned error is a fault
// that prevented the test from running.
func (e *Exec) RunTest(ctx context.Context, dir string, tc TestCase) (bool, error) {
	fmt.Fprintf(e.opts.Stdout, "  test: %s\n", tc.Title)
	files := make([]string, len(tc.Files))
	for i, f := range tc.Files {
		if IsSwitch(f) {
			files[i] = f
		} else {
			files[i] = path.Join(dir, f)
		}
	}

	lib := e.fe.Library
	lib.Purge()
	defer lib.Purge()

	opts := e.opts
	opts.Quiet = e.sink.Quiet()
	opts.Import = nil
	child := New(e.fe, opts)
	child.noTiming = true
	if err := child.Add(tc.Rule); err != nil {
		return false, err
	}
	if err := child.Execute(ctx, files); err != nil {
		return false, fmt.Errorf("%s: %s: %w", tc.Rule.Name, tc.Title, err)
	}
	ok := (child.Errors() == 0) != tc.Fail
	if !ok {
		e.sink.count++
		fmt.Fprintf(e.opts.Stderr, "ERROR: %s: test failed\n", tc.Rule.Name)
	}
	return ok, nil
}

// RunTests runs every test case and stops at the first fault.
func (e *Exec) RunTests(ctx context.Context, dir string, tests []TestCase) error {
	for _, tc := range tests {
		if _, err := e.RunTest(ctx, dir, tc); err != nil {
			return err
		}
	}
	return nil
}
