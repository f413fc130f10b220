package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func newTestExec(t *testing.T, fe *vhdl.Frontend, files fstest.MapFS, quiet bool) (*Exec, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if fe == nil {
		fe = vhdl.NewFrontend()
	}
	e := New(fe, Options{
		Quiet:    quiet,
		Stdout:   &stdout,
		Stderr:   &stderr,
		ReadFile: func(name string) ([]byte, error) { return fs.ReadFile(files, name) },
	})
	return e, &stdout, &stderr
}

func tabRule() *Rule {
	return NewWholeFile("NoTAB", "no tab", func(rep Reporter, loc Location, lines [][]byte) {
		for i, line := range lines {
			if j := bytes.IndexByte(line, '\t'); j >= 0 {
				rep.Report(loc.At(i+1, j+1), "HT not allowed")
			}
		}
	})
}

const pkgSource = `package pkg is
  constant c : integer := 1;
end package;
`

const topSource = `use work.pkg.all;
entity top is
end entity;
architecture rtl of top is
  signal s : integer := c;
begin
end architecture;
`

func TestExecuteReportsDiagnostic(t *testing.T) {
	files := fstest.MapFS{
		"tab.vhdl": {Data: []byte("-- header\n\n    \tx\n")},
	}
	e, _, stderr := newTestExec(t, nil, files, false)
	require.NoError(t, e.Add(tabRule()))
	require.NoError(t, e.Execute(context.Background(), []string{"tab.vhdl"}))

	assert.Equal(t, "tab.vhdl:3:5: [NoTAB] HT not allowed\n", stderr.String())
	assert.Equal(t, 1, e.Errors())
	assert.Equal(t, 1, e.Files())
}

func TestQuietStillCounts(t *testing.T) {
	files := fstest.MapFS{"tab.vhdl": {Data: []byte("\t\n")}}
	e, _, stderr := newTestExec(t, nil, files, true)
	require.NoError(t, e.Add(tabRule()))
	require.NoError(t, e.Execute(context.Background(), []string{"tab.vhdl"}))

	assert.Empty(t, stderr.String())
	assert.Equal(t, 1, e.Errors())
}

func TestPropertySwitchesAreSticky(t *testing.T) {
	files := fstest.MapFS{
		"a.vhdl": {Data: []byte("\n")},
		"b.vhdl": {Data: []byte("\n")},
		"c.vhdl": {Data: []byte("\n")},
		"d.vhdl": {Data: []byte("\n")},
	}
	e, _, _ := newTestExec(t, nil, files, false)
	require.NoError(t, e.Add(tabRule()))
	args := []string{"a.vhdl", "--synth", "b.vhdl", "--tb", "c.vhdl", "--top", "d.vhdl"}
	require.NoError(t, e.Execute(context.Background(), args))

	inputs := e.Inputs()
	require.Len(t, inputs, 4)
	assert.Equal(t, PropSynth, inputs[0].Props)
	assert.Equal(t, PropSynth, inputs[1].Props)
	assert.Equal(t, PropTB, inputs[2].Props)
	assert.Equal(t, PropSynth|PropTop, inputs[3].Props)
	assert.Equal(t, 4, e.Files())
}

func TestExecuteTwiceCountsLastRun(t *testing.T) {
	color.NoColor = true
	files := fstest.MapFS{
		"a.vhdl": {Data: []byte("\n")},
		"b.vhdl": {Data: []byte("\n")},
	}
	e, _, _ := newTestExec(t, nil, files, true)
	require.NoError(t, e.Add(tabRule()))

	require.NoError(t, e.Execute(context.Background(), []string{"a.vhdl", "b.vhdl"}))
	assert.Equal(t, 2, e.Files())
	require.NoError(t, e.Execute(context.Background(), []string{"b.vhdl"}))
	assert.Equal(t, 1, e.Files())
	assert.Len(t, e.Inputs(), 1)

	var out bytes.Buffer
	assert.Equal(t, ExitOK, e.Report(&out))
	assert.Equal(t, "1 file checked\nNo error\n", out.String())
}

func TestImportIsVisibleButNotChecked(t *testing.T) {
	files := fstest.MapFS{
		"pkg.vhdl": {Data: []byte(pkgSource)},
		"top.vhdl": {Data: []byte(topSource)},
	}
	e, _, _ := newTestExec(t, nil, files, false)

	seen := map[string]int{}
	track := func(kind string) func(string) {
		return func(file string) { seen[kind+":"+file]++ }
	}
	tokens := track("token")
	require.NoError(t, e.Add(NewToken("Tokens", "", func(rep Reporter, loc TokenLocation, buf []byte, tok vhdl.TokenKind) {
		tokens(loc.File)
	})))
	wholeFile := track("file")
	require.NoError(t, e.Add(NewWholeFile("Files", "", func(rep Reporter, loc Location, lines [][]byte) {
		wholeFile(loc.File)
	})))
	syntaxNodes := track("syntax")
	require.NoError(t, e.Add(NewSyntaxNode("SyntaxNodes", "", func(rep Reporter, in *Input, n *vhdl.Node) {
		syntaxNodes(in.Name)
	})))
	var ref *vhdl.Node
	semNodes := track("semantic")
	require.NoError(t, e.Add(NewSemanticNode("SemNodes", "", func(rep Reporter, in *Input, n *vhdl.Node) {
		semNodes(in.Name)
		if n.Kind == vhdl.KSimpleName && n.Name() == "c" {
			ref = n.Ref
		}
	})))

	args := []string{"--import", "pkg.vhdl", "--synth", "top.vhdl"}
	require.NoError(t, e.Execute(context.Background(), args))

	assert.Equal(t, 1, e.Files())
	for _, kind := range []string{"token", "file", "syntax", "semantic"} {
		assert.Zero(t, seen[kind+":pkg.vhdl"], kind)
		assert.NotZero(t, seen[kind+":top.vhdl"], kind)
	}
	require.NotNil(t, ref)
	assert.Equal(t, vhdl.KConstantDecl, ref.Kind)
	assert.Equal(t, "pkg", ref.DesignUnit().LibUnit.Name())
}

func TestForwardReferenceAcrossFiles(t *testing.T) {
	files := fstest.MapFS{
		"pkg.vhdl": {Data: []byte(pkgSource)},
		"top.vhdl": {Data: []byte(topSource)},
	}
	e, _, _ := newTestExec(t, nil, files, false)
	var units []string
	require.NoError(t, e.Add(NewSemanticUnit("Units", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		units = append(units, du.LibUnit.Name())
	})))
	require.NoError(t, e.Execute(context.Background(), []string{"top.vhdl", "pkg.vhdl"}))
	assert.Equal(t, []string{"top", "rtl", "pkg"}, units)
}

func TestSupersededUnitsAreSkipped(t *testing.T) {
	files := fstest.MapFS{
		"one.vhdl": {Data: []byte("entity e is\nend entity;\n")},
		"two.vhdl": {Data: []byte("entity e is\nend entity;\n")},
	}
	e, _, _ := newTestExec(t, nil, files, false)
	var names []string
	synth := 0
	require.NoError(t, e.Add(NewSemanticUnit("Units", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		names = append(names, in.Name)
	})))
	require.NoError(t, e.Add(NewSynthesisUnit("Synth", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		synth++
	})))
	require.NoError(t, e.Execute(context.Background(), []string{"one.vhdl", "two.vhdl"}))
	assert.Equal(t, []string{"two.vhdl"}, names)
	assert.Equal(t, 1, synth)
}

func TestSynthesisOnlyOnSynthInputs(t *testing.T) {
	files := fstest.MapFS{
		"a.vhdl": {Data: []byte("entity a is\nend entity;\n")},
		"b.vhdl": {Data: []byte("entity b is\nend entity;\n")},
	}
	e, _, _ := newTestExec(t, nil, files, false)
	var names []string
	require.NoError(t, e.Add(NewSynthesisUnit("Synth", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		names = append(names, du.LibUnit.Name())
	})))
	require.NoError(t, e.Execute(context.Background(), []string{"a.vhdl", "--tb", "b.vhdl"}))
	assert.Equal(t, []string{"a"}, names)
}

func TestCommentsAreIndexedByLine(t *testing.T) {
	src := "-- header\nentity e is\nend entity;  -- trailer\n"
	files := fstest.MapFS{"e.vhdl": {Data: []byte(src)}}
	e, _, _ := newTestExec(t, nil, files, false)
	require.NoError(t, e.Add(tabRule()))
	require.NoError(t, e.Execute(context.Background(), []string{"e.vhdl"}))

	in := e.Inputs()[0]
	sp, ok := in.Comment(1)
	require.True(t, ok)
	assert.Equal(t, "-- header", string(in.Buf()[sp.Start:sp.End]))
	sp, ok = in.Comment(3)
	require.True(t, ok)
	assert.Equal(t, "-- trailer", string(in.Buf()[sp.Start:sp.End]))
	_, ok = in.Comment(2)
	assert.False(t, ok)
}

func TestTokenRulesSeeEOF(t *testing.T) {
	files := fstest.MapFS{"e.vhdl": {Data: []byte("entity e is end;")}}
	e, _, _ := newTestExec(t, nil, files, false)
	var last vhdl.TokenKind
	count := 0
	require.NoError(t, e.Add(NewToken("Last", "", func(rep Reporter, loc TokenLocation, buf []byte, tok vhdl.TokenKind) {
		last = tok
		count++
	})))
	require.NoError(t, e.Execute(context.Background(), []string{"e.vhdl"}))
	assert.Equal(t, vhdl.TokEOF, last)
	assert.Equal(t, 6, count)
}

func TestLaterPhasesSkippedWithoutRules(t *testing.T) {
	files := fstest.MapFS{"bad.vhdl": {Data: []byte("this is not vhdl\n")}}
	e, _, _ := newTestExec(t, nil, files, false)
	require.NoError(t, e.Add(tabRule()))
	require.NoError(t, e.Execute(context.Background(), []string{"bad.vhdl"}))
	assert.Nil(t, e.Inputs()[0].File)
}

func TestExecuteFaults(t *testing.T) {
	files := fstest.MapFS{
		"ok.vhdl":  {Data: []byte("entity e is\nend entity;\n")},
		"bad.vhdl": {Data: []byte("entity is\n")},
		"lex.vhdl": {Data: []byte("entity e is end; \"unterminated\n")},
	}
	syntaxRule := NewSyntaxUnit("Any", "", func(rep Reporter, in *Input, file *vhdl.Node) {})
	tests := []struct {
		name string
		args []string
		rule *Rule
		code int
	}{
		{"unknown switch", []string{"ok.vhdl", "--bogus", "ok.vhdl"}, tabRule(), ExitUsage},
		{"missing file", []string{"missing.vhdl"}, tabRule(), ExitFatal},
		{"parse error", []string{"bad.vhdl"}, syntaxRule, ExitFatal},
		{"scan error", []string{"lex.vhdl"}, tabRule(), ExitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestExec(t, nil, files, false)
			require.NoError(t, e.Add(tt.rule))
			err := e.Execute(context.Background(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, ExitCode(err))
		})
	}
}

func TestUnknownSwitchMessage(t *testing.T) {
	e, _, _ := newTestExec(t, nil, fstest.MapFS{}, false)
	err := e.Execute(context.Background(), []string{"--bogus"})
	require.ErrorIs(t, err, ErrUnknownSwitch)
	assert.Equal(t, "unknown property '--bogus'", err.Error())
}

func TestAddRejectsRuleWithoutCheck(t *testing.T) {
	e, _, _ := newTestExec(t, nil, fstest.MapFS{}, false)
	err := e.Add(&Rule{Name: "Broken", Kind: KindToken})
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.Contains(t, err.Error(), "Broken")

	require.Error(t, e.Add(&Rule{Name: "Nothing"}))
	require.Error(t, e.Add(nil))
}

func TestReport(t *testing.T) {
	color.NoColor = true
	files := fstest.MapFS{
		"a.vhdl": {Data: []byte("\t\n")},
		"b.vhdl": {Data: []byte("\n")},
	}
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"none", nil, "0 file checked\nNo error\n", ExitOK},
		{"clean", []string{"b.vhdl"}, "1 file checked\nNo error\n", ExitOK},
		{"errors", []string{"a.vhdl", "b.vhdl", "a.vhdl"}, "3 files checked\n2 error(s)\n", ExitFailed},
		{"import not counted", []string{"--import", "a.vhdl", "--synth", "b.vhdl"}, "1 file checked\nNo error\n", ExitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestExec(t, nil, files, true)
			require.NoError(t, e.Add(tabRule()))
			require.NoError(t, e.Execute(context.Background(), tt.args))
			var out bytes.Buffer
			assert.Equal(t, tt.code, e.Report(&out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestImportMatcher(t *testing.T) {
	files := fstest.MapFS{
		"vendor/lib.vhdl": {Data: []byte("\t\n")},
		"top.vhdl":        {Data: []byte("\n")},
	}
	e, _, _ := newTestExec(t, nil, files, true)
	e.opts.Import = func(name string) bool { return strings.HasPrefix(name, "vendor/") }
	require.NoError(t, e.Add(tabRule()))
	require.NoError(t, e.Execute(context.Background(), []string{"vendor/lib.vhdl", "top.vhdl"}))
	assert.Equal(t, 0, e.Errors())
	assert.Equal(t, 1, e.Files())
}

func TestTimingJSONLWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timing.jsonl")
	files := fstest.MapFS{"e.vhdl": {Data: []byte("entity e is\nend entity;\n")}}
	e, _, _ := newTestExec(t, nil, files, false)
	e.opts.TimingPath = path
	require.NoError(t, e.Add(NewSemanticUnit("Any", "", func(rep Reporter, in *Input, du *vhdl.Node) {})))
	require.NoError(t, e.Execute(context.Background(), []string{"e.vhdl"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	phases := map[string]bool{}
	for _, line := range bytes.Split(bytes.TrimSpace(raw), []byte("\n")) {
		var ev timingEvent
		require.NoError(t, json.Unmarshal(line, &ev))
		if ev.Kind == "phase" {
			phases[ev.Phase] = true
		}
	}
	for _, p := range []string{"intake", "lexical", "syntax", "semantic", "synthesis", "total"} {
		assert.True(t, phases[p], p)
	}
}
