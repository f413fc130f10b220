package syntaxrules

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func newExec(quiet bool) (*engine.Exec, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	e := engine.New(vhdl.NewFrontend(), engine.Options{
		Quiet:    quiet,
		Stdout:   &stdout,
		Stderr:   &stderr,
		ReadFile: rules.ReadFixture,
	})
	return e, &stderr
}

func TestSelfTests(t *testing.T) {
	for _, tc := range Tests() {
		t.Run(tc.Rule.Name+"/"+tc.Title, func(t *testing.T) {
			e, stderr := newExec(true)
			ok, err := e.RunTest(context.Background(), rules.FixtureDir, tc)
			require.NoError(t, err)
			assert.True(t, ok, stderr.String())
		})
	}
}

func TestAllRulesAreValid(t *testing.T) {
	e, _ := newExec(true)
	for _, r := range All() {
		require.NoError(t, e.Add(r), r.Name)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		rule *engine.Rule
		file string
		want string
	}{
		{Context(), "context2.vhdl", "3:1: [Context] do not use library clause for 'work'"},
		{ComplexStmtLayout(), "complexstmt2.vhdl", "16:7: [ComplexStmtLayout] indentation: must be at col 5 instead of 7"},
		{EndLabel(), "endlabel1.vhdl", "4:1: [EndLabel] missing 'endlabel1' after 'end'"},
		{FileName(".vhdl"), "badname.vhdl", "3:1: [FileName] filename must be goodname.vhdl"},
		{Indentation(2), "indent12.vhdl", "16:7: [Indentation] indentation: must be at col 5 instead of 7"},
		{Indentation(2), "indent13.vhdl", "14:12: [Indentation] indentation: must be at col 10 instead of 12"},
	}
	for _, tt := range tests {
		t.Run(tt.rule.Name, func(t *testing.T) {
			e, stderr := newExec(false)
			require.NoError(t, e.Add(tt.rule))
			name := "testdata/" + tt.file
			require.NoError(t, e.Execute(context.Background(), []string{name}))
			assert.Equal(t, name+":"+tt.want+"\n", stderr.String())
		})
	}
}

func TestSignalSuffixes(t *testing.T) {
	for name, want := range map[string]int{
		"s_data":      0,
		"rst_n_i":     0,
		"s_rst_a_n":   0,
		"s_req_d2":    0,
		"s_rst_n_a":   1,
		"req_n_d_i":   1,
		"s_x_n_p":     1,
		"s_x_a_d1":    1,
		"s_x_n_a_p_o": 1,
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := engine.NewSink(&buf, true)
			n := &vhdl.Node{Kind: vhdl.KSignalDecl, Ident: name, Pos: -1}
			checkSignalSuffixes(engine.NewReporter("SignalsName", sink), n)
			assert.Equal(t, want, sink.Count())
		})
	}
}
