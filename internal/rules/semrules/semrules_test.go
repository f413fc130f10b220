package semrules

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
		prop string
		file string
		want string
	}{
		{Unused(), "", "unused1.vhdl", "6:5: [Unused] b_i is not used"},
		{StdHidding(), "", "stdhide1.vhdl", "7:10: [StdHidding] declaration of now uses a standard name"},
		{StdHidding(), "", "stdhide2.vhdl", "10:10: [StdHidding] declaration of resolved uses an ieee name"},
		{Dependences(), "", "dependences3.vhdl", "8:1: [Dependences] unit depends on 'std_logic_1164' but not by a use clause"},
		{PortsType(), "--top", "porttypes2.vhdl", "8:5: [PortsType] type of port 'clk_i' must be std_logic/_vector"},
		{References(), "", "reference2.vhdl", "13:13: [References] s_data is not the correct spelling for 's_Data'"},
		{References(), "", "reference9.vhdl", "10:16: [References] STD_LOGIC is not the correct spelling for 'std_logic'"},
	}
	for _, tt := range tests {
		t.Run(tt.rule.Name+"/"+tt.file, func(t *testing.T) {
			e, stderr := newExec(false)
			require.NoError(t, e.Add(tt.rule))
			name := "testdata/" + tt.file
			args := []string{name}
			if tt.prop != "" {
				args = []string{tt.prop, name}
			}
			require.NoError(t, e.Execute(context.Background(), args))
			assert.Equal(t, name+":"+tt.want+"\n", stderr.String())
		})
	}
}

func TestAssocsMessages(t *testing.T) {
	for file, want := range map[string]string{
		"assocs2.vhdl": "[Assocs] incorrect association order for a_i",
		"assocs4.vhdl": "[Assocs] association by position for a_i",
	} {
		t.Run(file, func(t *testing.T) {
			e, stderr := newExec(false)
			require.NoError(t, e.Add(Assocs()))
			require.NoError(t, e.Execute(context.Background(), []string{"testdata/" + file}))
			assert.Equal(t, 1, e.Errors())
			assert.Contains(t, stderr.String(), want)
		})
	}
}

func TestUnusedStateIsPerUnit(t *testing.T) {
	e, _ := newExec(true)
	require.NoError(t, e.Add(Unused()))
	require.NoError(t, e.Execute(context.Background(),
		[]string{"testdata/unused1.vhdl", "testdata/unused3.vhdl", "testdata/unused4.vhdl"}))
	assert.Equal(t, 2, e.Errors())
}
