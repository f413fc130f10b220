package filerules

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

func TestNoTABDiagnostic(t *testing.T) {
	e, stderr := newExec(false)
	require.NoError(t, e.Add(NoTAB()))
	require.NoError(t, e.Execute(context.Background(), []string{"testdata/ht.vhdl"}))
	assert.Equal(t, "testdata/ht.vhdl:3:5: [NoTAB] HT not allowed\n", stderr.String())
	assert.Equal(t, 1, e.Errors())
}

func TestLineLengthColumn(t *testing.T) {
	e, stderr := newExec(false)
	require.NoError(t, e.Add(LineLength(80)))
	require.NoError(t, e.Execute(context.Background(), []string{"testdata/longline.vhdl"}))
	assert.Equal(t, "testdata/longline.vhdl:5:81: [LineLen] line is too long\n", stderr.String())
}

func TestNewlineReportsEveryBadLine(t *testing.T) {
	e, _ := newExec(true)
	require.NoError(t, e.Add(Newline()))
	require.NoError(t, e.Execute(context.Background(), []string{"testdata/dosfile.vhdl"}))
	assert.Equal(t, 4, e.Errors())
}
