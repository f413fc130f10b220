package lexrules

import (
	"bytes"
	"context"
	"strings"
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

func TestOperatorSpaceDiagnostic(t *testing.T) {
	e, stderr := newExec(false)
	require.NoError(t, e.Add(OperatorSpace()))
	require.NoError(t, e.Execute(context.Background(), []string{"testdata/operatorspace3.vhdl"}))
	assert.Equal(t, "testdata/operatorspace3.vhdl:4:31: [OperatorSpace] multiple spaces after operator '>'\n",
		stderr.String())
}

func TestKeywordCaseCustomPredicate(t *testing.T) {
	e, _ := newExec(true)
	upper := func(s string) bool { return s == strings.ToUpper(s) }
	require.NoError(t, e.Add(KeywordCase(upper)))
	require.NoError(t, e.Execute(context.Background(), []string{"testdata/keyword.vhdl"}))
	// "is" and "end" are in lower case, "ENTITY" is not reported.
	assert.Equal(t, 2, e.Errors())
}
