package engine

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

var harnessFixtures = fstest.MapFS{
	"fixtures/clean.vhdl":  {Data: []byte("entity e is\nend entity;\n")},
	"fixtures/tab.vhdl":    {Data: []byte("entity e is\n\tport (a : in bit);\nend entity;\n")},
	"fixtures/arch.vhdl":   {Data: []byte("architecture rtl of e is\nbegin\nend architecture;\n")},
	"fixtures/pkg.vhdl":    {Data: []byte(pkgSource)},
	"fixtures/top.vhdl":    {Data: []byte(topSource)},
	"fixtures/ports1.vhdl": {Data: []byte("entity e is\n  port (a : in bit; b : in bit);\nend entity;\n")},
	"fixtures/ports2.vhdl": {Data: []byte("entity e is\nend entity;\n")},
}

func TestRunTestOutcomes(t *testing.T) {
	e, stdout, stderr := newTestExec(t, nil, harnessFixtures, true)
	ctx := context.Background()

	ok, err := e.RunTest(ctx, "fixtures", OK("clean file", tabRule(), "clean.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.RunTest(ctx, "fixtures", Fail("tab file", tabRule(), "tab.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, e.Errors())

	ok, err = e.RunTest(ctx, "fixtures", OK("tab file passes", tabRule(), "tab.vhdl"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, e.Errors())

	assert.Equal(t, "  test: clean file\n  test: tab file\n  test: tab file passes\n", stdout.String())
	assert.Equal(t, "ERROR: NoTAB: test failed\n", stderr.String())
}

func TestRunTestInheritsQuiet(t *testing.T) {
	e, _, stderr := newTestExec(t, nil, harnessFixtures, false)
	_, err := e.RunTest(context.Background(), "fixtures", Fail("tab", tabRule(), "tab.vhdl"))
	require.NoError(t, err)
	assert.Equal(t, "fixtures/tab.vhdl:2:1: [NoTAB] HT not allowed\n", stderr.String())
}

func TestRunTestLeavesLibraryEmpty(t *testing.T) {
	fe := vhdl.NewFrontend()
	e, _, _ := newTestExec(t, fe, harnessFixtures, true)
	rule := NewSemanticUnit("Any", "", func(rep Reporter, in *Input, du *vhdl.Node) {})

	ok, err := e.RunTest(context.Background(), "fixtures", OK("entity alone", rule, "clean.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fe.Library.Units("work"))

	// Without the purge the entity of the previous test would still be
	// visible and the architecture would resolve.
	_, err = e.RunTest(context.Background(), "fixtures", OK("arch alone", rule, "arch.vhdl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entity "e" not found`)
	assert.Empty(t, fe.Library.Units("work"))
}

func TestRunTestIsolation(t *testing.T) {
	// Both fixtures declare entity e; each test must see only its own.
	fe := vhdl.NewFrontend()
	e, _, _ := newTestExec(t, fe, harnessFixtures, true)
	var ports []int
	rule := NewSemanticUnit("Ports", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		ports = append(ports, len(du.LibUnit.Ports))
		for _, lib := range in.Library.Units("work") {
			if lib != du {
				rep.Report(NodeLocation(du.LibUnit), "stale unit")
			}
		}
	})
	ctx := context.Background()
	ok, err := e.RunTest(ctx, "fixtures", OK("two ports", rule, "ports1.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.RunTest(ctx, "fixtures", OK("no port", rule, "ports2.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{2, 0}, ports)
}

func TestRunTestWithSwitches(t *testing.T) {
	e, _, _ := newTestExec(t, nil, harnessFixtures, true)
	var checked []string
	rule := NewSemanticUnit("Units", "", func(rep Reporter, in *Input, du *vhdl.Node) {
		checked = append(checked, in.Name+":"+in.Props.String())
	})
	ok, err := e.RunTest(context.Background(), "fixtures",
		OK("import then top", rule, "--import", "pkg.vhdl", "--top", "top.vhdl"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"fixtures/top.vhdl:{synth,top}", "fixtures/top.vhdl:{synth,top}"}, checked)
}

func TestRunTestIdempotent(t *testing.T) {
	fe := vhdl.NewFrontend()
	counts := make([]int, 2)
	for i := range counts {
		e, _, _ := newTestExec(t, fe, harnessFixtures, true)
		require.NoError(t, e.Add(tabRule()))
		require.NoError(t, e.Execute(context.Background(), []string{"fixtures/tab.vhdl", "fixtures/clean.vhdl"}))
		counts[i] = e.Errors()
		fe.Library.Purge()
	}
	assert.Equal(t, counts[0], counts[1])
	assert.Equal(t, 1, counts[0])
}

func TestRunTestRejectsInvalidRule(t *testing.T) {
	e, _, _ := newTestExec(t, nil, harnessFixtures, true)
	_, err := e.RunTest(context.Background(), "fixtures", OK("broken", &Rule{Name: "Broken"}, "clean.vhdl"))
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestRunTests(t *testing.T) {
	e, stdout, _ := newTestExec(t, nil, harnessFixtures, true)
	rule := tabRule()
	err := e.RunTests(context.Background(), "fixtures", []TestCase{
		OK("clean", rule, "clean.vhdl"),
		Fail("tab", rule, "tab.vhdl"),
		Fail("clean fails", rule, "clean.vhdl"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Errors())
	assert.Contains(t, stdout.String(), "  test: clean fails\n")
}
