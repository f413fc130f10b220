package ruleset

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/filerules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/lexrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/semrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/syntaxrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules/synthrules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func names(rs []*engine.Rule) map[string]int {
	out := make(map[string]int)
	for _, r := range rs {
		out[r.Name]++
	}
	return out
}

func TestOHWR(t *testing.T) {
	rs, err := OHWR(config.DefaultConfig())
	require.NoError(t, err)

	got := names(rs)
	for _, name := range []string{
		"FileName", "FileContent", "FileHeader", "LineLength", "EndOfLine",
		"CharSet", "NoTAB", "LastLine", "TrailingSpaces", "Comments", "Indentation", "Spaces",
		"Context", "UseClause", "Keywords", "ArchNames", "Constants", "TypesName",
		"PackagesName", "IEEEPkg", "PortsType", "Disconnection", "ConfigSpec",
	} {
		assert.Contains(t, got, name)
	}
	assert.Equal(t, 2, got["LastLine"])
	assert.Equal(t, 2, got["TypesName"])
	assert.NotContains(t, got, "Unused")

	e := engine.New(vhdl.NewFrontend(), engine.Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	for _, r := range rs {
		require.NoError(t, e.Add(r), r.Name)
	}
}

func TestBuildFull(t *testing.T) {
	rs, err := Build(context.Background(), "full", config.DefaultConfig())
	require.NoError(t, err)
	got := names(rs)
	for _, name := range []string{"Unused", "StdHidding", "Dependences", "Assocs", "References", "SynthProcesses"} {
		assert.Contains(t, got, name)
	}
}

func TestBuildHonoursDisabledRules(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules["NoTAB"] = "off"
	cfg.Rules["LastLine"] = "off"
	rs, err := Build(context.Background(), Default, cfg)
	require.NoError(t, err)
	got := names(rs)
	assert.NotContains(t, got, "NoTAB")
	assert.NotContains(t, got, "LastLine")
	assert.Contains(t, got, "Spaces")
}

func TestBuildUnknownSet(t *testing.T) {
	_, err := Build(context.Background(), "gnu", config.DefaultConfig())
	require.Error(t, err)
	var ce *engine.ConfigError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"full", "ohwr"}, Names())
}

func TestBuildPolicies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Policies = "../policy/testdata"
	cfg.Rules["ClockedLabel"] = "off"
	rs, err := Build(context.Background(), Default, cfg)
	require.NoError(t, err)
	got := names(rs)
	assert.Contains(t, got, "NoBidir")
	assert.NotContains(t, got, "ClockedLabel")

	cfg.Policies = t.TempDir()
	_, err = Build(context.Background(), Default, cfg)
	assert.Error(t, err)
}

func TestSelfTestsAggregate(t *testing.T) {
	want := len(filerules.Tests()) + len(lexrules.Tests()) + len(syntaxrules.Tests()) +
		len(semrules.Tests()) + len(synthrules.Tests())
	assert.Len(t, SelfTests(), want)
	assert.NotEmpty(t, All())
}

func TestIsUpper(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"WIDTH", true},
		{"MAX_8", true},
		{"Width", false},
		{"_1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isUpper(tt.in), tt.in)
	}
}
