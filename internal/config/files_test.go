package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("-- vhdl\n"), 0o644))
}

func TestExpandArgsDirectory(t *testing.T) {
	root := t.TempDir()
	core := filepath.Join(root, "rtl", "core.vhd")
	pkg := filepath.Join(root, "rtl", "sub", "a_pkg.vhdl")
	writeFile(t, core)
	writeFile(t, pkg)
	writeFile(t, filepath.Join(root, "rtl", "notes.txt"))

	got, err := ExpandArgs([]string{"--top", filepath.Join(root, "rtl")})
	require.NoError(t, err)
	assert.Equal(t, []string{"--top", core, pkg}, got)
}

func TestExpandArgsGlobs(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.vhd")
	b := filepath.Join(root, "deep", "b.vhd")
	writeFile(t, a)
	writeFile(t, b)

	got, err := ExpandArgs([]string{filepath.Join(root, "*.vhd")})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, got)

	got, err = ExpandArgs([]string{filepath.Join(root, "**", "*.vhd")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, got)
}

func TestExpandArgsKeepsPlainNames(t *testing.T) {
	got, err := ExpandArgs([]string{"missing.vhd", "--import", "other.vhdl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"missing.vhd", "--import", "other.vhdl"}, got)
}

func TestIsVHDLFile(t *testing.T) {
	assert.True(t, IsVHDLFile("a.vhd"))
	assert.True(t, IsVHDLFile("dir/A.VHDL"))
	assert.False(t, IsVHDLFile("a.v"))
}
