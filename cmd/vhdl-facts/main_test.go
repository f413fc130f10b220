package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/vhdl-style/internal/facts"
)

const counter = `library ieee;
use ieee.std_logic_1164.all;

entity counter is
  port (
    clk_i : in  std_logic;
    q_o   : out std_logic);
end entity counter;

architecture arch of counter is
  signal q : std_logic;
begin
  p_count : process (clk_i)
  begin
    if rising_edge(clk_i) then
      q <= not q;
    end if;
  end process p_count;
  q_o <= q;
end architecture arch;
`

func TestFacts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "counter.vhd")
	require.NoError(t, os.WriteFile(path, []byte(counter), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{path}, &stdout, &stderr), stderr.String())

	var tables facts.Tables
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tables))
	require.Len(t, tables.Entities, 1)
	assert.Equal(t, "counter", tables.Entities[0].Name)
	assert.Len(t, tables.Ports, 2)
	require.Len(t, tables.Processes, 1)
	assert.Equal(t, "p_count", tables.Processes[0].Label)
	assert.True(t, tables.Processes[0].Clocked)
	assert.Equal(t, []string{"clk_i"}, tables.Processes[0].Sensitivity)

	// A delta against an empty previous run holds every row as added.
	prev := filepath.Join(dir, "prev.json")
	require.NoError(t, os.WriteFile(prev, []byte("{}"), 0o644))
	out := filepath.Join(dir, "facts.json")
	deltaOut := filepath.Join(dir, "delta.json")
	stdout.Reset()
	require.Equal(t, 0, run([]string{"-o", out, "--delta-from", prev, "--delta-out", deltaOut, path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(deltaOut)
	require.NoError(t, err)
	var delta facts.Delta
	require.NoError(t, json.Unmarshal(data, &delta))
	assert.Len(t, delta.Added.Entities, 1)
	assert.Empty(t, delta.Removed.Entities)
}

func TestFactsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"--delta-from", "x.json", "a.vhd"}, &stdout, &stderr))
}

func TestFactsImpact(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	pkg := filepath.Join(dir, "consts_pkg.vhd")
	require.NoError(t, os.WriteFile(pkg, []byte("package consts_pkg is\n  constant c_N : natural := 4;\nend package consts_pkg;\n"), 0o644))
	user := filepath.Join(dir, "user.vhd")
	require.NoError(t, os.WriteFile(user, []byte("use work.consts_pkg.all;\n\nentity user is\n  generic (g_N : natural := c_N);\nend entity user;\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--impact", pkg, pkg, user}, &stdout, &stderr), stderr.String())
	assert.Equal(t, "  "+pkg+"\n    level 1 (1): "+user+"\n", stdout.String())
}

func TestFactsCheckedOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib_pkg.vhd")
	require.NoError(t, os.WriteFile(lib, []byte("package lib_pkg is\nend package lib_pkg;\n"), 0o644))
	top := filepath.Join(dir, "top.vhd")
	require.NoError(t, os.WriteFile(top, []byte("entity top is\nend entity top;\n"), 0o644))
	cfg := filepath.Join(dir, "vhdl_style.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("lint:\n  import_patterns: [\"*_pkg.vhd\"]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--config", cfg, "--checked-only", lib, top}, &stdout, &stderr), stderr.String())
	var tables facts.Tables
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tables))
	require.Len(t, tables.Files, 1)
	assert.Equal(t, top, tables.Files[0].Path)
	assert.Empty(t, tables.Packages)
	assert.Len(t, tables.Entities, 1)
}
