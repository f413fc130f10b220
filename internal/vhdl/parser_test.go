package vhdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterSource = `library ieee;
use ieee.std_logic_1164.all;
use ieee.numeric_std.all;

entity counter is
  generic (g_WIDTH : natural := 8);
  port (clk_i   : in  std_logic;
        rst_n_i : in  std_logic;
        count_o : out std_logic_vector(g_WIDTH - 1 downto 0));
end counter;

architecture arch of counter is
  signal s_count : unsigned(g_WIDTH - 1 downto 0);
begin
  p_count : process (clk_i)
  begin
    if rising_edge(clk_i) then
      if (rst_n_i = '0') then
        s_count <= (others => '0');
      else
        s_count <= s_count + 1;
      end if;
    end if;
  end process p_count;

  count_o <= std_logic_vector(s_count);
end arch;
`

func parseText(t *testing.T, text string, mode ParseMode) *Node {
	t.Helper()
	file, err := Parse(NewSourceFile("t.vhdl", []byte(text)), DefaultOptions(), mode)
	require.NoError(t, err)
	return file
}

func TestParseDesignUnits(t *testing.T) {
	file := parseText(t, counterSource, ParseMode{})
	require.Len(t, file.Units, 2)

	ent := file.Units[0]
	require.Len(t, ent.Context, 3)
	assert.Equal(t, KLibraryClause, ent.Context[0].Kind)
	assert.Equal(t, "ieee", ent.Context[0].Name())
	assert.Equal(t, KUseClause, ent.Context[1].Kind)
	assert.Equal(t, KSelectedByAll, ent.Context[1].Names[0].Kind)

	require.Equal(t, KEntity, ent.LibUnit.Kind)
	assert.Equal(t, "counter", ent.LibUnit.Name())
	require.Len(t, ent.LibUnit.Generics, 1)
	require.Len(t, ent.LibUnit.Ports, 3)
	assert.Equal(t, ModeIn, ent.LibUnit.Ports[0].Mode)
	assert.True(t, ent.LibUnit.Ports[0].HasMode)
	assert.Equal(t, ModeOut, ent.LibUnit.Ports[2].Mode)
	assert.Equal(t, KCall, ent.LibUnit.Ports[2].Type.Kind)
	assert.True(t, ent.LibUnit.EndLabel)

	arch := file.Units[1].LibUnit
	require.Equal(t, KArchitecture, arch.Kind)
	assert.Equal(t, "counter", arch.EntityName.Name())
	require.Len(t, arch.Decls, 1)
	require.Len(t, arch.Stmts, 2)

	proc := arch.Stmts[0]
	assert.Equal(t, KProcessStmt, proc.Kind)
	assert.Equal(t, "p_count", proc.Ident)
	assert.True(t, proc.EndLabel)
	require.Len(t, proc.Sensitivity, 1)
	require.Len(t, proc.Stmts, 1)
	ifs := proc.Stmts[0]
	require.Equal(t, KIfStmt, ifs.Kind)
	require.Equal(t, KCall, ifs.Expr.Kind)
	assert.Equal(t, "rising_edge", ifs.Expr.Prefix.Name())

	inner := ifs.Stmts[0]
	require.Equal(t, KIfStmt, inner.Kind)
	assert.Equal(t, KBinary, inner.Expr.Kind, "parentheses are dropped by default")
	require.NotNil(t, inner.Else)
	assert.Nil(t, inner.Else.Expr)

	assign := arch.Stmts[1]
	assert.Equal(t, KConcurrentAssign, assign.Kind)
	require.Len(t, assign.Alts, 1)
	assert.Nil(t, assign.Alts[0].Expr)
}

func TestParseParents(t *testing.T) {
	file := parseText(t, counterSource, ParseMode{})
	Walk(file, func(n *Node) bool {
		for _, c := range n.Children() {
			if c.Parent != n {
				t.Errorf("%s child %s has wrong parent", n.Kind, c.Kind)
			}
		}
		return true
	})
	arch := file.Units[1].LibUnit
	assert.Equal(t, file.Units[1], arch.Stmts[0].DesignUnit())
	assert.Equal(t, "t.vhdl", arch.Stmts[0].Source().Name)
}

func TestParseExtendedLocations(t *testing.T) {
	text := counterSource
	file := parseText(t, text, ParseMode{ExtendedLocations: true, KeepParentheses: true})
	arch := file.Units[1].LibUnit
	proc := arch.Stmts[0]
	require.NotNil(t, proc.Ext)
	begin := proc.Mark(func(m *Marks) int { return m.Begin })
	require.GreaterOrEqual(t, begin, 0)
	assert.Equal(t, "begin", text[begin:begin+5])
	end := proc.Mark(func(m *Marks) int { return m.End })
	assert.Equal(t, "end process", text[end:end+11])

	ifs := proc.Stmts[0]
	then := ifs.Mark(func(m *Marks) int { return m.Then })
	assert.Equal(t, "then", text[then:then+4])

	inner := ifs.Stmts[0]
	require.Equal(t, KParenExpr, inner.Expr.Kind)
	rparen := inner.Expr.Mark(func(m *Marks) int { return m.RParen })
	assert.Equal(t, ")", text[rparen:rparen+1])

	port := file.Units[0].LibUnit.Ports[1]
	colon := port.Mark(func(m *Marks) int { return m.Colon })
	assert.Equal(t, ":", text[colon:colon+1])
}

func TestParseWithoutExtendedLocations(t *testing.T) {
	file := parseText(t, counterSource, ParseMode{})
	proc := file.Units[1].LibUnit.Stmts[0]
	assert.Nil(t, proc.Ext)
	assert.Equal(t, -1, proc.Mark(func(m *Marks) int { return m.Begin }))
}

func TestParseIdentifierLists(t *testing.T) {
	file := parseText(t, `architecture a of e is
  signal s1, s2 : bit := '0';
begin
end;`, ParseMode{})
	decls := file.Units[0].LibUnit.Decls
	require.Len(t, decls, 2)
	assert.True(t, decls[0].InList)
	assert.False(t, decls[1].InList)
	assert.False(t, decls[0].SharedType)
	assert.True(t, decls[1].SharedType)
	assert.Same(t, decls[0].Type, decls[1].Type)
}

func TestParseStatements(t *testing.T) {
	file := parseText(t, `architecture a of e is
begin
  u0 : entity work.sub(rtl) port map (a => x, b => open);
  u1 : comp generic map (4) port map (x, y);
  g0 : for i in 0 to 3 generate
    z(i) <= x(i) when en = '1' else '0';
  end generate;
  with sel select
    y <= a when "00",
         b when others;
  p : process
    variable v : integer;
  begin
    for i in 1 to 10 loop
      exit when v > 3;
      v := v + i;
    end loop;
    case v is
      when 1 | 2 => null;
      when others => report "x" severity note;
    end case;
    wait for 10 ns;
  end process;
end;`, ParseMode{})
	stmts := file.Units[0].LibUnit.Stmts
	require.Len(t, stmts, 5)

	u0 := stmts[0]
	assert.Equal(t, KInstanceStmt, u0.Kind)
	assert.Equal(t, "entity", u0.Aspect)
	assert.Equal(t, KSelectedName, u0.Target.Kind)
	require.NotNil(t, u0.Arch)
	assert.Equal(t, "rtl", u0.Arch.Name())
	require.Len(t, u0.PortMap, 2)
	assert.Equal(t, KOpen, u0.PortMap[1].Actual.Kind)

	u1 := stmts[1]
	assert.Equal(t, "component", u1.Aspect)
	assert.Nil(t, u1.GenericMap[0].Formal)

	gen := stmts[2]
	assert.Equal(t, KForGenerate, gen.Kind)
	assert.Equal(t, "i", gen.Param.Name())
	require.Len(t, gen.Stmts, 1)
	assert.Len(t, gen.Stmts[0].Alts, 2)

	sel := stmts[3]
	assert.Equal(t, KSelectedAssign, sel.Kind)
	require.Len(t, sel.Alts, 2)
	assert.Equal(t, KOthers, sel.Alts[1].Choices[0].Kind)

	proc := stmts[4]
	require.Len(t, proc.Stmts, 3)
	loop := proc.Stmts[0]
	assert.Equal(t, KLoopStmt, loop.Kind)
	assert.Equal(t, TokFor, loop.Op)
	assert.Equal(t, KExitStmt, loop.Stmts[0].Kind)
	assert.Equal(t, KVariableAssign, loop.Stmts[1].Kind)
	cs := proc.Stmts[1]
	require.Len(t, cs.Alts, 2)
	assert.Len(t, cs.Alts[0].Choices, 2)
	assert.Equal(t, KWaitStmt, proc.Stmts[2].Kind)
	assert.Equal(t, KPhysicalLiteral, proc.Stmts[2].Right.Kind)
}

func TestParseSelectedNames(t *testing.T) {
	text := "use ieee.std_logic_1164.all;\nentity e is\nend;\narchitecture a of e is\nbegin\n  u : entity work.leaf;\nend;\n"
	file := parseText(t, text, ParseMode{})

	all := file.Units[0].Context[0].Names[0]
	require.Equal(t, KSelectedByAll, all.Kind)
	assert.Equal(t, "ieee.std_logic_1164.all", text[all.Pos:all.End])
	assert.Equal(t, "all", text[all.Suffix:all.End])

	pkg := all.Prefix
	require.Equal(t, KSelectedName, pkg.Kind)
	assert.Equal(t, "ieee.std_logic_1164", text[pkg.Pos:pkg.End])
	assert.Equal(t, "std_logic_1164", text[pkg.Suffix:pkg.End])

	target := file.Units[1].LibUnit.Stmts[0].Target
	require.Equal(t, KSelectedName, target.Kind)
	assert.Equal(t, "work.leaf", text[target.Pos:target.End])
	assert.Equal(t, "leaf", text[target.Suffix:target.End])
}

func TestParseLabeledSequentialStatement(t *testing.T) {
	text := "architecture a of e is\nbegin\n  process\n  begin\n    l_count : for i in 1 to 4 loop\n    end loop;\n    wait;\n  end process;\nend;\n"
	file := parseText(t, text, ParseMode{ExtendedLocations: true})
	stmts := file.Units[0].LibUnit.Stmts[0].Stmts
	require.Len(t, stmts, 2)

	loop := stmts[0]
	assert.Equal(t, "l_count", text[loop.Pos:loop.Pos+len("l_count")])
	assert.Equal(t, "for", text[loop.Ext.Start:loop.Ext.Start+3])

	wait := stmts[1]
	assert.Equal(t, wait.Pos, wait.Ext.Start)
}

func TestParseSubprograms(t *testing.T) {
	file := parseText(t, `package body p is
  function f (a, b : integer) return integer is
    variable r : integer;
  begin
    r := a + b;
    return r;
  end function f;
  procedure q (signal s : out bit);
end package body;`, ParseMode{})
	body := file.Units[0].LibUnit
	assert.Equal(t, KPackageBody, body.Kind)
	require.Len(t, body.Decls, 2)
	f := body.Decls[0]
	assert.Equal(t, KFunctionBody, f.Kind)
	assert.True(t, f.HasBody)
	assert.Len(t, f.Params, 2)
	assert.Equal(t, KInterfaceConstant, f.Params[0].Kind)
	assert.Len(t, f.Stmts, 2)
	q := body.Decls[1]
	assert.Equal(t, KProcedureDecl, q.Kind)
	assert.Equal(t, KInterfaceSignal, q.Params[0].Kind)
	assert.Equal(t, ModeOut, q.Params[0].Mode)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"missing semicolon", "entity e is end", "expected"},
		{"bad unit", "signal s : bit;", "library unit expected"},
		{"misspelled label", "entity e is end f;", "misspelling"},
		{"end label on unlabeled process", "architecture a of e is begin process begin end process p; end;", "unlabeled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(NewSourceFile("t.vhdl", []byte(tt.text)), DefaultOptions(), ParseMode{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, strings.HasPrefix(err.Error(), "t.vhdl:1:"))
		})
	}
}

func TestParseRelaxed(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.SetOption("-frelaxed"))
	_, err := Parse(NewSourceFile("t.vhdl", []byte("entity e is end f;")), opts, ParseMode{})
	assert.NoError(t, err)
}

func TestSetOption(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.SetOption("--std=08"))
	assert.Equal(t, Std08, opts.Std)
	require.NoError(t, opts.SetOption("--work=mylib"))
	assert.Equal(t, "mylib", opts.Work)
	require.NoError(t, opts.SetOption("--ieee=synopsys"))
	assert.Equal(t, IEEESynopsys, opts.IEEE)
	for _, bad := range []string{"--std=99", "--work=a b", "--ieee=mentor", "--frobnicate"} {
		assert.ErrorIs(t, opts.SetOption(bad), ErrUnknownOption, bad)
	}
}
