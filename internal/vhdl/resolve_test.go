package vhdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyze parses text into lib and resolves every unit in order.
func analyze(t *testing.T, lib *Library, text string) []*Node {
	t.Helper()
	file, err := Parse(NewSourceFile("t.vhdl", []byte(text)), lib.Options(), ParseMode{})
	require.NoError(t, err)
	units := file.Units
	for _, du := range units {
		lib.Insert(du)
	}
	for _, du := range units {
		require.NoError(t, lib.Resolve(du))
	}
	return units
}

func TestResolveCounter(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, counterSource)
	ent, arch := units[0], units[1]
	assert.Equal(t, UnitAnalyzed, ent.Unit.State)
	assert.Equal(t, UnitAnalyzed, arch.Unit.State)

	clk := ent.LibUnit.Ports[0]
	proc := arch.LibUnit.Stmts[0]
	assert.Same(t, clk, proc.Sensitivity[0].Ref)

	cond := proc.Stmts[0].Expr
	edge := cond.Prefix.Ref
	require.NotNil(t, edge)
	assert.Equal(t, KFunctionDecl, edge.Kind)
	assert.Equal(t, "std_logic_1164", edge.DesignUnit().LibUnit.Name())
	assert.Equal(t, LibIEEE, edge.DesignUnit().Unit.Library)
	assert.Same(t, clk, cond.Args[0].Actual.Ref)

	assert.Same(t, ent.LibUnit, arch.LibUnit.EntityName.Ref)
	assert.Contains(t, arch.Unit.Deps, ent)

	var deps []string
	for _, d := range ent.Unit.Deps {
		deps = append(deps, d.LibUnit.Name())
	}
	assert.ElementsMatch(t, []string{"standard", "std_logic_1164", "numeric_std"}, deps)

	// The port type resolves through the ieee package.
	slv := TypeDeclaration(ent.LibUnit.Ports[2].Type)
	require.NotNil(t, slv)
	assert.Equal(t, "std_logic_vector", slv.Name())

	stdLogic := TypeDeclaration(ent.LibUnit.Ports[0].Type)
	require.NotNil(t, stdLogic)
	assert.Equal(t, "std_ulogic", stdLogic.Name())
}

func TestResolveLiterals(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `entity e is end;
architecture a of e is
  type t_state is (s_idle, s_run);
  signal state : t_state := s_idle;
  signal b : boolean := true;
begin
end;`)
	decls := units[1].LibUnit.Decls
	assert.Equal(t, KEnumLiteral, decls[1].Expr.Ref.Kind)
	assert.Same(t, decls[0].Type.Literals[0], decls[1].Expr.Ref)
	tr := decls[2].Expr.Ref
	require.NotNil(t, tr)
	assert.Equal(t, "standard", tr.DesignUnit().LibUnit.Name())
}

func TestResolveRecordElements(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `package pkg is
  type t_rec is record
    a : bit;
    b : integer;
  end record;
  type t_arr is array (0 to 3) of t_rec;
end pkg;

use work.pkg.all;
entity e is end;

use work.pkg.all;
architecture a of e is
  signal r : t_rec;
  signal v : t_arr;
begin
  r.a <= '1';
  v(0).b <= 3;
end;`)
	pkg := units[0].LibUnit
	elems := pkg.Decls[0].Type.Elements
	stmts := units[2].LibUnit.Stmts
	assert.Same(t, elems[0], stmts[0].Target.Ref)
	assert.Same(t, elems[1], stmts[1].Target.Ref)
	assert.Contains(t, units[2].Unit.Deps, units[0])
}

func TestResolveSubprogramSpec(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `package p is
  function f (x : integer) return integer;
end p;

package body p is
  function f (x : integer) return integer is
  begin
    return x + 1;
  end f;
end p;`)
	spec := units[0].LibUnit.Decls[0]
	body := units[1].LibUnit.Decls[0]
	assert.Same(t, spec, body.Spec)
	ret := body.Stmts[0].Expr
	require.Equal(t, KBinary, ret.Kind)
	assert.Same(t, spec.Params[0], ret.Left.Ref)
}

func TestResolveAssociations(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `entity sub is
  port (a : in bit; b : out bit);
end sub;
architecture rtl of sub is
begin
  b <= a;
end rtl;

entity top is end;
architecture a of top is
  signal x, y : bit;
  component comp is
    port (p : in bit);
  end component;
begin
  u0 : entity work.sub(rtl) port map (a => x, b => y);
  u1 : comp port map (p => x);
end;`)
	sub := units[0].LibUnit
	stmts := units[3].LibUnit.Stmts
	u0 := stmts[0]
	assert.Same(t, sub, u0.Target.Ref)
	assert.Same(t, units[1].LibUnit, u0.Arch.Ref)
	assert.Same(t, sub.Ports[0], u0.PortMap[0].Formal.Ref)
	assert.Same(t, sub.Ports[1], u0.PortMap[1].Formal.Ref)
	assert.Same(t, units[3].LibUnit.Decls[0], u0.PortMap[0].Actual.Ref)

	comp := units[3].LibUnit.Decls[2]
	u1 := stmts[1]
	assert.Same(t, comp, u1.Target.Ref)
	assert.Same(t, comp.Ports[0], u1.PortMap[0].Formal.Ref)
	assert.Contains(t, units[3].Unit.Deps, units[0])
}

func TestResolveOverloadByArgCount(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `package p is
  function f (x : integer) return integer;
  function f (x, y : integer) return integer;
  constant c1 : integer := f(1);
  constant c2 : integer := f(1, 2);
end p;`)
	decls := units[0].LibUnit.Decls
	assert.Same(t, decls[0], decls[2].Expr.Prefix.Ref)
	assert.Same(t, decls[1], decls[3].Expr.Prefix.Ref)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"unknown library", "library foo;\nentity e is end;", `library "foo" not found`},
		{"unknown package", "use work.nopkg.all;\nentity e is end;", `unit "nopkg" not found`},
		{"unknown ieee package", "library ieee;\nuse ieee.nopkg.all;\nentity e is end;", `unit "nopkg" not found`},
		{"architecture without entity", "architecture a of missing is begin end;", `entity "missing" not found`},
		{"body without package", "package body p is end;", `package "p" not found`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary(DefaultOptions())
			file, err := Parse(NewSourceFile("t.vhdl", []byte(tt.text)), lib.Options(), ParseMode{})
			require.NoError(t, err)
			du := file.Units[len(file.Units)-1]
			lib.Insert(du)
			err = lib.Resolve(du)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestResolveUnknownNamesAreLenient(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	units := analyze(t, lib, `entity e is end;
architecture a of e is
begin
  x <= undefined_thing;
end;`)
	stmt := units[1].LibUnit.Stmts[0]
	assert.Nil(t, stmt.Target.Ref)
}

func TestLibrarySupersede(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	file, err := Parse(NewSourceFile("t.vhdl", []byte("entity e is end;\nentity e is end;")), lib.Options(), ParseMode{})
	require.NoError(t, err)
	first, second := file.Units[0], file.Units[1]
	lib.Insert(first)
	lib.Insert(second)
	assert.Nil(t, first.LibUnit)
	assert.NotNil(t, second.LibUnit)
	assert.Same(t, second, lib.Lookup("work", "e"))
	assert.Equal(t, []*Node{second}, lib.Units("work"))
	require.NoError(t, lib.Resolve(first))
}

func TestLibraryPurge(t *testing.T) {
	lib := NewLibrary(DefaultOptions())
	analyze(t, lib, "entity e is end;")
	require.NotNil(t, lib.Lookup("work", "e"))
	lib.Purge()
	assert.Nil(t, lib.Lookup("work", "e"))
	assert.Empty(t, lib.Units("work"))
	assert.NotNil(t, lib.Standard(), "built-in libraries survive a purge")
}

func TestLibraryUnitKeys(t *testing.T) {
	file := parseText(t, `entity e is end;
architecture rtl of e is begin end;
package p is end;
package body p is end;`, ParseMode{})
	var keys []string
	for _, du := range file.Units {
		keys = append(keys, UnitKey(du.LibUnit))
	}
	assert.Equal(t, []string{"e", "e(rtl)", "p", "p body"}, keys)
}

func TestLibrarySynopsys(t *testing.T) {
	opts := DefaultOptions()
	lib := NewLibrary(opts)
	assert.Nil(t, lib.Lookup(LibIEEE, "std_logic_arith"))
	opts.IEEE = IEEESynopsys
	lib.SetOptions(opts)
	assert.NotNil(t, lib.Lookup(LibIEEE, "std_logic_arith"))
	assert.NotNil(t, lib.Lookup(LibIEEE, "std_logic_unsigned"))
}

func TestBuiltinPackagesResolve(t *testing.T) {
	opts := DefaultOptions()
	opts.IEEE = IEEESynopsys
	lib := NewLibrary(opts)
	for _, name := range []string{"standard", "textio"} {
		du := lib.Lookup(LibStd, name)
		require.NotNil(t, du, name)
		require.NoError(t, lib.Resolve(du), name)
	}
	for _, name := range []string{"std_logic_1164", "numeric_std", "numeric_bit", "math_real",
		"std_logic_misc", "std_logic_textio", "std_logic_arith", "std_logic_unsigned", "std_logic_signed"} {
		du := lib.Lookup(LibIEEE, name)
		require.NotNil(t, du, name)
		require.NoError(t, lib.Resolve(du), name)
	}
}
