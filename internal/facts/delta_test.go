package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDelta(t *testing.T) {
	clocked := ProcessRow{
		Label: "p_count", File: "counter.vhd", Line: 28, InArch: "counter(arch)",
		Sensitivity: []string{"clk_i"}, Clocked: true,
	}

	tests := []struct {
		name    string
		prev    Tables
		next    Tables
		rows    func(Tables) int
		added   int
		removed int
	}{
		{
			name:    "entity renamed",
			prev:    Tables{Entities: []EntityRow{{Name: "a", Library: "work", File: "f.vhd", Line: 1}}},
			next:    Tables{Entities: []EntityRow{{Name: "b", Library: "work", File: "f.vhd", Line: 1}}},
			rows:    func(d Tables) int { return len(d.Entities) },
			added:   1,
			removed: 1,
		},
		{
			name:    "use clause replaced",
			prev:    Tables{UseClauses: []UseClauseRow{{File: "f.vhd", Item: "ieee.std_logic_1164.all", Line: 2}}},
			next:    Tables{UseClauses: []UseClauseRow{{File: "f.vhd", Item: "ieee.numeric_std.all", Line: 2}}},
			rows:    func(d Tables) int { return len(d.UseClauses) },
			added:   1,
			removed: 1,
		},
		{
			name:    "generic type changed",
			prev:    Tables{Generics: []GenericRow{{Entity: "counter", Name: "g_width", Type: "natural", File: "counter.vhd", Line: 6}}},
			next:    Tables{Generics: []GenericRow{{Entity: "counter", Name: "g_width", Type: "positive", File: "counter.vhd", Line: 6}}},
			rows:    func(d Tables) int { return len(d.Generics) },
			added:   1,
			removed: 1,
		},
		{
			name:    "generic unchanged",
			prev:    Tables{Generics: []GenericRow{{Entity: "counter", Name: "g_width", Type: "natural", File: "counter.vhd", Line: 6}}},
			next:    Tables{Generics: []GenericRow{{Entity: "counter", Name: "g_width", Type: "natural", File: "counter.vhd", Line: 6}}},
			rows:    func(d Tables) int { return len(d.Generics) },
			added:   0,
			removed: 0,
		},
		{
			name:    "constant value changed",
			prev:    Tables{Constants: []ConstantRow{{Name: "c_one", Type: "natural", Value: "1", File: "counter.vhd", Line: 25, Scope: "counter(arch)"}}},
			next:    Tables{Constants: []ConstantRow{{Name: "c_one", Type: "natural", Value: "2", File: "counter.vhd", Line: 25, Scope: "counter(arch)"}}},
			rows:    func(d Tables) int { return len(d.Constants) },
			added:   1,
			removed: 1,
		},
		{
			name:    "constant added",
			next:    Tables{Constants: []ConstantRow{{Name: "c_one", Type: "natural", Value: "1", File: "counter.vhd", Line: 25, Scope: "counter(arch)"}}},
			rows:    func(d Tables) int { return len(d.Constants) },
			added:   1,
			removed: 0,
		},
		{
			name: "process sensitivity changed",
			prev: Tables{Processes: []ProcessRow{clocked}},
			next: Tables{Processes: []ProcessRow{{
				Label: "p_count", File: "counter.vhd", Line: 28, InArch: "counter(arch)",
				Sensitivity: []string{"clk_i", "rst_n_i"}, Clocked: true,
			}}},
			rows:    func(d Tables) int { return len(d.Processes) },
			added:   1,
			removed: 1,
		},
		{
			name: "process no longer clocked",
			prev: Tables{Processes: []ProcessRow{clocked}},
			next: Tables{Processes: []ProcessRow{{
				Label: "p_count", File: "counter.vhd", Line: 28, InArch: "counter(arch)",
				Sensitivity: []string{"clk_i"},
			}}},
			rows:    func(d Tables) int { return len(d.Processes) },
			added:   1,
			removed: 1,
		},
		{
			name:    "process unchanged",
			prev:    Tables{Processes: []ProcessRow{clocked}},
			next:    Tables{Processes: []ProcessRow{clocked}},
			rows:    func(d Tables) int { return len(d.Processes) },
			added:   0,
			removed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := ComputeDelta(tt.prev, tt.next)
			assert.Equal(t, tt.added, tt.rows(delta.Added), "added")
			assert.Equal(t, tt.removed, tt.rows(delta.Removed), "removed")
		})
	}
}

func TestComputeDeltaKeepsRows(t *testing.T) {
	prev := Tables{Processes: []ProcessRow{{Label: "p_a", File: "f.vhd", Line: 3, Sensitivity: []string{"clk_i"}, Clocked: true}}}
	next := Tables{Processes: []ProcessRow{{Label: "p_a", File: "f.vhd", Line: 3, SensAll: true}}}

	delta := ComputeDelta(prev, next)
	require.Len(t, delta.Added.Processes, 1)
	assert.True(t, delta.Added.Processes[0].SensAll)
	require.Len(t, delta.Removed.Processes, 1)
	assert.Equal(t, []string{"clk_i"}, delta.Removed.Processes[0].Sensitivity)

	// Unrelated relations are empty slices, not nil, so they encode as [].
	assert.NotNil(t, delta.Added.Entities)
	assert.Empty(t, delta.Added.Entities)
}
