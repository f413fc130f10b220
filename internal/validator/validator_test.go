package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		wantErr bool
	}{
		{name: "empty", data: map[string]any{}},
		{
			name: "full",
			data: map[string]any{
				"standard":           "93c",
				"work":               "work",
				"ieee":               "synopsys",
				"quiet":              true,
				"max_parallel_files": 4,
				"rules":              map[string]any{"NoTAB": "off", "Keywords": "on"},
				"style": map[string]any{
					"line_length":         100,
					"indent_width":        3,
					"extension":           ".vhd",
					"allowed_attributes":  []any{"keep"},
					"ieee_extra_packages": []any{"math_real"},
				},
				"lint":     map[string]any{"import_patterns": []any{"ip/**"}},
				"policies": "policies",
			},
		},
		{name: "bad standard", data: map[string]any{"standard": "2019"}, wantErr: true},
		{name: "bad rule state", data: map[string]any{"rules": map[string]any{"NoTAB": "warning"}}, wantErr: true},
		{name: "negative line length", data: map[string]any{"style": map[string]any{"line_length": -1}}, wantErr: true},
		{name: "zero indent width", data: map[string]any{"style": map[string]any{"indent_width": 0}}, wantErr: true},
		{name: "extension without dot", data: map[string]any{"style": map[string]any{"extension": "vhd"}}, wantErr: true},
		{name: "unknown key", data: map[string]any{"libraries": map[string]any{}}, wantErr: true},
		{name: "bad work name", data: map[string]any{"work": "1lib"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func emptyTables() map[string]any {
	out := map[string]any{}
	for _, k := range []string{
		"files", "entities", "architectures", "packages", "ports", "generics", "signals",
		"constants", "processes", "instances", "use_clauses", "library_clauses", "dependencies",
	} {
		out[k] = []any{}
	}
	return out
}

func TestValidateFacts(t *testing.T) {
	require.NoError(t, ValidateFacts(emptyTables()))

	tables := emptyTables()
	tables["ports"] = []any{map[string]any{
		"entity": "e", "name": "clk_i", "direction": "in", "type": "std_logic",
		"file": "e.vhd", "line": 3,
	}}
	require.NoError(t, ValidateFacts(tables))

	tables["ports"] = []any{map[string]any{
		"entity": "e", "name": "clk_i", "direction": "sideways", "type": "std_logic",
		"file": "e.vhd", "line": 3,
	}}
	assert.Error(t, ValidateFacts(tables), "direction outside the enum")
}

func TestValidateFactsRejectsMisspelledField(t *testing.T) {
	tables := emptyTables()
	tables["entities"] = []any{map[string]any{
		"name": "e", "library": "work", "file": "e.vhd", "lines": 1,
	}}
	v, err := NewFacts()
	require.NoError(t, err)
	errs := v.Errors(tables)
	require.NotEmpty(t, errs)
}
