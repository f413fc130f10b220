package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchProps(t *testing.T) {
	tests := []struct {
		arg  string
		want Props
		ok   bool
	}{
		{"--import", PropImport, true},
		{"--synth", PropSynth, true},
		{"--top", PropSynth | PropTop, true},
		{"--tb", PropTB, true},
		{"--std=08", 0, false},
		{"--topp", 0, false},
	}
	for _, tt := range tests {
		got, ok := SwitchProps(tt.arg)
		assert.Equal(t, tt.ok, ok, tt.arg)
		assert.Equal(t, tt.want, got, tt.arg)
	}
}

func TestPropsString(t *testing.T) {
	assert.Equal(t, "{synth}", DefaultProps.String())
	assert.Equal(t, "{synth,top}", (PropSynth | PropTop).String())
	assert.Equal(t, "{}", Props(0).String())
	assert.True(t, (PropSynth | PropTop).Has(PropSynth))
	assert.False(t, PropTB.Has(PropSynth))
}

func TestIsSwitch(t *testing.T) {
	assert.True(t, IsSwitch("--tb"))
	assert.False(t, IsSwitch("-v"))
	assert.False(t, IsSwitch("file.vhdl"))
}
