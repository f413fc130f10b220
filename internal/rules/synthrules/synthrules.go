// Package synthrules holds the rules that only apply to units meant for
// synthesis.
package synthrules

import "github.com/robert-at-pretension-io/vhdl-style/internal/engine"

// All returns every synthesis rule.
func All() []*engine.Rule {
	return []*engine.Rule{SynthProcesses()}
}

// Tests returns the self-tests of every synthesis rule.
func Tests() []engine.TestCase {
	return synthProcessesTests()
}
