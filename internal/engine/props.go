package engine

import "strings"

// Props is the property set attached to an input when it is listed.
type Props uint8

const (
	PropImport Props = 1 << iota
	PropSynth
	PropTop
	PropTB
)

// DefaultProps applies to files listed before any property switch.
const DefaultProps = PropSynth

// Has reports whether every flag of f is set.
func (p Props) Has(f Props) bool { return p&f == f }

func (p Props) String() string {
	var names []string
	for _, f := range []struct {
		flag Props
		name string
	}{{PropImport, "import"}, {PropSynth, "synth"}, {PropTop, "top"}, {PropTB, "tb"}} {
		if p.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// IsSwitch reports whether an argument of the file list is a property switch
// rather than a file name.
func IsSwitch(arg string) bool { return strings.HasPrefix(arg, "--") }

// SwitchProps returns the property set selected by a switch.
func SwitchProps(arg string) (Props, bool) {
	switch arg {
	case "--import":
		return PropImport, true
	case "--synth":
		return PropSynth, true
	case "--top":
		return PropSynth | PropTop, true
	case "--tb":
		return PropTB, true
	}
	return 0, false
}
