package vhdl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is returned by SetOption for flags the front-end does not handle.
var ErrUnknownOption = errors.New("unknown option")

// Std is a VHDL language revision.
type Std int

const (
	Std87 Std = iota
	Std93
	Std93c
	Std00
	Std02
	Std08
)

var stdNames = map[string]Std{
	"87":  Std87,
	"93":  Std93,
	"93c": Std93c,
	"00":  Std00,
	"02":  Std02,
	"08":  Std08,
}

func (s Std) String() string {
	for k, v := range stdNames {
		if v == s {
			return k
		}
	}
	return "unknown"
}

// ParseStd converts a revision name ("87", "93c", "08", ...) to a Std.
func ParseStd(name string) (Std, error) {
	s, ok := stdNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown standard %q", name)
	}
	return s, nil
}

// IEEE flavor of the built-in ieee library.
type IEEE int

const (
	IEEEStandard IEEE = iota
	IEEESynopsys
)

// Options configures the front-end.
type Options struct {
	Std     Std
	Work    string
	IEEE    IEEE
	Relaxed bool
}

// DefaultOptions returns the options used when nothing is set.
func DefaultOptions() Options {
	return Options{Std: Std93c, Work: "work", IEEE: IEEEStandard}
}

// SetOption applies a single command line flag.
func (o *Options) SetOption(flag string) error {
	switch {
	case strings.HasPrefix(flag, "--std="):
		s, err := ParseStd(strings.TrimPrefix(flag, "--std="))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownOption, flag)
		}
		o.Std = s
	case strings.HasPrefix(flag, "--work="):
		name := strings.TrimPrefix(flag, "--work=")
		if !isSimpleIdentifier(name) {
			return fmt.Errorf("%w: %s", ErrUnknownOption, flag)
		}
		o.Work = strings.ToLower(name)
	case strings.HasPrefix(flag, "--ieee="):
		switch strings.TrimPrefix(flag, "--ieee=") {
		case "standard":
			o.IEEE = IEEEStandard
		case "synopsys":
			o.IEEE = IEEESynopsys
		default:
			return fmt.Errorf("%w: %s", ErrUnknownOption, flag)
		}
	case flag == "-frelaxed" || flag == "-frelaxed-rules":
		o.Relaxed = true
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOption, flag)
	}
	return nil
}

func isSimpleIdentifier(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return true
}
