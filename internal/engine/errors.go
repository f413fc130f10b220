package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownSwitch is returned when the file list holds an unrecognized
// "--" argument.
var ErrUnknownSwitch = errors.New("unknown property")

// ConfigError is a configuration fault detected before checking starts.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FatalError is an unreadable file or a front-end failure. It aborts the run.
type FatalError struct {
	Msg string
	Err error
}

func (e *FatalError) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *FatalError) Unwrap() error { return e.Err }

// Exit codes of a run.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
	ExitFatal  = 3
)

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var cfg *ConfigError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUnknownSwitch), errors.As(err, &cfg):
		return ExitUsage
	}
	return ExitFatal
}
