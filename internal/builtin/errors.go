// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"

	"github.com/invowk/coreutils/pkg/types"
)

// ErrUnknownCommand is the sentinel error wrapped by UnknownCommandError.
var ErrUnknownCommand = errors.New("command not found")

type (
	// ExitError carries the exit status of a command that has already
	// reported its own diagnostics.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// UnknownCommandError is returned by Registry.Run for an unregistered name.
	UnknownCommandError struct {
		Name string
	}
)

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, ErrUnknownCommand)
}

// Unwrap returns ErrUnknownCommand for errors.Is.
func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// ExitCodeOf maps an error returned by Command.Run to an exit status:
// 0 for nil, the carried code for *ExitError, 127 for an unknown command and
// 1 for anything else.
func ExitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrUnknownCommand) {
		return types.ExitCommandNotFound
	}
	return types.ExitFailure
}

// wrapError prefixes err with the command name. Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", cmdName, err)
}
