// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/coreutils/internal/builtin"
	"github.com/invowk/coreutils/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

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

// exitCodeOf returns the process exit status for an error returned by a
// command: the carried code for either ExitError type, otherwise what
// builtin.ExitCodeOf decides.
func exitCodeOf(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return builtin.ExitCodeOf(err)
}

// alreadyReported reports whether err's diagnostics were printed by the
// command that produced it.
func alreadyReported(err error) bool {
	var exitErr *ExitError
	var builtinErr *builtin.ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil || errors.As(err, &builtinErr)
}
