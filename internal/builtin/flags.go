// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"

	"github.com/invowk/coreutils/pkg/types"
)

// Version is reported by the --version flag of every utility.
var Version = "dev"

var errMissingOperand = errors.New("missing operand")

// newFlagSet returns a GNU-style flag set that reports errors through its
// return values instead of printing them.
func newFlagSet(name string) *pflag.FlagSet {
	set := pflag.NewFlagSet(name, pflag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.SortFlags = false
	return set
}

// parseFlags parses args[1:] into set. When done is true the command must
// return err right away: help was printed (err is nil) or the arguments
// were rejected (err is an *ExitError, already reported).
func parseFlags(hc *HandlerContext, set *pflag.FlagSet, args []string, usage string) (done bool, err error) {
	err = set.Parse(args[1:])
	if err == nil {
		return false, nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(hc.Stdout, "Usage: %s %s\n\n%s", set.Name(), usage, set.FlagUsages())
		return true, nil
	}
	return true, usageError(hc, set.Name(), err)
}

// usageError reports err the way GNU tools report bad invocations.
func usageError(hc *HandlerContext, name string, err error) error {
	fmt.Fprintf(hc.Stderr, "%s: %v\nTry '%s --help' for more information.\n", name, err, name)
	return &ExitError{Code: types.ExitFailure, Err: wrapError(name, err)}
}

// describeErr renders an OS error the way strerror(3) does, e.g.
// "No such file or directory".
func describeErr(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
