// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/coreutils/pkg/types"
)

// pwdCommand implements the pwd utility.
type pwdCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newPwdCommand())
}

// newPwdCommand creates a new pwd command.
func newPwdCommand() *pwdCommand {
	return &pwdCommand{
		name: "pwd",
		flags: []FlagInfo{
			{Name: "logical", ShortName: "L", Description: "use PWD from environment, even if it contains symlinks"},
			{Name: "physical", ShortName: "P", Description: "avoid all symlinks (default)"},
		},
	}
}

// Name returns the command name.
func (c *pwdCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *pwdCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the pwd command.
// Usage: pwd [-L|-P]
func (c *pwdCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	logical := set.BoolP("logical", "L", false, "use PWD from environment, even if it contains symlinks")
	physical := set.BoolP("physical", "P", false, "avoid all symlinks")

	if done, err := parseFlags(hc, set, args, "[OPTION]..."); done {
		return err
	}
	if set.NArg() > 0 {
		hc.logger().Debug("ignoring non-option arguments", "args", set.Args())
	}

	// The last of -L and -P wins; pflag cannot tell us the order, so an
	// explicit -P beats -L.
	if *logical && !*physical {
		if dir, ok := logicalDir(hc); ok {
			fmt.Fprintln(hc.Stdout, dir)
			return nil
		}
	}

	dir, err := filepath.EvalSymlinks(hc.Dir)
	if err != nil {
		fmt.Fprintf(hc.Stderr, "%s: %s\n", c.name, describeErr(err))
		return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
	}
	fmt.Fprintln(hc.Stdout, dir)
	return nil
}

// logicalDir returns $PWD when it is an absolute path naming hc.Dir.
func logicalDir(hc *HandlerContext) (string, bool) {
	if hc.LookupEnv == nil {
		return "", false
	}
	pwd, ok := hc.LookupEnv("PWD")
	if !ok || !filepath.IsAbs(pwd) {
		return "", false
	}
	for _, elem := range strings.Split(filepath.ToSlash(pwd), "/") {
		if elem == "." || elem == ".." {
			return "", false
		}
	}
	a, err := os.Stat(pwd)
	if err != nil {
		return "", false
	}
	b, err := os.Stat(hc.Dir)
	if err != nil || !os.SameFile(a, b) {
		return "", false
	}
	return pwd, true
}
