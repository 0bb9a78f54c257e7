// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"strconv"

	"github.com/invowk/coreutils/pkg/types"
)

// whoamiCommand prints the user name associated with the effective user ID.
type whoamiCommand struct {
	name   string
	flags  []FlagInfo
	lookup func(uid string) (*user.User, error)
}

func init() {
	RegisterDefault(newWhoamiCommand())
}

func newWhoamiCommand() *whoamiCommand {
	return &whoamiCommand{
		name:   "whoami",
		lookup: user.LookupId,
	}
}

// Name returns the command name.
func (c *whoamiCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *whoamiCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the whoami command.
// Usage: whoami
func (c *whoamiCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	if done, err := parseFlags(hc, set, args, ""); done {
		return err
	}
	if set.NArg() > 0 {
		return usageError(hc, c.name, fmt.Errorf("extra operand '%s'", set.Arg(0)))
	}

	uid := strconv.Itoa(os.Geteuid())
	u, err := c.lookup(uid)
	if err != nil {
		fmt.Fprintf(hc.Stderr, "%s: cannot find name for user ID %s\n", c.name, uid)
		return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
	}
	fmt.Fprintln(hc.Stdout, u.Username)
	return nil
}
