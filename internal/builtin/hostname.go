// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/invowk/coreutils/pkg/types"
)

// hostnameCommand prints the system host name.
type hostnameCommand struct {
	name     string
	flags    []FlagInfo
	hostname func() (string, error)
}

func init() {
	RegisterDefault(newHostnameCommand())
}

func newHostnameCommand() *hostnameCommand {
	return &hostnameCommand{
		name: "hostname",
		flags: []FlagInfo{
			{Name: "short", ShortName: "s", Description: "print the host name cut at the first dot"},
		},
		hostname: os.Hostname,
	}
}

// Name returns the command name.
func (c *hostnameCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *hostnameCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the hostname command. Setting the host name is not supported.
// Usage: hostname [-s]
func (c *hostnameCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	short := set.BoolP("short", "s", false, "print the host name cut at the first dot")
	if done, err := parseFlags(hc, set, args, "[-s]"); done {
		return err
	}
	if set.NArg() > 0 {
		return usageError(hc, c.name, fmt.Errorf("setting the host name is not supported"))
	}

	name, err := c.hostname()
	if err != nil {
		fmt.Fprintf(hc.Stderr, "%s: %s\n", c.name, describeErr(err))
		return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
	}
	if *short {
		name, _, _ = strings.Cut(name, ".")
	}
	fmt.Fprintln(hc.Stdout, name)
	return nil
}
