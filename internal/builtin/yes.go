// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"bufio"
	"context"
	"strings"
)

// yesCommand repeatedly prints a line until its output fails or the context
// is cancelled.
type yesCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newYesCommand())
}

func newYesCommand() *yesCommand {
	return &yesCommand{name: "yes"}
}

// Name returns the command name.
func (c *yesCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *yesCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the yes command.
// Usage: yes [STRING]...
func (c *yesCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	line := "y"
	if len(args) > 1 {
		line = strings.Join(args[1:], " ")
	}
	line += "\n"

	w := bufio.NewWriter(hc.Stdout)
	for {
		select {
		case <-ctx.Done():
			_ = w.Flush()
			return wrapError(c.name, ctx.Err())
		default:
		}
		// Fill the buffer between cancellation checks.
		for w.Available() >= len(line) {
			if _, err := w.WriteString(line); err != nil {
				return wrapError(c.name, err)
			}
		}
		if _, err := w.WriteString(line); err != nil {
			return wrapError(c.name, err)
		}
	}
}
