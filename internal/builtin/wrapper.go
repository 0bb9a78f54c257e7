// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"

	"github.com/u-root/u-root/pkg/core"
)

// baseWrapper provides common functionality for u-root pkg/core wrappers.
type baseWrapper struct {
	name  string
	flags []FlagInfo
	build func() core.Command
}

// Name returns the command name.
func (w *baseWrapper) Name() string {
	return w.name
}

// SupportedFlags returns the flags supported by this command.
func (w *baseWrapper) SupportedFlags() []FlagInfo {
	return w.flags
}

// Run executes a fresh upstream command configured from the handler context.
func (w *baseWrapper) Run(ctx context.Context, args []string) error {
	cmd := w.build()
	configureCommand(ctx, cmd)

	// args[0] is the command name, args[1:] are the actual arguments
	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	if err := cmd.RunContext(ctx, cmdArgs...); err != nil {
		return wrapError(w.name, err)
	}
	return nil
}

// configureCommand wires a u-root core.Command to the handler context.
func configureCommand(ctx context.Context, cmd core.Command) {
	hc := GetHandlerContext(ctx)
	cmd.SetIO(hc.Stdin, hc.Stdout, hc.Stderr)
	cmd.SetWorkingDir(hc.Dir)
	cmd.SetLookupEnv(hc.LookupEnv)
}
