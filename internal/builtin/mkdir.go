// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/invowk/coreutils/internal/dirtree"
	"github.com/invowk/coreutils/pkg/filemode"
	"github.com/invowk/coreutils/pkg/types"
)

// mkdirCommand implements mkdir on top of the dirtree materializer.
type mkdirCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newMkdirCommand())
}

// newMkdirCommand creates a new mkdir command.
func newMkdirCommand() *mkdirCommand {
	return &mkdirCommand{
		name: "mkdir",
		flags: []FlagInfo{
			{Name: "mode", ShortName: "m", Description: "set file mode (as in chmod), not a=rwx - umask", TakesValue: true},
			{Name: "parents", ShortName: "p", Description: "no error if existing, make parent directories as needed"},
			{Name: "verbose", ShortName: "v", Description: "print a message for each created directory"},
			{Name: "context", ShortName: "Z", Description: "set the SELinux security context (not supported)"},
		},
	}
}

// Name returns the command name.
func (c *mkdirCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *mkdirCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the mkdir command.
// Usage: mkdir [OPTION]... DIRECTORY...
func (c *mkdirCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	modeSpec := set.StringP("mode", "m", "", "set file mode (as in chmod), not a=rwx - umask")
	parents := set.BoolP("parents", "p", false, "no error if existing, make parent directories as needed")
	verbose := set.BoolP("verbose", "v", false, "print a message for each created directory")
	set.StringP("context", "Z", "", "set the SELinux security context of each created directory to CTX")
	set.Lookup("context").NoOptDefVal = "default"
	version := set.Bool("version", false, "output version information and exit")

	if done, err := parseFlags(hc, set, args, "[OPTION]... DIRECTORY..."); done {
		return err
	}
	if *version {
		fmt.Fprintf(hc.Stdout, "%s (coreutils) %s\n", c.name, Version)
		return nil
	}

	operands := set.Args()
	if len(operands) == 0 {
		return usageError(hc, c.name, errMissingOperand)
	}

	// The mode is compiled before anything touches the filesystem.
	var mode *filemode.Mode
	if set.Changed("mode") {
		m, err := filemode.Compile(*modeSpec)
		if err != nil {
			fmt.Fprintf(hc.Stderr, "%s: cannot create directory: invalid mode '%s'\n", c.name, *modeSpec)
			return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
		}
		mode = &m
	}

	if set.Changed("context") {
		fmt.Fprintf(hc.Stderr, "%s: warning: SELinux/SMACK context support not implemented\n", c.name)
	}

	logger := hc.logger()
	m := dirtree.New(
		dirtree.WithLogger(logger),
		dirtree.WithNotifier(dirtree.NotifierFunc(func(path string) {
			fmt.Fprintf(hc.Stdout, "%s: created directory '%s'\n", c.name, path)
		})),
	)

	reqs := make([]dirtree.Request, 0, len(operands))
	for _, op := range operands {
		reqs = append(reqs, dirtree.Request{
			Path:    op,
			Dir:     hc.Dir,
			Mode:    mode,
			Parents: *parents,
			Verbose: *verbose,
		})
	}

	summary := m.CreateAll(reqs, dirtree.BatchOptions{
		Report: func(r dirtree.Result) {
			if !r.OK() {
				fmt.Fprintf(hc.Stderr, "%s: cannot create directory '%s': %s\n", c.name, r.Path, r.Reason())
			}
		},
	})

	code := summary.ExitCode()
	if code.IsSuccess() {
		return nil
	}
	failed := summary.Failed()
	errs := make([]error, 0, len(failed))
	for _, r := range failed {
		errs = append(errs, r.Err)
	}
	logger.Debug("mkdir finished with failures", "failed", len(failed), "total", len(reqs))
	return &ExitError{Code: code, Err: errors.Join(errs...)}
}
