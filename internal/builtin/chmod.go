// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/coreutils/pkg/filemode"
	"github.com/invowk/coreutils/pkg/types"
)

type (
	// chmodCommand implements chmod with the same mode language as mkdir -m.
	chmodCommand struct {
		name  string
		flags []FlagInfo
	}

	chmodOptions struct {
		recursive bool
		verbose   bool
		changes   bool
		silent    bool
	}
)

var errModeWithReference = errors.New("cannot combine mode and --reference options")

func init() {
	RegisterDefault(newChmodCommand())
}

// newChmodCommand creates a new chmod command.
func newChmodCommand() *chmodCommand {
	return &chmodCommand{
		name: "chmod",
		flags: []FlagInfo{
			{Name: "recursive", ShortName: "R", Description: "change files and directories recursively"},
			{Name: "verbose", ShortName: "v", Description: "output a diagnostic for every file processed"},
			{Name: "changes", ShortName: "c", Description: "like verbose but report only when a change is made"},
			{Name: "silent", ShortName: "f", Description: "suppress most error messages"},
			{Name: "reference", Description: "use RFILE's mode instead of MODE values", TakesValue: true},
		},
	}
}

// Name returns the command name.
func (c *chmodCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *chmodCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the chmod command.
// Usage: chmod [OPTION]... MODE[,MODE]... FILE...
//
//	chmod [OPTION]... --reference=RFILE FILE...
func (c *chmodCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	// A mode such as "-w" looks like a flag; pull it out before parsing.
	modeArg, rest := extractDashMode(args)

	set := newFlagSet(c.name)
	var opts chmodOptions
	set.BoolVarP(&opts.recursive, "recursive", "R", false, "change files and directories recursively")
	set.BoolVarP(&opts.verbose, "verbose", "v", false, "output a diagnostic for every file processed")
	set.BoolVarP(&opts.changes, "changes", "c", false, "like verbose but report only when a change is made")
	set.BoolVarP(&opts.silent, "silent", "f", false, "suppress most error messages")
	set.BoolVar(&opts.silent, "quiet", false, "same as --silent")
	reference := set.String("reference", "", "use RFILE's mode instead of specifying MODE values")
	version := set.Bool("version", false, "output version information and exit")

	if done, err := parseFlags(hc, set, rest, "[OPTION]... MODE[,MODE]... FILE..."); done {
		return err
	}
	if *version {
		fmt.Fprintf(hc.Stdout, "%s (coreutils) %s\n", c.name, Version)
		return nil
	}

	operands := set.Args()
	var expr *filemode.Expr
	switch {
	case set.Changed("reference"):
		if modeArg != "" {
			fmt.Fprintf(hc.Stderr, "%s: cannot combine mode and --reference options\n", c.name)
			return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, errModeWithReference)}
		}
		info, err := os.Stat(hc.abs(*reference))
		if err != nil {
			fmt.Fprintf(hc.Stderr, "%s: failed to get attributes of '%s': %s\n", c.name, *reference, describeErr(err))
			return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
		}
		// An octal expression reproduces the reference mode exactly.
		expr = filemode.Octal(filemode.FromFileMode(info.Mode()))
	default:
		if modeArg == "" {
			if len(operands) == 0 {
				return usageError(hc, c.name, errMissingOperand)
			}
			modeArg, operands = operands[0], operands[1:]
		}
		var err error
		if expr, err = filemode.Parse(modeArg); err != nil {
			fmt.Fprintf(hc.Stderr, "%s: invalid mode: '%s'\n", c.name, modeArg)
			return &ExitError{Code: types.ExitFailure, Err: wrapError(c.name, err)}
		}
	}

	if len(operands) == 0 {
		return usageError(hc, c.name, fmt.Errorf("missing operand after '%s'", expr))
	}

	var errs []error
	for _, op := range operands {
		if err := c.apply(hc, expr, op, opts); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &ExitError{Code: types.ExitFailure, Err: errors.Join(errs...)}
	}
	return nil
}

// apply changes the mode of one operand, descending into it with -R.
func (c *chmodCommand) apply(hc *HandlerContext, expr *filemode.Expr, operand string, opts chmodOptions) error {
	root := hc.abs(operand)
	if !opts.recursive {
		return c.change(hc, expr, root, operand, opts)
	}

	var errs []error
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		display := operand
		if rel, relErr := filepath.Rel(root, path); relErr == nil && rel != "." {
			display = filepath.Join(operand, rel)
		}
		if err != nil {
			c.report(hc, opts, "cannot access '%s': %s", display, describeErr(err))
			errs = append(errs, err)
			return nil
		}
		// Symlinks met during the walk are not followed.
		if d.Type()&fs.ModeSymlink != 0 && path != root {
			return nil
		}
		if err := c.change(hc, expr, path, display, opts); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return errors.Join(errs...)
}

// change applies expr to a single path.
func (c *chmodCommand) change(hc *HandlerContext, expr *filemode.Expr, path, display string, opts chmodOptions) error {
	info, err := os.Stat(path)
	if err != nil {
		c.report(hc, opts, "cannot access '%s': %s", display, describeErr(err))
		return err
	}

	old := filemode.FromFileMode(info.Mode())
	next := expr.Apply(old)
	if next != old {
		if err := os.Chmod(path, next.FileMode()); err != nil {
			c.report(hc, opts, "changing permissions of '%s': %s", display, describeErr(err))
			return err
		}
	}

	hc.logger().Debug("chmod", "path", display, "from", old, "to", next)
	switch {
	case next != old && (opts.verbose || opts.changes):
		fmt.Fprintf(hc.Stdout, "mode of '%s' changed from %s (%s) to %s (%s)\n",
			display, old, old.Symbolic(), next, next.Symbolic())
	case next == old && opts.verbose:
		fmt.Fprintf(hc.Stdout, "mode of '%s' retained as %s (%s)\n", display, old, old.Symbolic())
	}
	return nil
}

func (c *chmodCommand) report(hc *HandlerContext, opts chmodOptions, format string, args ...any) {
	if opts.silent {
		return
	}
	fmt.Fprintf(hc.Stderr, c.name+": "+format+"\n", args...)
}

// extractDashMode finds the first operand that is a mode expression starting
// with '-' (e.g. "-w" or "-x,u+r") and removes it from args.
func extractDashMode(args []string) (string, []string) {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
			continue
		}
		if _, err := filemode.Parse(arg); err == nil {
			rest := make([]string, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			return arg, append(rest, args[i+1:]...)
		}
	}
	return "", args
}
