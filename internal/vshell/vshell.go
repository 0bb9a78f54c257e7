// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/coreutils/internal/builtin"
	"github.com/invowk/coreutils/pkg/types"
)

type (
	// Shell runs scripts with built-in utilities.
	Shell struct {
		// Registry supplies the built-ins. Nil means builtin.DefaultRegistry.
		Registry *builtin.Registry
		// Builtins enables routing registered commands to the registry.
		Builtins bool
		// Fallback lets unregistered commands run as host binaries.
		Fallback bool
		// Logger receives debug output. Nil means discard.
		Logger *log.Logger
	}

	// Options describes one script run.
	Options struct {
		// Dir is the initial working directory. Empty means the process's.
		Dir string
		// Env is the environment as KEY=VALUE pairs. Nil means os.Environ().
		Env []string
		// Stdin, Stdout and Stderr are the script's standard streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Args are the positional parameters ($1, $2, ...).
		Args []string
		// Name is used in syntax error messages.
		Name string
	}
)

// New returns a Shell backed by the default registry with built-ins and
// host fallback enabled.
func New(logger *log.Logger) *Shell {
	return &Shell{
		Registry: builtin.DefaultRegistry,
		Builtins: true,
		Fallback: true,
		Logger:   logger,
	}
}

// Validate reports whether script parses.
func (s *Shell) Validate(script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run parses and executes script. The returned exit code is the script's
// status; err is only set when the script could not be run at all (syntax
// error, bad working directory, interpreter failure).
func (s *Shell) Run(ctx context.Context, script string, opts Options) (types.ExitCode, error) {
	name := opts.Name
	if name == "" {
		name = "script"
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return types.ExitFailure, fmt.Errorf("failed to parse script: %w", err)
	}

	env := opts.Env
	if env == nil {
		env = os.Environ()
	}

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(opts.Stdin, opts.Stdout, opts.Stderr),
		interp.ExecHandlers(s.execHandler),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}

	// Prepend "--" to signal end of options; without it, args like "-v"
	// would be read as shell options by interp.Params().
	if len(opts.Args) > 0 {
		params := append([]string{"--"}, opts.Args...)
		runnerOpts = append(runnerOpts, interp.Params(params...))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return types.ExitCode(exitStatus), nil
		}
		return types.ExitFailure, fmt.Errorf("script execution failed: %w", err)
	}
	return types.ExitSuccess, nil
}

// execHandler routes commands to the registry before the next handler.
func (s *Shell) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if s.Builtins {
			if handled, err := s.tryBuiltin(ctx, args); handled {
				return err
			}
		}
		if !s.Fallback {
			hc := interp.HandlerCtx(ctx)
			fmt.Fprintf(hc.Stderr, "%s: command not found\n", args[0])
			s.logger().Debug("host fallback disabled", "command", args[0])
			return interp.ExitStatus(types.ExitCommandNotFound)
		}
		return next(ctx, args)
	}
}

// tryBuiltin runs args with a registered command.
//
//   - (false, nil): not registered, the caller decides about the host
//   - (true, nil): handled successfully
//   - (true, interp.ExitStatus): handled and failed; a registered command
//     never falls back to a host binary
func (s *Shell) tryBuiltin(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	cmd, found := s.registry().Lookup(args[0])
	if !found {
		return false, nil
	}

	hc := builtin.ExtractHandlerContext(ctx, s.Logger)
	err := cmd.Run(builtin.WithHandlerContext(ctx, hc), args)
	if err == nil {
		return true, nil
	}

	var exitErr *builtin.ExitError
	if !errors.As(err, &exitErr) {
		// Not yet reported by the command itself.
		fmt.Fprintln(hc.Stderr, err)
	}
	code := builtin.ExitCodeOf(err)
	s.logger().Debug("built-in failed", "command", args[0], "status", code, "err", err)
	return true, interp.ExitStatus(code)
}

func (s *Shell) registry() *builtin.Registry {
	if s.Registry != nil {
		return s.Registry
	}
	return builtin.DefaultRegistry
}

func (s *Shell) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}
