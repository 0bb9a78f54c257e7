// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/coreutils/internal/issue"
	"github.com/invowk/coreutils/internal/vshell"
)

type scriptSource struct {
	// inline is set by -c.
	inline bool
	script string
}

func newShCommand(app *App) *cobra.Command {
	var src scriptSource

	cmd := &cobra.Command{
		Use:   "sh [-c SCRIPT | FILE] [ARG]...",
		Short: "Run a POSIX shell script with the built-in utilities",
		Long: `Run a POSIX shell script in an embedded interpreter.

Commands named after a registered utility run the built-in implementation.
Other commands run as host binaries unless shell.fallback_to_host is false.

The script is taken from -c, from FILE, or from standard input.`,
		GroupID: toolGroup,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src.inline = cmd.Flags().Changed("command")
			return runScript(cmd.Context(), app, src, args)
		},
	}

	cmd.Flags().StringVarP(&src.script, "command", "c", "", "read commands from `SCRIPT`")
	// Everything after the script or file belongs to the script.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runScript(ctx context.Context, app *App, src scriptSource, args []string) error {
	name := "sh"
	script := src.script
	stdin := app.stdin

	switch {
	case src.inline:
	case len(args) > 0:
		name = args[0]
		path := name
		if !filepath.IsAbs(path) && app.dir != "" {
			path = filepath.Join(app.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return issue.WrapWithContext(err, "read script", name)
		}
		script = string(data)
		args = args[1:]
	default:
		data, err := io.ReadAll(app.stdin)
		if err != nil {
			return fmt.Errorf("failed to read script from stdin: %w", err)
		}
		script = string(data)
		stdin = nil
	}

	sh := &vshell.Shell{
		Registry: app.Registry,
		Builtins: app.cfg.Shell.EnableBuiltins,
		Fallback: app.cfg.Shell.FallbackToHost,
		Logger:   app.logger,
	}

	code, err := sh.Run(ctx, script, vshell.Options{
		Dir:    app.dir,
		Stdin:  stdin,
		Stdout: app.stdout,
		Stderr: app.stderr,
		Args:   args,
		Name:   name,
	})
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		app.logger.Debug("script exited", "name", name, "status", code)
		return &ExitError{Code: code}
	}
	return nil
}
