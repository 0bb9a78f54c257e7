// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for coreutils.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/coreutils/internal/builtin"
	"github.com/invowk/coreutils/internal/config"
	"github.com/invowk/coreutils/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "POSIX utilities in a single binary",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - POSIX utilities in a single binary") + `

Every utility is also reachable through a symlink named after it:

  ln -s coreutils mkdir
  ./mkdir -p -m 750 a/b/c

` + SubtitleStyle.Render("Examples:") + `
  coreutils mkdir -p build/out     Create a directory tree
  coreutils sh -c 'mkdir -p x/y'   Run a script with the built-ins
  coreutils list                   Show every utility and its flags`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Utilities parse their own arguments; see runUtilityCommand.
			if cmd.DisableFlagParsing {
				return nil
			}
			return app.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return unknownUtilityError(args[0])
		},
	}

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/coreutils/config.cue)")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error (default from config, else warn)")

	root.AddGroup(
		&cobra.Group{ID: utilityGroup, Title: "Utilities:"},
		&cobra.Group{ID: toolGroup, Title: "Tools:"},
	)
	for _, name := range app.Registry.Names() {
		root.AddCommand(newUtilityCommand(app, name))
	}
	root.AddCommand(newShCommand(app))
	root.AddCommand(newListCommand(app))
	root.AddCommand(newConfigCommand(app))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process. When the binary is invoked
// under the name of a registered utility (a multi-call symlink), that
// utility runs directly without the cobra layer.
func Execute() {
	builtin.Version = Version
	app := NewApp(Dependencies{})

	if name := multiCallName(os.Args[0], app.Registry); name != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := app.setup(ctx)
		if err == nil {
			err = app.runUtility(ctx, name, append([]string{name}, os.Args[1:]...))
		}
		stop()
		if err != nil && !alreadyReported(err) {
			fmt.Fprintln(app.stderr, formatErrorForDisplay(err, app.cfg.UI.Verbose))
		}
		os.Exit(int(exitCodeOf(err)))
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// multiCallName returns the utility that argv0 names, or "" when argv0 is
// the coreutils binary itself or names no registered utility.
func multiCallName(argv0 string, registry *builtin.Registry) string {
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	if name == config.AppName {
		return ""
	}
	if _, ok := registry.Lookup(name); !ok {
		return ""
	}
	return name
}

// handleError is the fang error handler. Utilities have already printed
// their GNU-style diagnostics, so only errors they did not report reach
// the terminal.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	if alreadyReported(err) {
		return
	}
	if id := issueFor(err); id != 0 {
		defer a.renderIssue(id)
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.cfg.UI.Verbose))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
