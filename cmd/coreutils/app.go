// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/coreutils/internal/builtin"
	"github.com/invowk/coreutils/internal/config"
	"github.com/invowk/coreutils/internal/dirtree"
	"github.com/invowk/coreutils/internal/issue"
	"github.com/invowk/coreutils/pkg/filemode"
)

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App and delegate to it.
	App struct {
		Config   config.Provider
		Registry *builtin.Registry

		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer
		dir       string
		configDir string

		// Set by the global flags.
		cfgFile  string
		logLevel string

		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Registry *builtin.Registry
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
		// Dir is the working directory utilities run in. Empty means the
		// process working directory.
		Dir string
		// ConfigDir overrides the platform config directory.
		ConfigDir string
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Registry:  deps.Registry,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		dir:       deps.Dir,
		configDir: deps.ConfigDir,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Registry == nil {
		app.Registry = builtin.DefaultRegistry
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.cfg = config.DefaultConfig()
	app.logger = newLogger(app.stderr, app.cfg.LogLevel)
	return app
}

// setup loads configuration and configures the logger from the global
// flags. A configuration that fails to load is reported and replaced by
// the defaults.
func (a *App) setup(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		cfg = config.DefaultConfig()
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = config.LogLevel(a.logLevel)
		if valid, errs := level.IsValid(); !valid {
			return errors.Join(errs...)
		}
	}
	a.logger = newLogger(a.stderr, level)

	if err != nil {
		a.renderIssue(issue.ConfigLoadFailedId)
	}
	return nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.cfgFile, ConfigDirPath: a.configDir}
}

// newLogger creates the diagnostic logger. User-facing messages never go
// through it.
func newLogger(w io.Writer, level config.LogLevel) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: config.AppName})
	logger.SetLevel(level.Level())
	return logger
}

// handlerContext describes the App's streams and working directory to a
// built-in utility.
func (a *App) handlerContext() *builtin.HandlerContext {
	hc := builtin.ProcessHandlerContext(a.logger)
	hc.Stdin = a.stdin
	hc.Stdout = a.stdout
	hc.Stderr = a.stderr
	if a.dir != "" {
		hc.Dir = a.dir
	}
	return hc
}

// runUtility runs a registered utility with args (args[0] is the name as
// invoked). Errors the utility did not report itself are printed here, so
// the returned error is always an already-reported *builtin.ExitError.
func (a *App) runUtility(ctx context.Context, name string, args []string) error {
	cmd, ok := a.Registry.Lookup(name)
	if !ok {
		return unknownUtilityError(name)
	}

	hc := a.handlerContext()
	a.logger.Debug("running utility", "name", name, "args", args[1:], "dir", hc.Dir)

	err := cmd.Run(builtin.WithHandlerContext(ctx, hc), args)
	if err == nil {
		return nil
	}

	if id := issueFor(err); id != 0 {
		a.renderIssue(id)
	}

	var exitErr *builtin.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	fmt.Fprintln(a.stderr, err)
	return &builtin.ExitError{Code: builtin.ExitCodeOf(err), Err: err}
}

// renderIssue prints a catalog entry. It only does so at debug level.
func (a *App) renderIssue(id issue.Id) {
	if a.logger.GetLevel() > log.DebugLevel {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(a.cfg.UI.ColorScheme.GlamourStyle())
	if err != nil {
		a.logger.Debug("failed to render issue", "id", id, "err", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// issueFor picks the catalog entry that explains err, or 0.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}
	if errors.Is(err, filemode.ErrInvalidMode) {
		return issue.InvalidModeId
	}
	var de *dirtree.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case dirtree.KindNotFound:
			return issue.MissingParentId
		case dirtree.KindPermissionDenied:
			return issue.PermissionDeniedId
		case dirtree.KindNotADirectory:
			return issue.NotADirectoryId
		}
	}
	if errors.Is(err, builtin.ErrUnknownCommand) {
		return issue.UnknownUtilityId
	}
	return 0
}

func unknownUtilityError(name string) error {
	return &ExitError{
		Code: builtin.ExitCodeOf(builtin.ErrUnknownCommand),
		Err: issue.NewErrorContext().
			WithOperation("run utility").
			WithResource(name).
			WithSuggestion("Run 'coreutils list' to see the available utilities").
			WithIssue(issue.UnknownUtilityId).
			Wrap(&builtin.UnknownCommandError{Name: name}).
			BuildError(),
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their own Format; verbose adds the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
