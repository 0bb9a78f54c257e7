// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	utilityGroup = "utilities"
	toolGroup    = "tools"
)

// utilityDescriptions are the one-line summaries shown in help and list.
var utilityDescriptions = map[string]string{
	"basename": "strip directory and suffix from file names",
	"chmod":    "change file mode bits",
	"hostname": "show the system's host name",
	"mkdir":    "make directories",
	"nproc":    "print the number of processing units available",
	"pwd":      "print name of current/working directory",
	"rm":       "remove files or directories",
	"sleep":    "delay for a specified amount of time",
	"touch":    "change file timestamps",
	"whoami":   "print effective user name",
	"yes":      "output a string repeatedly until killed",
}

func describeUtility(name string) string {
	if d, ok := utilityDescriptions[name]; ok {
		return d
	}
	return "built-in utility"
}

// newUtilityCommand exposes a registered utility as `coreutils <name>`.
// Cobra does not parse its flags; the utility receives them verbatim.
func newUtilityCommand(app *App, name string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [ARG]...",
		Short:              describeUtility(name),
		GroupID:            utilityGroup,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUtilityCommand(cmd, app, name, args)
		},
	}
}

// runUtilityCommand applies global flags that preceded the utility name,
// which cobra leaves in args when flag parsing is disabled, then runs the
// utility.
func runUtilityCommand(cmd *cobra.Command, app *App, name string, args []string) error {
	globals, rest := splitGlobalFlags(args)
	if len(globals) > 0 {
		if err := cmd.Root().PersistentFlags().Parse(globals); err != nil {
			return err
		}
	}
	if err := app.setup(cmd.Context()); err != nil {
		return err
	}
	return app.runUtility(cmd.Context(), name, append([]string{name}, rest...))
}

// splitGlobalFlags separates the leading --config and --log-level flags
// from the utility's own arguments.
func splitGlobalFlags(args []string) (globals, rest []string) {
	i := 0
	for i < len(args) {
		arg := args[i]
		flag, _, hasValue := strings.Cut(arg, "=")
		if flag != "--config" && flag != "--log-level" {
			break
		}
		if hasValue || i+1 >= len(args) {
			i++
			continue
		}
		i += 2
	}
	return args[:i], args[i:]
}
