// SPDX-License-Identifier: MPL-2.0

package builtin

import "context"

type (
	// Command is a utility that can be run from the command line or from the
	// virtual shell.
	Command interface {
		// Name returns the command name (e.g., "mkdir", "chmod").
		Name() string

		// Run executes the command. args[0] is the command name as invoked,
		// args[1:] are the arguments. The context carries the HandlerContext.
		Run(ctx context.Context, args []string) error

		// SupportedFlags returns the flags this implementation understands.
		// It is used for `coreutils list` and documentation.
		SupportedFlags() []FlagInfo
	}

	// FlagInfo describes a supported flag.
	FlagInfo struct {
		// Name is the long flag name without dashes (e.g., "parents").
		Name string
		// ShortName is the single-character alias (e.g., "p").
		// Empty if no short form exists.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -m MODE).
		TakesValue bool
	}
)

// String renders f the way `coreutils list` shows it, e.g. "-m, --mode MODE".
func (f FlagInfo) String() string {
	var s string
	switch {
	case f.ShortName != "" && f.Name != "":
		s = "-" + f.ShortName + ", --" + f.Name
	case f.ShortName != "":
		s = "-" + f.ShortName
	default:
		s = "--" + f.Name
	}
	if f.TakesValue {
		s += " VALUE"
	}
	return s
}
