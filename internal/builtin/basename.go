// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"strings"
)

// basenameCommand implements the basename utility.
// It extracts the filename component from a path, optionally stripping a suffix.
type basenameCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newBasenameCommand())
}

// newBasenameCommand creates a new basename command.
func newBasenameCommand() *basenameCommand {
	return &basenameCommand{
		name: "basename",
		flags: []FlagInfo{
			{Name: "multiple", ShortName: "a", Description: "support multiple arguments and treat each as a NAME"},
			{Name: "suffix", ShortName: "s", Description: "remove a trailing SUFFIX; implies -a", TakesValue: true},
			{Name: "zero", ShortName: "z", Description: "end each output line with NUL, not newline"},
		},
	}
}

// Name returns the command name.
func (c *basenameCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *basenameCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the basename command.
// Usage: basename NAME [SUFFIX]
//
//	basename OPTION... NAME...
func (c *basenameCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	multiple := set.BoolP("multiple", "a", false, "support multiple arguments and treat each as a NAME")
	suffix := set.StringP("suffix", "s", "", "remove a trailing SUFFIX; implies -a")
	zero := set.BoolP("zero", "z", false, "end each output line with NUL, not newline")

	if done, err := parseFlags(hc, set, args, "NAME [SUFFIX]"); done {
		return err
	}

	names := set.Args()
	if len(names) == 0 {
		return usageError(hc, c.name, errMissingOperand)
	}

	strip := *suffix
	if !*multiple && !set.Changed("suffix") {
		switch len(names) {
		case 1:
		case 2:
			strip = names[1]
			names = names[:1]
		default:
			return usageError(hc, c.name, fmt.Errorf("extra operand '%s'", names[2]))
		}
	}

	eol := "\n"
	if *zero {
		eol = "\x00"
	}
	for _, name := range names {
		fmt.Fprintf(hc.Stdout, "%s%s", baseName(name, strip), eol)
	}
	return nil
}

// baseName returns the last element of p, keeping "/" for the root and
// stripping suffix unless that would leave nothing.
func baseName(p, suffix string) string {
	if p == "" {
		return ""
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	if suffix != "" && p != suffix && strings.HasSuffix(p, suffix) {
		p = p[:len(p)-len(suffix)]
	}
	return p
}
