// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// nprocCommand prints the number of processing units available.
type nprocCommand struct {
	name      string
	flags     []FlagInfo
	available func() int
	installed func() int
}

func init() {
	RegisterDefault(newNprocCommand())
}

func newNprocCommand() *nprocCommand {
	return &nprocCommand{
		name: "nproc",
		flags: []FlagInfo{
			{Name: "all", Description: "print the number of installed processors"},
			{Name: "ignore", Description: "if possible, exclude N processing units", TakesValue: true},
		},
		available: runtime.NumCPU,
		installed: installedCPUs,
	}
}

// Name returns the command name.
func (c *nprocCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *nprocCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the nproc command.
// Usage: nproc [--all] [--ignore=N]
func (c *nprocCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	set := newFlagSet(c.name)
	all := set.Bool("all", false, "print the number of installed processors")
	ignore := set.Uint("ignore", 0, "if possible, exclude N processing units")
	if done, err := parseFlags(hc, set, args, "[OPTION]..."); done {
		return err
	}
	if set.NArg() > 0 {
		return usageError(hc, c.name, fmt.Errorf("extra operand '%s'", set.Arg(0)))
	}

	n := c.available()
	if *all {
		n = c.installed()
	} else if limit, ok := ompLimit(hc); ok {
		n = limit
	}

	if uint(n) > *ignore {
		n -= int(*ignore)
	} else {
		n = 1
	}
	fmt.Fprintln(hc.Stdout, n)
	return nil
}

// ompLimit honours OMP_NUM_THREADS (first list element) capped by
// OMP_THREAD_LIMIT.
func ompLimit(hc *HandlerContext) (int, bool) {
	if hc.LookupEnv == nil {
		return 0, false
	}
	n := 0
	if v, ok := hc.LookupEnv("OMP_NUM_THREADS"); ok {
		first, _, _ := strings.Cut(v, ",")
		if parsed, err := strconv.Atoi(strings.TrimSpace(first)); err == nil && parsed > 0 {
			n = parsed
		}
	}
	if v, ok := hc.LookupEnv("OMP_THREAD_LIMIT"); ok {
		if limit, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && limit > 0 {
			if n == 0 || n > limit {
				n = limit
			}
		}
	}
	return n, n > 0
}

// installedCPUs counts the CPUs the kernel knows about, falling back to the
// number usable by this process.
func installedCPUs() int {
	matches, err := filepath.Glob("/sys/devices/system/cpu/cpu[0-9]*")
	if err != nil || len(matches) == 0 {
		return runtime.NumCPU()
	}
	return len(matches)
}
