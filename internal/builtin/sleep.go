// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// sleepCommand implements the sleep utility.
// It pauses execution for the sum of its operands and honours cancellation.
type sleepCommand struct {
	name  string
	flags []FlagInfo
}

func init() {
	RegisterDefault(newSleepCommand())
}

// newSleepCommand creates a new sleep command.
func newSleepCommand() *sleepCommand {
	return &sleepCommand{
		name:  "sleep",
		flags: nil, // No flags, only positional args
	}
}

// Name returns the command name.
func (c *sleepCommand) Name() string { return c.name }

// SupportedFlags returns the flags supported by this command.
func (c *sleepCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run executes the sleep command.
// Usage: sleep NUMBER[SUFFIX]...
// SUFFIX is s (seconds, the default), m (minutes), h (hours) or d (days).
func (c *sleepCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	posArgs := args[1:]
	if len(posArgs) > 0 && posArgs[0] == "--" {
		posArgs = posArgs[1:]
	}
	if len(posArgs) == 0 {
		return usageError(hc, c.name, errMissingOperand)
	}

	var total time.Duration
	for _, arg := range posArgs {
		d, err := parseSleepDuration(arg)
		if err != nil {
			return usageError(hc, c.name, err)
		}
		total += d
	}

	timer := time.NewTimer(total)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return wrapError(c.name, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// parseSleepDuration parses one sleep operand.
// Formats: "5" or "5s" (seconds), "5m" (minutes), "5h" (hours), "5d" (days).
func parseSleepDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid time interval %q", s)
	}

	unit := time.Second
	num := s
	switch strings.ToLower(s[len(s)-1:]) {
	case "s":
		num = s[:len(s)-1]
	case "m":
		unit, num = time.Minute, s[:len(s)-1]
	case "h":
		unit, num = time.Hour, s[:len(s)-1]
	case "d":
		unit, num = 24*time.Hour, s[:len(s)-1]
	}

	val, err := strconv.ParseFloat(num, 64)
	if err != nil || val < 0 || math.IsNaN(val) {
		return 0, fmt.Errorf("invalid time interval %q", s)
	}
	d := val * float64(unit)
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(d), nil
}
