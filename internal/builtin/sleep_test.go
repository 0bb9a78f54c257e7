// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/invowk/coreutils/pkg/types"
)

func TestSleepCommand_Run_ShortDuration(t *testing.T) {
	t.Parallel()

	ctx, _, _ := testContext(t, t.TempDir())

	start := time.Now()
	if err := newSleepCommand().Run(ctx, []string{"sleep", "0.001", "0.001s"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("sleep 0.002 took %v, expected much less", elapsed)
	}
}

func TestSleepCommand_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	base, _, _ := testContext(t, t.TempDir())
	ctx, cancel := context.WithCancel(base)
	// Cancel immediately to ensure sleep returns promptly
	cancel()

	start := time.Now()
	err := newSleepCommand().Run(ctx, []string{"sleep", "3600"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() should return context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancelled sleep took %v, expected much less", elapsed)
	}
}

func TestSleepCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", []string{"sleep"}, "sleep: missing operand"},
		{"invalid", []string{"sleep", "notanumber"}, "sleep: invalid time interval"},
		{"negative", []string{"sleep", "-1"}, "sleep: invalid time interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _, stderr := testContext(t, t.TempDir())
			err := newSleepCommand().Run(ctx, tt.args)
			if got := ExitCodeOf(err); got != types.ExitFailure {
				t.Errorf("exit code = %v, want 1", got)
			}
			if !strings.HasPrefix(stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want prefix %q", stderr, tt.want)
			}
		})
	}
}

func TestParseSleepDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "plain seconds", input: "5", want: 5 * time.Second},
		{name: "seconds suffix", input: "2s", want: 2 * time.Second},
		{name: "minutes suffix", input: "1m", want: 1 * time.Minute},
		{name: "hours suffix", input: "1h", want: 1 * time.Hour},
		{name: "days suffix", input: "1d", want: 24 * time.Hour},
		{name: "fractional seconds", input: "0.5", want: 500 * time.Millisecond},
		{name: "fractional with suffix", input: "0.5s", want: 500 * time.Millisecond},
		{name: "empty string", input: "", wantErr: true},
		{name: "invalid", input: "abc", wantErr: true},
		{name: "bare suffix", input: "s", wantErr: true},
		{name: "negative", input: "-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSleepDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseSleepDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
