// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"testing"

	"github.com/invowk/coreutils/pkg/types"
)

func TestBasenameCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"simple", []string{"/usr/bin/sort"}, "sort\n"},
		{"suffix operand", []string{"include/stdio.h", ".h"}, "stdio\n"},
		{"suffix equals name", []string{".h", ".h"}, ".h\n"},
		{"trailing slash", []string{"/usr/lib/"}, "lib\n"},
		{"root", []string{"/"}, "/\n"},
		{"only slashes", []string{"///"}, "/\n"},
		{"empty", []string{""}, "\n"},
		{"multiple", []string{"-a", "any/str1", "any/str2"}, "str1\nstr2\n"},
		{"suffix flag", []string{"-s", ".h", "a/b.h", "c.h"}, "b\nc\n"},
		{"zero", []string{"-z", "a/b"}, "b\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, stdout, stderr := testContext(t, t.TempDir())
			if err := newBasenameCommand().Run(ctx, append([]string{"basename"}, tt.args...)); err != nil {
				t.Fatalf("Run() returned error: %v (stderr: %s)", err, stderr)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasenameCommand_Run_Errors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"basename"}, {"basename", "a", "b", "c"}} {
		ctx, _, _ := testContext(t, t.TempDir())
		if got := ExitCodeOf(newBasenameCommand().Run(ctx, args)); got != types.ExitFailure {
			t.Errorf("Run(%v) exit code = %v, want 1", args, got)
		}
	}
}
