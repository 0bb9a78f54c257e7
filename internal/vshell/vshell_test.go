// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/coreutils/internal/builtin"
	"github.com/invowk/coreutils/pkg/types"
)

type stubCommand struct {
	name string
	err  error
	args []string
}

func (c *stubCommand) Name() string { return c.name }
func (c *stubCommand) SupportedFlags() []builtin.FlagInfo { return nil }
func (c *stubCommand) Run(_ context.Context, args []string) error {
	c.args = args
	return c.err
}

func runScript(t *testing.T, sh *Shell, dir, script string, args ...string) (types.ExitCode, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code, err := sh.Run(t.Context(), script, Options{
		Dir:    dir,
		Env:    []string{"HOME=" + dir, "PATH=" + os.Getenv("PATH")},
		Stdout: &stdout,
		Stderr: &stderr,
		Args:   args,
	})
	if err != nil {
		t.Fatalf("Run(%q) returned error: %v", script, err)
	}
	return code, stdout.String(), stderr.String()
}

func TestShell_Run_MkdirBuiltin(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	sh := &Shell{Builtins: true, Fallback: false}

	code, _, stderr := runScript(t, sh, tmpDir, "mkdir -p x/y && test -d x/y")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %v, want 0 (stderr: %s)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "x", "y")); err != nil {
		t.Errorf("directory not created relative to Dir: %v", err)
	}
}

func TestShell_Run_BuiltinFailureStatus(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	sh := &Shell{Builtins: true, Fallback: false}

	code, stdout, stderr := runScript(t, sh, tmpDir, "mkdir d; mkdir d; echo \"status=$?\"")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %v, want 0", code)
	}
	if stdout != "status=1\n" {
		t.Errorf("stdout = %q, want status=1", stdout)
	}
	if stderr != "mkdir: cannot create directory 'd': File exists\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestShell_Run_CdThenMkdir(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	sh := &Shell{Builtins: true, Fallback: false}

	code, stdout, stderr := runScript(t, sh, tmpDir, "mkdir -v outer && cd outer && mkdir -v inner")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %v (stderr: %s)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "outer", "inner")); err != nil {
		t.Errorf("inner not created under the shell's cwd: %v", err)
	}
	want := "mkdir: created directory 'outer'\nmkdir: created directory 'inner'\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestShell_Run_PositionalArgs(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	sh := &Shell{Builtins: true, Fallback: false}

	code, _, stderr := runScript(t, sh, tmpDir, `mkdir -m "$1" -- "$2"`, "700", "-v")
	if code != types.ExitSuccess {
		t.Fatalf("exit code = %v (stderr: %s)", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "-v")); err != nil {
		t.Errorf("positional arg was not passed through verbatim: %v", err)
	}
}

func TestShell_Run_UnknownCommandWithoutFallback(t *testing.T) {
	t.Parallel()

	sh := &Shell{Builtins: true, Fallback: false}
	code, _, stderr := runScript(t, sh, t.TempDir(), "definitely-not-a-command-xyz")
	if code != types.ExitCommandNotFound {
		t.Errorf("exit code = %v, want 127", code)
	}
	if !strings.Contains(stderr, "definitely-not-a-command-xyz: command not found") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestShell_Run_BuiltinsDisabled(t *testing.T) {
	t.Parallel()

	sh := &Shell{Builtins: false, Fallback: false}
	code, _, _ := runScript(t, sh, t.TempDir(), "mkdir x")
	if code != types.ExitCommandNotFound {
		t.Errorf("exit code = %v, want 127 when built-ins and fallback are off", code)
	}
}

func TestShell_Run_CustomRegistry(t *testing.T) {
	t.Parallel()

	reg := builtin.NewRegistry()
	plain := &stubCommand{name: "plain", err: errors.New("plain: went wrong")}
	reported := &stubCommand{name: "reported", err: &builtin.ExitError{Code: 4}}
	reg.Register(plain)
	reg.Register(reported)

	sh := &Shell{Registry: reg, Builtins: true}

	code, _, stderr := runScript(t, sh, t.TempDir(), "plain a b")
	if code != types.ExitFailure {
		t.Errorf("plain: exit code = %v, want 1", code)
	}
	if stderr != "plain: went wrong\n" {
		t.Errorf("plain: stderr = %q", stderr)
	}
	if len(plain.args) != 3 || plain.args[0] != "plain" {
		t.Errorf("plain: args = %v", plain.args)
	}

	code, _, stderr = runScript(t, sh, t.TempDir(), "reported")
	if code != 4 {
		t.Errorf("reported: exit code = %v, want 4", code)
	}
	if stderr != "" {
		t.Errorf("reported: ExitError must not be printed again, got %q", stderr)
	}
}

func TestShell_Run_ExitStatus(t *testing.T) {
	t.Parallel()

	code, _, _ := runScript(t, &Shell{}, t.TempDir(), "exit 3")
	if code != 3 {
		t.Errorf("exit code = %v, want 3", code)
	}
}

func TestShell_Run_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := (&Shell{}).Run(context.Background(), "if then fi (", Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("Run should fail on a syntax error")
	}
}

func TestShell_Validate(t *testing.T) {
	t.Parallel()

	sh := New(nil)
	if err := sh.Validate("mkdir -p a && chmod 755 a"); err != nil {
		t.Errorf("Validate returned error for a valid script: %v", err)
	}
	if err := sh.Validate("echo 'unterminated"); err == nil {
		t.Error("Validate should reject an unterminated quote")
	}
}
