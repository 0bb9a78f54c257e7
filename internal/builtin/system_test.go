// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/invowk/coreutils/pkg/types"
)

func TestPwdCommand_Run(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, stdout, _ := testContext(t, tmpDir)
	if err := newPwdCommand().Run(ctx, []string{"pwd"}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := stdout.String(); got != resolved+"\n" {
		t.Errorf("stdout = %q, want %q", got, resolved+"\n")
	}
}

func TestPwdCommand_Run_Logical(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatal(err)
	}

	ctx, stdout, _ := envContext(t, link, map[string]string{"PWD": link})
	if err := newPwdCommand().Run(ctx, []string{"pwd", "-L"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != link+"\n" {
		t.Errorf("pwd -L = %q, want %q", got, link+"\n")
	}

	ctx, stdout, _ = envContext(t, link, map[string]string{"PWD": link})
	if err := newPwdCommand().Run(ctx, []string{"pwd", "-P"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != realTarget+"\n" {
		t.Errorf("pwd -P = %q, want %q", got, realTarget+"\n")
	}

	// A stale PWD is ignored.
	ctx, stdout, _ = envContext(t, link, map[string]string{"PWD": tmpDir})
	if err := newPwdCommand().Run(ctx, []string{"pwd", "-L"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != realTarget+"\n" {
		t.Errorf("pwd -L with stale PWD = %q, want %q", got, realTarget+"\n")
	}
}

func TestHostnameCommand_Run(t *testing.T) {
	t.Parallel()

	cmd := newHostnameCommand()
	cmd.hostname = func() (string, error) { return "build01.example.com", nil }

	ctx, stdout, _ := testContext(t, t.TempDir())
	if err := cmd.Run(ctx, []string{"hostname"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "build01.example.com\n" {
		t.Errorf("stdout = %q", got)
	}

	ctx, stdout, _ = testContext(t, t.TempDir())
	if err := cmd.Run(ctx, []string{"hostname", "-s"}); err != nil {
		t.Fatal(err)
	}
	if got := stdout.String(); got != "build01\n" {
		t.Errorf("hostname -s = %q", got)
	}

	cmd.hostname = func() (string, error) { return "", errors.New("uname failed") }
	ctx, _, stderr := testContext(t, t.TempDir())
	if got := ExitCodeOf(cmd.Run(ctx, []string{"hostname"})); got != types.ExitFailure {
		t.Errorf("exit code = %v, want 1", got)
	}
	if !strings.Contains(stderr.String(), "Uname failed") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestWhoamiCommand_Run(t *testing.T) {
	t.Parallel()

	cmd := newWhoamiCommand()
	var gotUID string
	cmd.lookup = func(uid string) (*user.User, error) {
		gotUID = uid
		return &user.User{Uid: uid, Username: "builder"}, nil
	}

	ctx, stdout, _ := testContext(t, t.TempDir())
	if err := cmd.Run(ctx, []string{"whoami"}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "builder\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if gotUID != strconv.Itoa(os.Geteuid()) {
		t.Errorf("looked up uid %q, want the effective uid", gotUID)
	}

	cmd.lookup = func(uid string) (*user.User, error) { return nil, user.UnknownUserIdError(42) }
	ctx, _, stderr := testContext(t, t.TempDir())
	if got := ExitCodeOf(cmd.Run(ctx, []string{"whoami"})); got != types.ExitFailure {
		t.Errorf("exit code = %v, want 1", got)
	}
	if !strings.HasPrefix(stderr.String(), "whoami: cannot find name for user ID") {
		t.Errorf("stderr = %q", stderr)
	}

	ctx, _, _ = testContext(t, t.TempDir())
	if got := ExitCodeOf(cmd.Run(ctx, []string{"whoami", "extra"})); got != types.ExitFailure {
		t.Errorf("extra operand exit code = %v, want 1", got)
	}
}

func TestNprocCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{"available", nil, nil, "4\n"},
		{"all", []string{"--all"}, nil, "8\n"},
		{"ignore", []string{"--ignore=1"}, nil, "3\n"},
		{"ignore everything", []string{"--ignore", "10"}, nil, "1\n"},
		{"omp threads", nil, map[string]string{"OMP_NUM_THREADS": "2,1"}, "2\n"},
		{"omp limit", nil, map[string]string{"OMP_NUM_THREADS": "6", "OMP_THREAD_LIMIT": "3"}, "3\n"},
		{"omp ignored for all", []string{"--all"}, map[string]string{"OMP_NUM_THREADS": "2"}, "8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := newNprocCommand()
			cmd.available = func() int { return 4 }
			cmd.installed = func() int { return 8 }

			ctx, stdout, stderr := envContext(t, t.TempDir(), tt.env)
			if err := cmd.Run(ctx, append([]string{"nproc"}, tt.args...)); err != nil {
				t.Fatalf("Run() returned error: %v (stderr: %s)", err, stderr)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

// failingWriter accepts limit bytes and then fails.
type failingWriter struct {
	limit int
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, io.ErrClosedPipe
	}
	w.n += len(p)
	return len(p), nil
}

func TestYesCommand_Run_StopsOnWriteError(t *testing.T) {
	t.Parallel()

	ctx, _, _ := testContext(t, t.TempDir())
	w := &failingWriter{limit: 1 << 16}
	GetHandlerContext(ctx).Stdout = w

	err := newYesCommand().Run(ctx, []string{"yes", "hello", "world"})
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("Run() = %v, want io.ErrClosedPipe", err)
	}
	if w.n == 0 {
		t.Error("nothing was written before the failure")
	}
}

func TestYesCommand_Run_Cancellation(t *testing.T) {
	t.Parallel()

	base, _, _ := testContext(t, t.TempDir())
	GetHandlerContext(base).Stdout = io.Discard
	ctx, cancel := context.WithTimeout(base, 20*time.Millisecond)
	defer cancel()

	err := newYesCommand().Run(ctx, []string{"yes"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, want deadline exceeded", err)
	}
}
