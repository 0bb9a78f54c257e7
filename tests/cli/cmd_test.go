// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// These tests build the coreutils binary once and drive it through
// txtar scripts in testdata/.
package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	// binaryPath is the path to the built coreutils binary.
	binaryPath string
	// projectRoot is the path to the module root.
	projectRoot string
)

func TestMain(m *testing.M) {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	// Walk up to find go.mod
	projectRoot = wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binDir := filepath.Join(projectRoot, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		panic("failed to create bin directory: " + err.Error())
	}

	binaryName := "coreutils"
	if runtime.GOOS == "windows" {
		binaryName = "coreutils.exe"
	}
	binaryPath = filepath.Join(binDir, binaryName)

	cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build coreutils: " + err.Error())
	}

	os.Exit(m.Run())
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			binDir := filepath.Dir(binaryPath)
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
			env.Setenv("COREUTILS_BIN", binaryPath)

			// Keep the user's real configuration out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("APPDATA", filepath.Join(env.WorkDir, ".config"))
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"checkmode": cmdCheckMode,
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}

// cmdCheckMode asserts the permission and special bits of a path.
//
//	checkmode PATH OCTAL
func cmdCheckMode(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: checkmode PATH OCTAL")
	}
	want, err := strconv.ParseUint(args[1], 8, 32)
	if err != nil {
		ts.Fatalf("invalid octal mode %q: %v", args[1], err)
	}

	info, err := os.Stat(ts.MkAbs(args[0]))
	ts.Check(err)

	got := uint64(info.Mode().Perm())
	if info.Mode()&os.ModeSetuid != 0 {
		got |= 0o4000
	}
	if info.Mode()&os.ModeSetgid != 0 {
		got |= 0o2000
	}
	if info.Mode()&os.ModeSticky != 0 {
		got |= 0o1000
	}

	match := got == want
	switch {
	case match && neg:
		ts.Fatalf("%s has mode %04o, want anything else", args[0], got)
	case !match && !neg:
		ts.Fatalf("%s has mode %04o, want %04o", args[0], got, want)
	}
}
