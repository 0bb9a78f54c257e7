// SPDX-License-Identifier: MPL-2.0

package dirtree

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
	"testing"
)

func TestResult_Reason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"created", Result{Outcome: Created}, ""},
		{"already existed", Result{Outcome: AlreadyExisted}, ""},
		{"not found", failed("x", KindNotFound, syscall.ENOENT, nil), "No such file or directory"},
		{"denied", failed("x", KindPermissionDenied, syscall.EACCES, nil), "Permission denied"},
		{"exists", failed("x", KindAlreadyExists, syscall.EEXIST, nil), "File exists"},
		{"file in the way", failed("x", KindNotADirectory, syscall.EEXIST, nil), "File exists"},
		{"enotdir", failed("x", KindNotADirectory, syscall.ENOTDIR, nil), "Not a directory"},
		{"read-only", failed("x", KindOSFailure, &fs.PathError{Op: "mkdir", Path: "x", Err: syscall.EROFS}, nil), "Read-only file system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.res.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	res := failed("a/b", KindNotFound, &fs.PathError{Op: "mkdir", Path: "/abs/a/b", Err: syscall.ENOENT}, nil)
	if !errors.Is(res.Err, fs.ErrNotExist) {
		t.Error("Err should match fs.ErrNotExist")
	}
	msg := res.Err.Error()
	if !strings.Contains(msg, "a/b") {
		t.Errorf("Error() = %q, should name the user path", msg)
	}
	if strings.Contains(msg, "/abs") {
		t.Errorf("Error() = %q, should not leak the resolved path", msg)
	}
}

func TestOutcomeAndKindString(t *testing.T) {
	t.Parallel()

	if Created.String() != "created" || Failed.String() != "failed" {
		t.Error("unexpected Outcome names")
	}
	if KindNotADirectory.String() != "not a directory" {
		t.Errorf("KindNotADirectory.String() = %q", KindNotADirectory.String())
	}
	if got := Outcome(42).String(); got != "Outcome(42)" {
		t.Errorf("unknown Outcome = %q", got)
	}
}
