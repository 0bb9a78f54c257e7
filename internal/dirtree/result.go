// SPDX-License-Identifier: MPL-2.0

package dirtree

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"github.com/invowk/coreutils/pkg/filemode"
)

const (
	// Created means the target directory was made by this request.
	Created Outcome = iota + 1
	// AlreadyExisted means the target was already a directory and the
	// request tolerates that (Parents or ExistOK).
	AlreadyExisted
	// Failed means the request did not produce a directory; see Kind.
	Failed
)

const (
	// KindNone is the Kind of a successful Result.
	KindNone Kind = iota
	// KindNotFound means a path component is missing and parents were not requested.
	KindNotFound
	// KindPermissionDenied means the OS refused the operation.
	KindPermissionDenied
	// KindAlreadyExists means the target directory exists and the request
	// does not tolerate that.
	KindAlreadyExists
	// KindNotADirectory means the target or an ancestor exists but is not a directory.
	KindNotADirectory
	// KindOSFailure is any other OS error.
	KindOSFailure
)

type (
	// Outcome is the per-request result classification.
	Outcome int

	// Kind classifies a failed request.
	Kind int

	// Request describes one directory to create.
	Request struct {
		// Path is the directory to create, as given by the user. It is used
		// verbatim in notifications and errors.
		Path string
		// Dir is the directory relative paths are resolved against.
		// Empty means the process working directory.
		Dir string
		// Mode, when set, is applied to the target exactly (umask ignored).
		// Ancestors never receive it.
		Mode *filemode.Mode
		// Parents requests creation of missing ancestors and makes an
		// existing target directory a success.
		Parents bool
		// ExistOK makes an existing target directory a success without
		// creating ancestors.
		ExistOK bool
		// Verbose requests a notification for every directory created.
		Verbose bool
	}

	// Result is what Create produced for one Request.
	Result struct {
		// Path is the path the outcome refers to: the target, or the
		// ancestor whose creation failed.
		Path string
		// Outcome is Created, AlreadyExisted or Failed.
		Outcome Outcome
		// Kind is KindNone unless Outcome is Failed.
		Kind Kind
		// Err is an *Error when Outcome is Failed.
		Err error
		// Created lists every directory this request made, outermost first.
		// A Failed result may still list its target when the directory was
		// made but its special bits could not be applied.
		Created []string
	}

	// Error is the error carried by a failed Result.
	Error struct {
		Op   string
		Path string
		Kind Kind
		Err  error
	}
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case AlreadyExisted:
		return "already existed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindAlreadyExists:
		return "already exists"
	case KindNotADirectory:
		return "not a directory"
	case KindOSFailure:
		return "os failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Outcome != Failed }

// Reason returns the coreutils-style diagnostic for a failed Result,
// e.g. "No such file or directory". It is empty for successful results.
func (r Result) Reason() string {
	if r.OK() {
		return ""
	}
	switch r.Kind {
	case KindNotFound:
		return "No such file or directory"
	case KindPermissionDenied:
		return "Permission denied"
	case KindAlreadyExists:
		return "File exists"
	case KindNotADirectory:
		// A regular file sitting where the target should be is reported
		// the way mkdir(2) saw it.
		if errors.Is(r.Err, fs.ErrExist) {
			return "File exists"
		}
		return "Not a directory"
	default:
		return osMessage(r.Err)
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *Error) Unwrap() error { return e.Err }

// failed builds a Failed Result for path.
func failed(path string, kind Kind, err error, created []string) Result {
	return Result{
		Path:    path,
		Outcome: Failed,
		Kind:    kind,
		Err:     &Error{Op: "mkdir", Path: path, Kind: kind, Err: unwrapPathError(err)},
		Created: created,
	}
}

// unwrapPathError drops the *fs.PathError layer added by the os package;
// Error already records the operation and the user-facing path.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// classify maps an error returned by mkdir(2) to a Kind. EEXIST is handled
// by the caller because it needs a follow-up stat.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotADirectory
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	default:
		return KindOSFailure
	}
}

// osMessage renders the innermost OS error with a leading capital, the way
// strerror(3) reads.
func osMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := unwrapPathError(err).Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
