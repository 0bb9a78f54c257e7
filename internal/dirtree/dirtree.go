// SPDX-License-Identifier: MPL-2.0

package dirtree

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/coreutils/pkg/filemode"
)

// defaultPerm is what mkdir(2) is asked for when no explicit mode is given;
// the process umask trims it.
const defaultPerm = 0o777

type (
	// Notifier receives one call per directory a request creates, in creation
	// order. path is the user-facing spelling of the directory.
	Notifier interface {
		DirectoryCreated(path string)
	}

	// NotifierFunc adapts a function to the Notifier interface.
	NotifierFunc func(path string)

	// Option configures a Materializer.
	Option func(*Materializer)

	// Materializer creates directories on the local filesystem.
	// It is safe for concurrent use; the umask window is serialized internally.
	Materializer struct {
		logger   *log.Logger
		notifier Notifier

		mkdir func(name string, perm os.FileMode) error
		stat  func(name string) (fs.FileInfo, error)
		chmod func(name string, mode os.FileMode) error
	}
)

// DirectoryCreated calls f(path).
func (f NotifierFunc) DirectoryCreated(path string) { f(path) }

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Materializer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNotifier sets the receiver of verbose creation notices.
func WithNotifier(n Notifier) Option {
	return func(m *Materializer) {
		m.notifier = n
	}
}

// New returns a Materializer operating on the real filesystem.
func New(opts ...Option) *Materializer {
	m := &Materializer{
		logger: log.New(io.Discard),
		mkdir:  os.Mkdir,
		stat:   os.Stat,
		chmod:  os.Chmod,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create materializes a single request.
//
// With Parents set, every missing ancestor is created outermost first using
// the default permissions; a failing ancestor fails the whole request and is
// reported as the Result path. The target is then created with req.Mode
// applied exactly, or with the default permissions when Mode is nil.
func (m *Materializer) Create(req Request) Result {
	if req.Path == "" {
		return failed(req.Path, KindNotFound, fs.ErrNotExist, nil)
	}

	var created []string

	if req.Parents {
		for _, dir := range m.missingAncestors(req) {
			ok, res := m.makeAncestor(req, dir)
			if res != nil {
				res.Created = created
				return *res
			}
			if ok {
				created = append(created, dir)
				m.notify(req, dir)
			}
		}
	}

	made, err := m.makeTarget(req)
	if made {
		created = append(created, req.Path)
		m.notify(req, req.Path)
	}
	if err == nil {
		m.logger.Debug("created directory", "path", req.Path, "mode", modeAttr(req.Mode))
		return Result{Path: req.Path, Outcome: Created, Created: created}
	}
	if made {
		// The directory exists but its special bits could not be applied.
		kind := classify(err)
		m.logger.Debug("chmod after mkdir failed", "path", req.Path, "kind", kind, "err", err)
		return failed(req.Path, kind, err, created)
	}

	if errors.Is(err, fs.ErrExist) {
		return m.resolveExisting(req, err, created)
	}

	kind := classify(err)
	m.logger.Debug("mkdir failed", "path", req.Path, "kind", kind, "err", err)
	return failed(req.Path, kind, err, created)
}

// makeTarget issues the single mkdir for the target of req. made reports
// whether the directory was created, which stays true when applying special
// bits afterwards fails.
func (m *Materializer) makeTarget(req Request) (made bool, err error) {
	name := m.resolve(req, req.Path)
	if req.Mode == nil {
		err = withProcessUmask(func() error {
			return m.mkdir(name, defaultPerm)
		})
		return err == nil, err
	}

	mode := *req.Mode
	err = withUmask(0, func() error {
		if err := m.mkdir(name, os.FileMode(mode.Perm())); err != nil {
			return err
		}
		made = true
		// mkdir(2) does not reliably honour setuid, setgid or sticky.
		if mode.Special() != 0 {
			return m.chmod(name, mode.FileMode())
		}
		return nil
	})
	return made, err
}

// makeAncestor creates one missing ancestor. It reports whether this call
// created it; a non-nil Result means the request has failed at dir.
func (m *Materializer) makeAncestor(req Request, dir string) (bool, *Result) {
	name := m.resolve(req, dir)
	err := withProcessUmask(func() error {
		return m.mkdir(name, defaultPerm)
	})
	if err == nil {
		m.logger.Debug("created parent directory", "path", dir)
		return true, nil
	}

	if errors.Is(err, fs.ErrExist) {
		// Someone else created it between our stat and mkdir.
		if info, serr := m.stat(name); serr == nil && info.IsDir() {
			return false, nil
		}
		res := failed(dir, KindNotADirectory, err, nil)
		return false, &res
	}

	kind := classify(err)
	m.logger.Debug("parent mkdir failed", "path", dir, "kind", kind, "err", err)
	res := failed(dir, kind, err, nil)
	return false, &res
}

// resolveExisting turns an EEXIST from the target mkdir into a Result.
func (m *Materializer) resolveExisting(req Request, mkErr error, created []string) Result {
	info, err := m.stat(m.resolve(req, req.Path))
	switch {
	case err != nil:
		// It vanished again; report what mkdir saw.
		return failed(req.Path, KindAlreadyExists, mkErr, created)
	case !info.IsDir():
		return failed(req.Path, KindNotADirectory, mkErr, created)
	case req.Parents || req.ExistOK:
		m.logger.Debug("directory already exists", "path", req.Path)
		return Result{Path: req.Path, Outcome: AlreadyExisted, Created: created}
	default:
		return failed(req.Path, KindAlreadyExists, mkErr, created)
	}
}

// missingAncestors returns the ancestors of req.Path that do not exist yet,
// outermost first, spelled the way the user spelled req.Path.
func (m *Materializer) missingAncestors(req Request) []string {
	var missing []string
	dir := parentOf(trimTrailingSeparators(req.Path))
	for dir != "" {
		if _, err := m.stat(m.resolve(req, dir)); err == nil {
			break
		}
		missing = append(missing, dir)
		dir = parentOf(dir)
	}
	slices.Reverse(missing)
	return missing
}

// resolve anchors a relative user path at req.Dir.
func (m *Materializer) resolve(req Request, p string) string {
	if req.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(req.Dir, p)
}

func (m *Materializer) notify(req Request, path string) {
	if req.Verbose && m.notifier != nil {
		m.notifier.DirectoryCreated(path)
	}
}

// parentOf returns the parent of p without cleaning it, or "" when p has no
// parent worth creating (a single component or the filesystem root).
func parentOf(p string) string {
	i := strings.LastIndexFunc(p, isSeparator)
	if i < 0 {
		return ""
	}
	parent := trimTrailingSeparators(p[:i])
	rest := strings.TrimLeftFunc(strings.TrimPrefix(parent, filepath.VolumeName(parent)), isSeparator)
	if rest == "" || parent == "." || parent == ".." {
		return ""
	}
	return parent
}

// trimTrailingSeparators strips trailing separators, keeping a lone root.
func trimTrailingSeparators(p string) string {
	for len(p) > 1 && os.IsPathSeparator(p[len(p)-1]) {
		p = p[:len(p)-1]
	}
	return p
}

func isSeparator(r rune) bool { return r < 0x80 && os.IsPathSeparator(uint8(r)) }

func modeAttr(mode *filemode.Mode) string {
	if mode == nil {
		return "default"
	}
	return mode.String()
}
