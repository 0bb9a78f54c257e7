// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/interp"
)

type (
	// HandlerContext provides the execution environment of a command.
	HandlerContext struct {
		// Stdin is the input stream for the command.
		Stdin io.Reader
		// Stdout is the output stream for the command.
		Stdout io.Writer
		// Stderr is the error output stream for the command.
		Stderr io.Writer
		// Dir is the current working directory.
		Dir string
		// LookupEnv retrieves environment variables.
		LookupEnv func(string) (string, bool)
		// Logger receives debug output. Nil means discard.
		Logger *log.Logger
	}

	// handlerContextKey is the context key for storing HandlerContext.
	handlerContextKey struct{}
)

// ProcessHandlerContext describes the running process: standard streams,
// working directory and environment.
func ProcessHandlerContext(logger *log.Logger) *HandlerContext {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &HandlerContext{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Dir:       dir,
		LookupEnv: os.LookupEnv,
		Logger:    logger,
	}
}

// ExtractHandlerContext builds a HandlerContext from mvdan/sh's handler
// context. logger is attached as is.
func ExtractHandlerContext(ctx context.Context, logger *log.Logger) *HandlerContext {
	hc := interp.HandlerCtx(ctx)
	return &HandlerContext{
		Stdin:  hc.Stdin,
		Stdout: hc.Stdout,
		Stderr: hc.Stderr,
		Dir:    hc.Dir,
		// expand.Variable.Set indicates if the variable was set.
		LookupEnv: func(name string) (string, bool) {
			v := hc.Env.Get(name)
			return v.Str, v.Set
		},
		Logger: logger,
	}
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext retrieves the HandlerContext from the context.
// If none was stored with WithHandlerContext, it is extracted from mvdan/sh's
// handler context, which must then be present.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	if hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext); ok {
		return hc
	}
	return ExtractHandlerContext(ctx, nil)
}

// logger returns hc.Logger, or a discarding logger when unset.
func (hc *HandlerContext) logger() *log.Logger {
	if hc.Logger != nil {
		return hc.Logger
	}
	return log.New(io.Discard)
}

// abs resolves a relative operand against hc.Dir.
func (hc *HandlerContext) abs(p string) string {
	if filepath.IsAbs(p) || hc.Dir == "" {
		return p
	}
	return filepath.Join(hc.Dir, p)
}
