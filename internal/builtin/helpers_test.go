// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

// testContext returns a context carrying a HandlerContext rooted at dir and
// the buffers capturing its output.
func testContext(t *testing.T, dir string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	ctx := WithHandlerContext(t.Context(), &HandlerContext{
		Stdin:     strings.NewReader(""),
		Stdout:    &stdout,
		Stderr:    &stderr,
		Dir:       dir,
		LookupEnv: os.LookupEnv,
	})
	return ctx, &stdout, &stderr
}

// envContext is testContext with a fixed environment.
func envContext(t *testing.T, dir string, env map[string]string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	ctx, stdout, stderr := testContext(t, dir)
	hc := GetHandlerContext(ctx)
	hc.LookupEnv = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return ctx, stdout, stderr
}
