// SPDX-License-Identifier: MPL-2.0

package dirtree

import (
	"github.com/invowk/coreutils/pkg/types"
)

type (
	// BatchOptions tunes CreateAll.
	BatchOptions struct {
		// FailFast stops at the first failed request. Remaining requests are
		// not attempted and do not appear in the Summary.
		FailFast bool
		// Report, when set, is called with each Result as soon as it is known,
		// before the next request starts.
		Report func(Result)
	}

	// Summary is the outcome of a batch.
	Summary struct {
		Results []Result
	}
)

// CreateAll processes reqs strictly in order. A failure never prevents the
// following requests from running unless FailFast is set.
func (m *Materializer) CreateAll(reqs []Request, opts BatchOptions) Summary {
	s := Summary{Results: make([]Result, 0, len(reqs))}
	for _, req := range reqs {
		res := m.Create(req)
		s.Results = append(s.Results, res)
		if opts.Report != nil {
			opts.Report(res)
		}
		if !res.OK() && opts.FailFast {
			m.logger.Debug("stopping batch after failure", "path", res.Path)
			break
		}
	}
	return s
}

// Failed returns the failed results in request order.
func (s Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// ExitCode is ExitSuccess when every request succeeded and ExitFailure
// otherwise.
func (s Summary) ExitCode() types.ExitCode {
	code := types.ExitSuccess
	for _, r := range s.Results {
		if !r.OK() {
			code = code.Or(types.ExitFailure)
		}
	}
	return code
}
