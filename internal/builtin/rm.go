// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"github.com/u-root/u-root/pkg/core"
	"github.com/u-root/u-root/pkg/core/rm"
)

func init() {
	RegisterDefault(newRmCommand())
}

func newRmCommand() *baseWrapper {
	return &baseWrapper{
		name: "rm",
		flags: []FlagInfo{
			{Name: "recursive", ShortName: "r", Description: "remove directories and their contents recursively"},
			{Name: "force", ShortName: "f", Description: "ignore nonexistent files, never prompt"},
			{Name: "verbose", ShortName: "v", Description: "explain what is being done"},
		},
		build: func() core.Command { return rm.New() },
	}
}
