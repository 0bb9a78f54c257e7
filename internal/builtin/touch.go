// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"github.com/u-root/u-root/pkg/core"
	"github.com/u-root/u-root/pkg/core/touch"
)

func init() {
	RegisterDefault(newTouchCommand())
}

func newTouchCommand() *baseWrapper {
	return &baseWrapper{
		name: "touch",
		flags: []FlagInfo{
			{ShortName: "c", Description: "do not create any files"},
			{ShortName: "a", Description: "change only the access time"},
			{ShortName: "m", Description: "change only the modification time"},
			{ShortName: "d", Description: "parse the argument and use it instead of current time", TakesValue: true},
		},
		build: func() core.Command { return touch.New() },
	}
}
