// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/invowk/coreutils/internal/builtin"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List the built-in utilities and their flags",
		GroupID: toolGroup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listUtilities(app.stdout, app.Registry)
			return nil
		},
	}
}

func listUtilities(w io.Writer, registry *builtin.Registry) {
	cmds := registry.Commands()
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("Available utilities"), SubtitleStyle.Render(fmt.Sprintf("(%d)", len(cmds))))

	for _, cmd := range cmds {
		fmt.Fprintf(w, "\n%s  %s\n", CmdStyle.Render(cmd.Name()), SubtitleStyle.Render(describeUtility(cmd.Name())))
		for _, f := range cmd.SupportedFlags() {
			fmt.Fprintf(w, "  %-26s %s\n", f.String(), f.Description)
		}
	}
}
