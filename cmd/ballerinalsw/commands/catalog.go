package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func (a *app) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the keyword and snippet catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			data := pterm.TableData{{"Name", "Group", "Label", "Kind", "Insert"}}
			for _, e := range engine.Catalog().Entries() {
				data = append(data, []string{e.Name, string(e.Group), e.Label, e.Kind.String(), fmt.Sprintf("%q", e.Insert)})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}
}
