package commands

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ballerina-platform/ballerinalsw/internal/pkgdata"
)

func (a *app) pkgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pkgs [PATH...]",
		Short: "List the packages known to completion",
		Long: `List the packages known to completion, embedded and custom ones.

With arguments, only the given package paths are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				var err error
				if paths, err = pkgdata.ListPkgs(); err != nil {
					return errors.Wrap(err, "failed to list packages")
				}
			}

			data := pterm.TableData{{"Path", "Types", "Functions", "Constants", "Annotations"}}
			for _, path := range paths {
				pkgDoc, err := pkgdata.GetPkgDoc(path)
				if err != nil {
					return err
				}
				data = append(data, []string{
					pkgDoc.Path,
					strconv.Itoa(len(pkgDoc.Types)),
					strconv.Itoa(len(pkgDoc.Funcs)),
					strconv.Itoa(len(pkgDoc.Consts)),
					strconv.Itoa(len(pkgDoc.Annotations)),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}
}
