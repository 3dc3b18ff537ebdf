package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ballerina-platform/ballerinalsw/internal/logging"
	"github.com/ballerina-platform/ballerinalsw/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Language Server Protocol over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			s := server.New(engine,
				server.WithLogger(logging.Named("server")),
				server.WithLanguage(a.cfg.Language()),
				server.WithVersion(Version),
			)
			if err := s.RunStdio(); err != nil {
				return errors.Wrap(err, "language server stopped")
			}
			return nil
		},
	}
}
