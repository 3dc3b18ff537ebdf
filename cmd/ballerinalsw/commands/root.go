// Package commands implements the ballerinalsw command line.
package commands

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ballerina-platform/ballerinalsw/internal/completion"
	"github.com/ballerina-platform/ballerinalsw/internal/config"
	"github.com/ballerina-platform/ballerinalsw/internal/logging"
	"github.com/ballerina-platform/ballerinalsw/internal/pkgdata"
)

// app holds the state shared by the sub-commands once the root command has
// loaded the configuration.
type app struct {
	configPath string
	cfg        *config.Config
}

// NewRootCmd returns the ballerinalsw root command.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ballerinalsw",
		Short: "Ballerina language server with context-aware completion",
		Long: `ballerinalsw is a language server for Ballerina source files.

It speaks the Language Server Protocol over stdio and offers completion
candidates chosen by the syntactic context of the cursor.

Configuration is read from the file given with --config and from
environment variables prefixed with BALLSW_, e.g. BALLSW_LOG_LEVEL=debug.

Examples:
  ballerinalsw serve                          # Serve LSP over stdio
  ballerinalsw complete main.bal --line 3 --col 5
  ballerinalsw catalog                        # List keywords and snippets`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Cleanup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.completeCmd())
	root.AddCommand(a.catalogCmd())
	root.AddCommand(a.pkgsCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup loads the configuration, initializes the logger and installs the
// custom package data.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return errors.WithHint(err, "check the path given with --config")
	}
	if err := v.BindPFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return errors.Wrap(err, "failed to bind log-level flag")
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Log.Level, cfg.Log.JSON); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	if cfg.Pkgdata.Path != "" {
		data, err := os.ReadFile(cfg.Pkgdata.Path)
		if err != nil {
			return errors.Wrapf(err, "failed to read package data %s", cfg.Pkgdata.Path)
		}
		if err := pkgdata.SetCustomPkgdata(data); err != nil {
			return errors.WithHint(err, "package data must be a YAML list of packages with a path")
		}
		logging.Logger.Debugw("Custom package data loaded", "path", cfg.Pkgdata.Path)
	}

	a.cfg = cfg
	return nil
}

// newEngine builds a completion engine from the loaded configuration.
func (a *app) newEngine() (*completion.Engine, error) {
	cfg := a.cfg
	opts := []completion.Option{
		completion.WithLogger(logging.Named("completion")),
		completion.WithMaxDepth(cfg.Completion.MaxDelegationDepth),
		completion.WithStrictInvariants(cfg.Completion.StrictInvariants),
		completion.WithLanguage(cfg.Language()),
	}
	if path := cfg.Completion.CatalogPath; path != "" {
		catalog, err := completion.LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, completion.WithCatalog(catalog))
	}
	paths, err := pkgdata.ListPkgs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list packages")
	}
	opts = append(opts, completion.WithPackages(paths))
	return completion.New(opts...), nil
}
