package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxtable/cmd/docxtable/internal/env"
	"github.com/benjaminschreck/go-docxtable/pkg/docxtable"
)

type rootParams struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	var params rootParams

	root := &cobra.Command{
		Use:   "docxtable",
		Short: "Inspect and edit the tables of DOCX files",
		Long: `docxtable reads the tables of a DOCX document, edits rows, columns, merges,
widths, styles and layout, and writes the document back.

Every flag can also be set through the environment: DOCXTABLE_<FLAG> for the
global flags and DOCXTABLE_<COMMAND>_<FLAG> for command flags, for example
DOCXTABLE_MERGE_TABLE=1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.CheckEnvironmentVariables(cmd.Root()); err != nil {
				return err
			}
			if err := env.CheckEnvironmentVariables(cmd); err != nil {
				return err
			}
			return configure(cmd, params)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&params.configFile, "config", "", "path to a YAML, TOML or JSON config file")
	flags.StringVar(&params.logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	flags.StringVar(&params.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		newInspectCommand(),
		newCellCommand(),
		newAddRowCommand(),
		newAddColumnCommand(),
		newMergeCommand(),
		newWidthCommand(),
		newStyleCommand(),
		newAutofitCommand(),
		newExportHTMLCommand(),
		newVersionCommand(),
	)
	return root
}

// configure installs the global config: file or environment first, then
// the logging flags on top
func configure(cmd *cobra.Command, params rootParams) error {
	config := docxtable.ConfigFromEnvironment()
	if params.configFile != "" {
		loaded, err := docxtable.LoadConfigFile(params.configFile)
		if err != nil {
			return err
		}
		config = loaded
	}
	if params.logLevel != "" {
		config.LogLevel = params.logLevel
	}
	if params.logFormat != "" {
		config.LogFormat = params.logFormat
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	docxtable.SetGlobalConfig(config)
	docxtable.WithField("command", cmd.Name()).Debug("configured")
	return nil
}
