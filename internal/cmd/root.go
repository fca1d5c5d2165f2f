package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stateful/buatdocx/internal/log"
)

var (
	fConfig  string
	fVerbose bool
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "buatdocx",
		Short:         "Compose documents as blocks and export them to .docx",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fConfig, "config", "", "Path to a configuration file. Defaults to buatdocx.yaml files found from the current directory to the source.")
	pflags.BoolVar(&fVerbose, "verbose", false, "Enable debug logging to stderr or the configured log path.")

	cmd.AddCommand(editCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(inspectCmd())

	return &cmd
}
