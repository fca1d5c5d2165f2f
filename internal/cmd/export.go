package cmd

import (
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/save"
	"github.com/stateful/buatdocx/pkg/document/docx"
	"github.com/stateful/buatdocx/pkg/document/editor"
)

// openFile opens a saved document with the default application.
var openFile = browser.OpenFile

func exportCmd() *cobra.Command {
	var (
		output string
		format string
		open   bool
	)

	cmd := cobra.Command{
		Use:   "export <file|->",
		Short: "Export a markdown or JSON document to .docx",
		Long: `Export converts every block of the source into one paragraph of a .docx document.

Without --output the document is saved as "document <unix ms>.docx"
in the configured output directory. Use "-o -" to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBuilder(args[0])
			if err != nil {
				return err
			}

			return b.Invoke(func(
				exporter *docx.Exporter,
				saver *save.Saver,
				logger *zap.Logger,
			) error {
				src, err := readSource(cmd, args[0], format)
				if err != nil {
					return err
				}

				// The editor guarantees at least one block.
				blocks := editor.NewWithBlocks(src.Blocks, editor.WithLogger(logger)).Blocks()

				data, err := exporter.
					With(docx.WithProperties(src.Properties.Merge(exporter.Properties()))).
					Export(blocks)
				if err != nil {
					return errors.WithMessage(err, "failed to export")
				}

				if output == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return errors.Wrap(err, "failed to write result")
				}

				var path string
				if output != "" {
					path, err = saver.SaveAs(output, data)
				} else {
					path, err = saver.Save(data)
				}
				if err != nil {
					return err
				}

				_, _ = successColor.Fprintf(cmd.OutOrStdout(), "Exported %d blocks to %s\n", len(blocks), path)

				if open {
					return errors.Wrapf(openFile(path), "failed to open %s", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file name. Use \"-\" for stdout.")
	cmd.Flags().StringVar(&format, "format", "", "Input format: markdown or json. Guessed from the file name when empty.")
	cmd.Flags().BoolVar(&open, "open", false, "Open the saved document with the default application.")

	return &cmd
}
