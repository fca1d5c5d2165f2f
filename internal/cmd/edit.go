package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/save"
	"github.com/stateful/buatdocx/internal/tui"
	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/docx"
	"github.com/stateful/buatdocx/pkg/document/editor"
)

func editCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "edit [file]",
		Short: "Compose a document in the terminal",
		Long: `Edit opens a block editor, optionally seeded with a markdown or JSON document.

Press ctrl+s to export the blocks to "document <unix ms>.docx"
in the configured output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) > 0 {
				source = args[0]
			}

			b, err := newBuilder(source)
			if err != nil {
				return err
			}

			return b.Invoke(func(
				exporter *docx.Exporter,
				saver *save.Saver,
				logger *zap.Logger,
			) error {
				src := &document.Source{}
				if source != "" {
					src, err = readSource(cmd, source, format)
					if err != nil {
						return err
					}
				}

				exporter = exporter.With(docx.WithProperties(src.Properties.Merge(exporter.Properties())))
				export := func(blocks []document.Block) (string, error) {
					data, err := exporter.Export(blocks)
					if err != nil {
						return "", err
					}
					return saver.Save(data)
				}

				model := tui.NewModel(
					tui.NewEditorModel(editor.NewWithBlocks(src.Blocks, editor.WithLogger(logger)), export),
					tui.HelpKeyMap.Copy(),
					tui.DefaultStyles,
				)

				_, err = newProgram(cmd, model).Run()
				return errors.Wrap(err, "editor failed")
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: markdown or json. Guessed from the file name when empty.")

	return &cmd
}
