package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/docx"
)

func inspectCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "inspect <file.docx|->",
		Short: "Print the paragraphs and properties of a .docx document",
		Long: `Inspect prints what a .docx document holds in terms of blocks.

With --format json the output is a document accepted by "export --format json".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc, err := docx.Read(data)
			if err != nil {
				return errors.WithMessagef(err, "failed to read %s", args[0])
			}

			switch format {
			case formatJSON:
				return printJSON(cmd.OutOrStdout(), doc)
			case formatText, "":
				return printText(cmd.OutOrStdout(), doc)
			default:
				return errors.Errorf("unsupported format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json.")

	return &cmd
}

func printJSON(w io.Writer, doc *docx.Document) error {
	raw, err := json.Marshal(document.Source{Properties: doc.Properties, Blocks: doc.Blocks()})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(
		jsonpretty.Format(w, bytes.NewReader(raw), "  ", false),
	)
}

// terminalWidth reports whether w is a terminal and its width.
// For non-TTY, a default width of 80 is used.
func terminalWidth(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return false, 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		width = 80
	}
	return true, width
}

func printText(w io.Writer, doc *docx.Document) error {
	props := doc.Properties
	if props != (document.Properties{}) {
		_, _ = fmt.Fprintf(w, "Title: %s\nCreator: %s\nDescription: %s\n\n", props.Title, props.Creator, props.Description)
	}

	if len(doc.Paragraphs) == 0 {
		_, _ = noteColor.Fprintln(w, "No paragraphs")
		return nil
	}

	isTTY, width := terminalWidth(w)
	table := tableprinter.New(w, isTTY, width)

	// table header
	table.AddField("#")
	table.AddField(strings.ToUpper("Kind"))
	table.AddField(strings.ToUpper("Align"))
	table.AddField(strings.ToUpper("Style"))
	table.AddField(strings.ToUpper("Text"))
	table.EndRow()

	for i, p := range doc.Paragraphs {
		b := p.Block()
		table.AddField(strconv.Itoa(i))
		table.AddField(b.Kind.String())
		table.AddField(b.Alignment.String())
		table.AddField(paragraphStyle(p))
		table.AddField(strconv.Quote(p.Text))
		table.EndRow()
	}

	return errors.WithStack(table.Render())
}

func paragraphStyle(p docx.Paragraph) string {
	var flags []string
	if p.Bold {
		flags = append(flags, "bold")
	}
	if p.Border {
		flags = append(flags, "border")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
