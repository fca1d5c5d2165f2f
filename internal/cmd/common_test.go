package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/docx"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		format   string
		data     string
		expected string
	}{
		{name: "flag wins", file: "a.md", format: "json", expected: formatJSON},
		{name: "json extension", file: "blocks.JSON", expected: formatJSON},
		{name: "markdown extension", file: "README.md", data: "[link]", expected: formatMarkdown},
		{name: "stdin array", file: "-", data: " [{}]", expected: formatJSON},
		{name: "stdin object", file: "-", data: "{}", expected: formatJSON},
		{name: "stdin markdown", file: "-", data: "# Title", expected: formatMarkdown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := detectFormat(tc.file, tc.format, []byte(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := detectFormat("a.md", "html", nil)
	assert.Error(t, err)
}

func TestRelativeToCwd(t *testing.T) {
	rel, ok := relativeToCwd(filepath.Join("nested", "doc.md"))
	require.True(t, ok)
	assert.Equal(t, "nested/doc.md", rel)

	_, ok = relativeToCwd("-")
	assert.False(t, ok)

	_, ok = relativeToCwd(filepath.Join("..", "doc.md"))
	assert.False(t, ok)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := Root()
	root.SetArgs(args)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "report.md")
	output := filepath.Join(dir, "out", "report.docx")

	err := os.WriteFile(source, []byte("---\ntitle: Report\n---\n\n# Summary {align=center}\n\n**Key**\n\nBody\n"), 0o600)
	require.NoError(t, err)

	out, err := execute(t, "", "export", source, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 blocks to "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	doc, err := docx.Read(data)
	require.NoError(t, err)
	assert.Equal(t, document.Properties{Title: "Report", Creator: "buatdocx"}, doc.Properties)
	assert.Equal(t, []document.Block{
		{Content: "Summary", Kind: document.KindHeading, Alignment: document.AlignCenter},
		{Content: "Key", Emphasis: true},
		{Content: "Body"},
	}, doc.Blocks())
}

func TestExportCmd_Stdout(t *testing.T) {
	out, err := execute(t, `[{"content":"Hello","alignment":"right"}]`, "export", "-", "-o", "-")
	require.NoError(t, err)

	doc, err := docx.Read([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []document.Block{{Content: "Hello", Alignment: document.AlignRight}}, doc.Blocks())
}

func TestExportCmd_EmptySource(t *testing.T) {
	out, err := execute(t, "", "export", "-", "-o", "-", "--format", "markdown")
	require.NoError(t, err)

	doc, err := docx.Read([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []document.Block{{}}, doc.Blocks())
}

func TestExportCmd_Config(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "custom.yaml")
	err := os.WriteFile(cfg, []byte("version: v1\ndocument:\n  creator: Team\nexport:\n  thematic_break: false\n"), 0o600)
	require.NoError(t, err)

	out, err := execute(t, "Plain\n", "export", "-", "-o", "-", "--config", cfg)
	require.NoError(t, err)

	doc, err := docx.Read([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "Team", doc.Properties.Creator)
	assert.False(t, doc.Paragraphs[0].Border)

	_, err = execute(t, "Plain\n", "export", "-", "-o", "-", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestExportCmd_Invalid(t *testing.T) {
	_, err := execute(t, `[{"kind":"table"}]`, "export", "-", "-o", "-")
	assert.Error(t, err)

	_, err = execute(t, "", "export", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestInspectCmd(t *testing.T) {
	data, err := docx.Export(
		[]document.Block{
			{Content: "Title", Kind: document.KindHeading, Alignment: document.AlignJustify},
			{Content: "a\nb", Emphasis: true},
		},
		docx.WithProperties(document.Properties{Title: "T", Creator: "C"}),
		docx.WithThematicBreak(true),
	)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, os.WriteFile(file, data, 0o600))

	out, err := execute(t, "", "inspect", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Title: T\nCreator: C\n")
	assert.Regexp(t, `0\s+heading\s+justify\s+-\s+"Title"`, out)
	assert.Regexp(t, `1\s+text\s+left\s+bold,border\s+"a\\nb"`, out)

	out, err = execute(t, "", "inspect", file, "--format", "json")
	require.NoError(t, err)

	src, err := document.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, document.Properties{Title: "T", Creator: "C"}, src.Properties)
	assert.Equal(t, []document.Block{
		{Content: "Title", Kind: document.KindHeading, Alignment: document.AlignJustify},
		{Content: "a\nb", Emphasis: true},
	}, src.Blocks)

	_, err = execute(t, "not a docx", "inspect", "-")
	assert.Error(t, err)
}

func TestExportCmd_Open(t *testing.T) {
	var opened string
	openFile = func(path string) error {
		opened = path
		return nil
	}
	t.Cleanup(func() { openFile = browser.OpenFile })

	output := filepath.Join(t.TempDir(), "open.docx")
	_, err := execute(t, "Hello\n", "export", "-", "-o", output, "--open")
	require.NoError(t, err)
	assert.Equal(t, output, opened)
}
