package save

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/docx"
)

func testArtifact(t *testing.T) []byte {
	t.Helper()
	data, err := docx.Export([]document.Block{{Content: "Hello", Emphasis: true}})
	require.NoError(t, err)
	return data
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "document 1700000000123.docx", FileName(ts))
}

func TestSaver_Save(t *testing.T) {
	fs := memfs.New()
	now := time.UnixMilli(1700000000123)
	s := New(fs, "out", WithClock(func() time.Time { return now }))

	data := testArtifact(t)

	name, err := s.Save(data)
	require.NoError(t, err)
	assert.Equal(t, "out/document 1700000000123.docx", name)

	got, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSaver_SaveAs(t *testing.T) {
	fs := memfs.New()
	s := New(fs, "")

	name, err := s.SaveAs("report.docx", testArtifact(t))
	require.NoError(t, err)
	assert.Equal(t, "report.docx", name)

	_, err = fs.Stat("report.docx")
	require.NoError(t, err)
}

func TestSaver_RejectsNonDocument(t *testing.T) {
	fs := memfs.New()
	s := New(fs, ".")

	_, err := s.SaveAs("notes.docx", []byte("plain text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDocument)

	_, err = fs.Stat("notes.docx")
	assert.Error(t, err)
}
