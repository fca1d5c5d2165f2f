package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/editor"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func send(t *testing.T, m EditorModel, msgs ...tea.Msg) (EditorModel, tea.Cmd) {
	t.Helper()

	var (
		model tea.Model = m
		cmd   tea.Cmd
	)
	for _, msg := range msgs {
		model, cmd = model.Update(msg)
	}

	result, ok := model.(EditorModel)
	require.True(t, ok)
	return result, cmd
}

func contents(e *editor.Editor) []string {
	var result []string
	for _, b := range e.Blocks() {
		result = append(result, b.Content)
	}
	return result
}

func noExport([]document.Block) (string, error) {
	return "", errors.New("not expected")
}

func TestEditorModel_TypeAndInsert(t *testing.T) {
	m := NewEditorModel(editor.New(), noExport)

	m, _ = send(t, m,
		runes("Hello"),
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("World"),
		tea.KeyMsg{Type: tea.KeyEnter, Alt: true},
		runes("again"),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyUp},
	)

	e := m.Editor()
	assert.Equal(t, []string{"Hello", "World\nagain"}, contents(e))
	assert.Equal(t, 0, e.FocusTarget())
}

func TestEditorModel_BackspaceRemovesEmptyBlock(t *testing.T) {
	e := editor.NewWithBlocks([]document.Block{{Content: "a"}, {Content: ""}})
	require.True(t, e.Focus(1))
	m := NewEditorModel(e, noExport)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, []string{"a"}, contents(m.Editor()))
	assert.Equal(t, 0, m.Editor().FocusTarget())

	// Backspace on a non-empty block edits text.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"", ""}, contents(m.Editor()))

	// The last remaining empty block is kept.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, 1, m.Editor().Len())
}

func TestEditorModel_Navigation(t *testing.T) {
	e := editor.NewWithBlocks([]document.Block{{Content: "a"}, {Content: "b"}, {Content: "c"}})
	m := NewEditorModel(e, noExport)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Editor().FocusTarget())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Editor().FocusTarget())
}

func TestEditorModel_Move(t *testing.T) {
	e := editor.NewWithBlocks([]document.Block{{Content: "a"}, {Content: "b"}, {Content: "c"}})
	m := NewEditorModel(e, noExport)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown, Alt: true}, tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.Equal(t, []string{"b", "c", "a"}, contents(m.Editor()))
	assert.Equal(t, 2, m.Editor().FocusTarget())

	// Out of range.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown, Alt: true})
	assert.Equal(t, []string{"b", "c", "a"}, contents(m.Editor()))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	assert.Equal(t, []string{"b", "a", "c"}, contents(m.Editor()))
	assert.Equal(t, 1, m.Editor().FocusTarget())
}

func TestEditorModel_Formatting(t *testing.T) {
	m := NewEditorModel(editor.New(), noExport)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	b, _ := m.Editor().Block(0)
	assert.True(t, b.Emphasis)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT}, alt('e'))
	b, _ = m.Editor().Block(0)
	assert.Equal(t, document.KindHeading, b.Kind)
	assert.Equal(t, document.AlignCenter, b.Alignment)

	m, _ = send(t, m, alt('j'), tea.KeyMsg{Type: tea.KeyCtrlT})
	b, _ = m.Editor().Block(0)
	assert.Equal(t, document.KindText, b.Kind)
	assert.Equal(t, document.AlignJustify, b.Alignment)

	m, _ = send(t, m, alt('r'))
	b, _ = m.Editor().Block(0)
	assert.Equal(t, document.AlignRight, b.Alignment)

	m, _ = send(t, m, alt('l'))
	b, _ = m.Editor().Block(0)
	assert.Equal(t, document.AlignLeft, b.Alignment)
}

func TestEditorModel_Copy(t *testing.T) {
	var copied string
	m := NewEditorModel(
		editor.NewWithBlocks([]document.Block{{Content: "copy me"}}),
		noExport,
		WithClipboard(func(s string) error {
			copied = s
			return nil
		}),
	)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "copy me", copied)
	assert.Contains(t, m.View(), "Copied block to clipboard")
}

func TestEditorModel_CopyFailure(t *testing.T) {
	m := NewEditorModel(
		editor.New(),
		noExport,
		WithClipboard(func(string) error { return errors.New("no clipboard") }),
	)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	errMsg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.EqualError(t, errMsg.Err, "copy failed: no clipboard")
	assert.NotContains(t, m.View(), "Copied")
}

func TestEditorModel_NarrowWindow(t *testing.T) {
	m := NewEditorModel(editor.NewWithBlocks([]document.Block{{Content: "a"}, {Content: "b"}}), noExport)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 3, Height: 5}, runes("x"))
	assert.GreaterOrEqual(t, m.input.Width(), 1)
	assert.Contains(t, m.View(), "b")
	assert.Equal(t, "ax", m.input.Value())
}

func TestEditorModel_Export(t *testing.T) {
	var exported []document.Block
	export := func(blocks []document.Block) (string, error) {
		exported = blocks
		return "document 1.docx", nil
	}

	m := NewEditorModel(editor.New(), export)
	m, cmd := send(t, m, runes("Hello"), tea.KeyMsg{Type: tea.KeyCtrlB}, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, ExportedMsg{}, msg)
	require.Len(t, exported, 1)
	assert.Equal(t, "Hello", exported[0].Content)
	assert.True(t, exported[0].Emphasis)

	m, _ = send(t, m, msg)
	assert.Contains(t, m.View(), "Saved document 1.docx")

	m, cmd = send(t, m, ExportedMsg{Err: errors.New("disk full")})
	require.NotNil(t, cmd)
	errMsg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.EqualError(t, errMsg.Err, "export failed: disk full")
	assert.False(t, errMsg.Exit)
	assert.NotContains(t, m.View(), "Saved")
}

func TestEditorModel_View(t *testing.T) {
	e := editor.NewWithBlocks([]document.Block{
		{Content: "Title", Kind: document.KindHeading, Alignment: document.AlignCenter},
		{Content: "Body", Emphasis: true},
	})
	require.True(t, e.Focus(1))
	m := NewEditorModel(e, noExport)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	view := m.View()
	assert.Contains(t, view, "Title")
	assert.Contains(t, view, "Body")
	assert.Contains(t, view, "H")
	assert.Contains(t, view, "T*")
}

func TestModel_WrapsEditor(t *testing.T) {
	kmap := MinimalKeyMap.Copy()
	m := NewModel(NewEditorModel(editor.New(), noExport), kmap, DefaultStyles)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	assert.Contains(t, m.View(), "new block")
}

func TestModel_ReportsExportError(t *testing.T) {
	failing := func([]document.Block) (string, error) {
		return "", errors.New("disk full")
	}
	var model tea.Model = NewModel(NewEditorModel(editor.New(), failing), HelpKeyMap.Copy(), DefaultStyles)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	exported, ok := cmd().(ExportedMsg)
	require.True(t, ok)

	model, cmd = model.Update(exported)
	require.NotNil(t, cmd)
	errMsg, ok := cmd().(ErrorMsg)
	require.True(t, ok)

	model, cmd = model.Update(errMsg)
	assert.Nil(t, cmd)

	m := model.(Model)
	require.EqualError(t, m.Err(), "export failed: disk full")
	assert.Contains(t, m.View(), "Error: export failed: disk full")
	assert.Contains(t, m.View(), "new block")

	// The error stays until the next key press.
	model, _ = m.Update(runes("a"))
	m = model.(Model)
	assert.NoError(t, m.Err())
	assert.NotContains(t, m.View(), "Error:")
}

func TestModel_FatalError(t *testing.T) {
	m := NewModel(NewEditorModel(editor.New(), noExport), MinimalKeyMap.Copy(), DefaultStyles)

	_, cmd := m.Update(ErrorMsg{Err: errors.New("broken"), Exit: true})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ToggleHelp(t *testing.T) {
	var model tea.Model = NewModel(NewEditorModel(editor.New(), noExport), HelpKeyMap.Copy(), DefaultStyles)
	assert.Contains(t, model.View(), "more")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "less")
	assert.NotContains(t, model.View(), "f1 more")
}
