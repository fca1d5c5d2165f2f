package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/log"
	"github.com/stateful/buatdocx/pkg/document"
	"github.com/stateful/buatdocx/pkg/document/editor"
)

var (
	blockStyle   = lipgloss.NewStyle().PaddingLeft(2)
	focusedStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("63")).
			PaddingLeft(1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5d5dd2"))
	gutterStyle  = lipgloss.NewStyle().Width(3).Foreground(lipgloss.Color("241"))
)

// ExportFunc turns the blocks into a document and returns where it was saved.
type ExportFunc func([]document.Block) (string, error)

// ExportedMsg reports the result of an export started with ctrl+s.
type ExportedMsg struct {
	Path string
	Err  error
}

type EditorOption func(*EditorModel)

func WithClipboard(write func(string) error) EditorOption {
	return func(m *EditorModel) {
		m.writeClipboard = write
	}
}

// EditorModel edits blocks one at a time. The focused block is shown
// in a text area; the others are rendered with their kind, emphasis
// and alignment.
type EditorModel struct {
	editor *editor.Editor
	input  textarea.Model
	export ExportFunc
	width  int
	status string

	writeClipboard func(string) error
	log            *zap.Logger
}

func NewEditorModel(e *editor.Editor, export ExportFunc, opts ...EditorOption) EditorModel {
	input := textarea.New()
	input.Prompt = ""
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("alt+enter"),
		key.WithHelp("alt+enter", "line break"),
	)

	m := EditorModel{
		editor:         e,
		input:          input,
		export:         export,
		width:          MaxWidth,
		writeClipboard: clipboard.WriteAll,
		log:            log.Get().Named("tui.EditorModel"),
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.load()
	_ = m.input.Focus()

	return m
}

func (m EditorModel) Editor() *editor.Editor {
	return m.editor
}

func (m EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m EditorModel) KeyMap() *KeyMap {
	kmap := NewKeyMap()

	kmap.Set("insert", key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "new block"),
	))
	kmap.Set("newline", m.input.KeyMap.InsertNewline)
	kmap.Set("remove", key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "remove empty block"),
	))
	kmap.Set("prev", key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous block"),
	))
	kmap.Set("next", key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next block"),
	))
	kmap.Set("move up", key.NewBinding(
		key.WithKeys("alt+up"),
		key.WithHelp("alt+↑", "move up"),
	))
	kmap.Set("move down", key.NewBinding(
		key.WithKeys("alt+down"),
		key.WithHelp("alt+↓", "move down"),
	))
	kmap.Set("bold", key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "bold"),
	))
	kmap.Set("kind", key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "text/heading"),
	))
	kmap.Set("left", key.NewBinding(
		key.WithKeys("alt+l"),
		key.WithHelp("alt+l", "align left"),
	))
	kmap.Set("center", key.NewBinding(
		key.WithKeys("alt+e"),
		key.WithHelp("alt+e", "center"),
	))
	kmap.Set("right", key.NewBinding(
		key.WithKeys("alt+r"),
		key.WithHelp("alt+r", "align right"),
	))
	kmap.Set("justify", key.NewBinding(
		key.WithKeys("alt+j"),
		key.WithHelp("alt+j", "justify"),
	))
	kmap.Set("copy", key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy block"),
	))
	kmap.Set("export", key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "export docx"),
	))

	return kmap
}

var alignmentKeys = map[string]document.Alignment{
	"left":    document.AlignLeft,
	"center":  document.AlignCenter,
	"right":   document.AlignRight,
	"justify": document.AlignJustify,
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = Width(msg.Width)
		m.input.SetWidth(max(1, m.width-6))
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.status = ""
			return m, reportError(errors.WithMessage(msg.Err, "export failed"))
		}
		m.log.Info("exported document", zap.String("path", msg.Path))
		m.status = "Saved " + msg.Path
		return m, nil

	case tea.KeyMsg:
		if cmd, ok := m.handleKey(msg); ok {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.SetHeight(max(1, m.input.LineCount()))
	return m, cmd
}

// handleKey applies block-level bindings. It reports false when
// the key belongs to the text area.
func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	kmap := m.KeyMap()
	focus := m.editor.FocusTarget()

	switch {
	case kmap.Matches(msg, "insert"):
		m.commit()
		if _, ok := m.editor.InsertAfter(focus); ok {
			m.load()
		}
		return nil, true

	case kmap.Matches(msg, "remove"):
		if m.input.Value() != "" || !m.editor.Remove(focus) {
			return nil, false
		}
		m.load()
		return nil, true

	case kmap.Matches(msg, "prev"):
		if m.input.Line() > 0 {
			return nil, false
		}
		m.refocus(focus - 1)
		return nil, true

	case kmap.Matches(msg, "next"):
		if m.input.Line() < m.input.LineCount()-1 {
			return nil, false
		}
		m.refocus(focus + 1)
		return nil, true

	case kmap.Matches(msg, "move up"):
		m.move(focus, focus-1)
		return nil, true

	case kmap.Matches(msg, "move down"):
		m.move(focus, focus+1)
		return nil, true

	case kmap.Matches(msg, "bold"):
		b, _ := m.editor.Block(focus)
		m.editor.Update(focus, document.Patch{}.WithEmphasis(!b.Emphasis))
		return nil, true

	case kmap.Matches(msg, "kind"):
		b, _ := m.editor.Block(focus)
		kind := document.KindHeading
		if b.Kind == document.KindHeading {
			kind = document.KindText
		}
		m.editor.Update(focus, document.Patch{}.WithKind(kind))
		return nil, true

	case kmap.Matches(msg, "copy"):
		if err := m.writeClipboard(m.input.Value()); err != nil {
			m.status = ""
			return reportError(errors.WithMessage(err, "copy failed")), true
		}
		m.status = "Copied block to clipboard"
		return nil, true

	case kmap.Matches(msg, "export"):
		m.commit()
		return m.exportCmd(), true
	}

	for name, alignment := range alignmentKeys {
		if kmap.Matches(msg, name) {
			m.editor.Update(focus, document.Patch{}.WithAlignment(alignment))
			return nil, true
		}
	}

	return nil, false
}

func (m EditorModel) exportCmd() tea.Cmd {
	blocks := m.editor.Blocks()
	export := m.export
	m.log.Debug("exporting blocks", zap.Int("blocks", len(blocks)))
	return func() tea.Msg {
		path, err := export(blocks)
		return ExportedMsg{Path: path, Err: err}
	}
}

// commit writes the text area into the focused block.
func (m *EditorModel) commit() {
	m.editor.Update(m.editor.FocusTarget(), document.Patch{}.WithContent(m.input.Value()))
}

// load shows the focused block in the text area.
func (m *EditorModel) load() {
	b, _ := m.editor.Block(m.editor.FocusTarget())
	m.input.SetValue(b.Content)
	m.input.SetHeight(max(1, m.input.LineCount()))
}

func (m *EditorModel) refocus(index int) {
	m.commit()
	if m.editor.Focus(index) {
		m.load()
	}
}

func (m *EditorModel) move(from, to int) {
	m.commit()
	if m.editor.Move(from, to) {
		// The editor keeps focus on the position; the cursor follows the block instead.
		_ = m.editor.Focus(to)
		m.load()
	}
}

// reportError hands err to the enclosing Model, which shows it
// until the next key press.
func reportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	focus := m.editor.FocusTarget()
	for i, block := range m.editor.Blocks() {
		gutter := gutterStyle.Render(gutterLabel(block))
		var body string
		if i == focus {
			body = focusedStyle.Render(m.input.View())
		} else {
			body = blockStyle.Render(renderBlock(block, m.width-6))
		}
		_, _ = b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, gutter, body))
		_ = b.WriteByte('\n')
	}

	if m.status != "" {
		_, _ = b.WriteString(DefaultStyles.Success.Render(m.status))
	}

	return b.String()
}

func gutterLabel(b document.Block) string {
	label := "T"
	if b.Kind == document.KindHeading {
		label = "H"
	}
	if b.Emphasis && b.Kind == document.KindText {
		label += "*"
	}
	return label
}

func renderBlock(b document.Block, width int) string {
	style := lipgloss.NewStyle().Width(max(1, width))

	switch b.Alignment {
	case document.AlignCenter:
		style = style.Align(lipgloss.Center)
	case document.AlignRight:
		style = style.Align(lipgloss.Right)
	default:
		// Terminals cannot justify; justified text renders flush left.
		style = style.Align(lipgloss.Left)
	}

	switch {
	case b.Kind == document.KindHeading:
		style = style.Inherit(headingStyle)
	case b.Emphasis:
		style = style.Bold(true)
	}

	return style.Render(b.Content)
}
