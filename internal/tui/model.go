package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/elliotchance/orderedmap"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/log"
)

const MaxWidth = 120

func Width(width int) int {
	if width > MaxWidth {
		return MaxWidth
	}
	return width
}

// Model frames a child model with help and error reporting.
// An ErrorMsg is shown under the child until the next key press,
// or quits the program when it is fatal.
type Model struct {
	Child  tea.Model
	KeyMap *KeyMap
	Styles *Styles

	err  error
	help help.Model
	log  *zap.Logger
}

func NewModel(child tea.Model, keyMap *KeyMap, styles *Styles) Model {
	return Model{
		Child:  child,
		KeyMap: keyMap,
		Styles: styles,
		help:   help.New(),
		log:    log.Get().Named("tui.Model"),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Child.Init()
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = Width(msg.Width)

	case tea.KeyMsg:
		m.log.Debug("received KeyMsg", zap.String("key", msg.String()))
		m.err = nil
		switch {
		case m.KeyMap.Matches(msg, "quit"):
			return m, tea.Quit
		case m.KeyMap.Matches(msg, "less"):
			fallthrough
		case m.KeyMap.Matches(msg, "more"):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case ErrorMsg:
		m.log.Info("received ErrorMsg", zap.Error(msg.Err), zap.Bool("exit", msg.Exit))
		m.err = msg.Err
		if msg.Exit {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Child, cmd = m.Child.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	_, _ = b.WriteString(m.Styles.Child.Render(m.Child.View()))

	if m.err != nil {
		_ = b.WriteByte('\n')
		_, _ = b.WriteString(m.Styles.Error.Render("Error: " + m.err.Error()))
	}

	kmap := m.KeyMap.Copy()
	if p, ok := m.Child.(KeyMapProvider); ok {
		kmap.Merge(p.KeyMap())
	}
	_, _ = b.WriteString(m.Styles.Help.Render(m.help.View(kmap)))

	return b.String()
}

// ErrorMsg reports a failure to the user. With Exit the program quits.
type ErrorMsg struct {
	Err  error
	Exit bool
}

type Styles struct {
	Child   lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Success lipgloss.Style
}

var (
	ColorError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"})
	ColorSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "32", Dark: "42"})
)

var DefaultStyles = &Styles{
	Child:   lipgloss.NewStyle().Padding(1, 0, 0, 0),
	Error:   lipgloss.NewStyle().Inherit(ColorError).Padding(1, 0),
	Help:    lipgloss.NewStyle().Padding(1, 0, 1, 2),
	Success: lipgloss.NewStyle().Inherit(ColorSuccess).Padding(1, 0),
}

var MinimalKeyMap = func() *KeyMap {
	m := NewKeyMap()
	m.Set("quit", key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	))
	return m
}()

// HelpKeyMap adds a toggle between the short and the full help.
var HelpKeyMap = func() *KeyMap {
	m := MinimalKeyMap.Copy()
	m.Set("more", key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "more"),
	))
	m.Set("less", key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "less"),
	))
	return m
}()

// KeyMapProvider is implemented by children whose bindings
// are listed in the help.
type KeyMapProvider interface {
	KeyMap() *KeyMap
}

// KeyMap keeps bindings in insertion order so the help is stable.
type KeyMap struct {
	*orderedmap.OrderedMap
}

func NewKeyMap() *KeyMap {
	return &KeyMap{OrderedMap: orderedmap.NewOrderedMap()}
}

func (m KeyMap) Copy() *KeyMap {
	return &KeyMap{
		OrderedMap: m.OrderedMap.Copy(),
	}
}

func (m *KeyMap) Merge(kmap *KeyMap) {
	for pair := kmap.Front(); pair != nil; pair = pair.Next() {
		m.Set(pair.Key, pair.Value)
	}
}

func (m KeyMap) Matches(msg tea.KeyMsg, name string) bool {
	v, ok := m.Get(name)
	if !ok {
		return false
	}
	return key.Matches(msg, v.(key.Binding))
}

var _ help.KeyMap = (*KeyMap)(nil)

func (m KeyMap) ShortHelp() []key.Binding {
	result := make([]key.Binding, 0, m.Len())
	for pair := m.Front(); pair != nil; pair = pair.Next() {
		if v, _ := pair.Key.(string); v == "less" {
			continue
		}
		result = append(result, pair.Value.(key.Binding))
	}
	return result
}

func (m KeyMap) FullHelp() [][]key.Binding {
	result := [2][]key.Binding{}
	idx := 0
	for pair := m.Front(); pair != nil; pair = pair.Next() {
		if v, _ := pair.Key.(string); v == "more" {
			continue
		}
		result[idx%2] = append(result[idx%2], pair.Value.(key.Binding))
		idx++
	}
	return result[:]
}
