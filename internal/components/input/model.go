package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"hr-tui/internal/styles"
)

// Model is the message send box.
type Model struct {
	textarea textarea.Model
	width    int
}

// New creates a new input model.
func New(width int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about employees, leave balances, applications..."
	ta.Focus()
	ta.CharLimit = 4096
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetKeys("shift+enter")

	return Model{
		textarea: ta,
		width:    width,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles key input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input box.
func (m Model) View() string {
	return styles.InputBorder.Width(m.width - 2).Render(m.textarea.View())
}

// Value returns the trimmed input text.
func (m Model) Value() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Clear empties the input.
func (m *Model) Clear() {
	m.textarea.SetValue("")
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.textarea.Blur()
}

// SetWidth resizes the input.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width - 4)
}
