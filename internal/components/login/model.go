package login

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hr-tui/internal/styles"
)

const (
	fieldUsername = iota
	fieldPassword
)

// Model is the login form: username, password, and the last auth error.
type Model struct {
	username textinput.Model
	password textinput.Model
	focused  int
	errMsg   string
	busy     bool
	width    int
}

// New creates the login form with the username field focused.
func New(width int) Model {
	user := textinput.New()
	user.Placeholder = "name@company.com"
	user.Prompt = "Email    > "
	user.CharLimit = 128
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password > "
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{
		username: user,
		password: pass,
		width:    width,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles field navigation and typing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down", "up":
			m.toggleFocus()
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the form.
func (m Model) View() string {
	var body string
	body += styles.LoginTitle.Render("HR Assistant — Sign In") + "\n\n"
	if m.errMsg != "" {
		body += styles.LoginError.Render(m.errMsg) + "\n\n"
	}
	body += m.username.View() + "\n"
	body += m.password.View() + "\n\n"
	if m.busy {
		body += styles.StatusBar.Render("Signing in...")
	} else {
		body += styles.StatusBar.Render("Enter: sign in • Tab: switch field • Ctrl+C: quit")
	}

	box := styles.LoginBox.Render(body)
	return lipgloss.Place(m.width, lipgloss.Height(box)+4, lipgloss.Center, lipgloss.Center, box)
}

// Credentials returns the entered username and password.
func (m Model) Credentials() (string, string) {
	return m.username.Value(), m.password.Value()
}

// SetBusy marks a login attempt in flight, disabling the hint line.
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetError shows an auth failure on the form.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.busy = false
}

// SetWidth resizes the form.
func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) toggleFocus() {
	if m.focused == fieldUsername {
		m.focused = fieldPassword
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focused = fieldUsername
		m.password.Blur()
		m.username.Focus()
	}
}
