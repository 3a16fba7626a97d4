package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"hr-tui/internal/hrclient"
	"hr-tui/internal/messages"
)

// Update handles all application messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Reserve space for: header (1), input (5), status bar (1), padding (2)
		chatHeight := msg.Height - 9
		if chatHeight < 5 {
			chatHeight = 5
		}
		m.chat.SetSize(msg.Width, chatHeight)
		m.input.SetWidth(msg.Width)
		m.login.SetWidth(msg.Width)
		m.dash.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}

	case messages.LoginResultMsg:
		if msg.Err != nil {
			m.login.SetError(msg.Err.Error())
			return m, nil
		}
		m.sess = msg.Session
		if err := m.sess.Save(); err != nil {
			m.log.Warn().Err(err).Msg("could not persist session")
		}
		m.login.SetBusy(false)
		m.view = ViewChat
		return m, m.input.Focus()

	case messages.StreamStartMsg:
		m.state = StateStreaming
		return m, nil

	case messages.StreamEventMsg:
		m.chat.ApplyEvent(msg.Event)
		return m, nil

	case messages.StreamErrMsg:
		// The turn still reaches a terminal state: error step, spinner off.
		m.log.Error().Err(msg.Err).Msg("chat turn failed")
		m.chat.ApplyEvent(hrclient.ErrorEvent{Text: msg.Err.Error()})
		m.chat.EndTurn()
		m.err = msg.Err
		m.state = StateError
		return m, m.input.Focus()

	case messages.StreamEndMsg:
		m.chat.EndTurn()
		if m.state == StateStreaming {
			m.state = StateIdle
		}
		return m, m.input.Focus()

	case messages.StatsMsg:
		if msg.Err != nil {
			m.dash.SetError(msg.Err)
		} else {
			m.dash.SetStats(msg.Stats)
		}
		return m, nil
	}

	return m.updateChildren(msg, cmds)
}

// handleKey routes key presses by view. The bool result reports whether the
// key was consumed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		if m.state == StateStreaming && m.cancel != nil {
			// First Ctrl+C abandons the turn, not the program.
			m.cancel()
			m.state = StateIdle
			m.chat.EndTurn()
			model, cmd := m, m.input.Focus()
			return model, cmd, true
		}
		return m, tea.Quit, true

	case "esc":
		if m.view == ViewDashboard {
			m.view = ViewChat
			return m, m.input.Focus(), true
		}
		if m.state == StateStreaming && m.cancel != nil {
			m.cancel()
			m.state = StateIdle
			m.chat.EndTurn()
			return m, m.input.Focus(), true
		}
		return m, tea.Quit, true

	case "enter":
		if m.view == ViewLogin {
			return m.submitLogin()
		}
		if m.view == ViewChat && m.state != StateStreaming && m.input.Value() != "" {
			model, cmd := m.sendMessage()
			return model, cmd, true
		}

	case "ctrl+d":
		// Toggle the analytics dashboard.
		if m.view == ViewChat && m.sess != nil {
			m.view = ViewDashboard
			m.dash.SetLoading()
			return m, m.fetchStats(), true
		}
		if m.view == ViewDashboard {
			m.view = ViewChat
			return m, m.input.Focus(), true
		}

	case "ctrl+l":
		if m.view == ViewChat && m.state == StateIdle {
			m.chat.Clear()
			return m, nil, true
		}

	case "ctrl+x":
		// Logout: drop the persisted session and return to login.
		if m.view != ViewLogin && m.state != StateStreaming {
			if err := hrclient.ClearSession(); err != nil {
				m.log.Warn().Err(err).Msg("could not clear session")
			}
			m.sess = nil
			m.chat.Clear()
			m.view = ViewLogin
			return m, nil, true
		}
	}

	return m, nil, false
}

// submitLogin kicks off a login attempt with the form's credentials.
func (m Model) submitLogin() (tea.Model, tea.Cmd, bool) {
	username, password := m.login.Credentials()
	if username == "" || password == "" {
		return m, nil, true
	}
	m.login.SetBusy(true)
	return m, m.loginCmd(username, password), true
}

// sendMessage opens a turn for the current input and starts streaming.
// The input stays disabled until the turn reaches a terminal state.
func (m Model) sendMessage() (tea.Model, tea.Cmd) {
	content := m.input.Value()

	m.chat.Begin(content)
	m.input.Clear()
	m.input.Blur()
	m.state = StateStreaming
	m.err = nil

	ctx, cancel := newTurnContext()
	m.ctx = ctx
	m.cancel = cancel

	return m, m.streamTurn(ctx, content)
}

// updateChildren forwards remaining messages to the focused components.
func (m Model) updateChildren(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
		cmds = append(cmds, cmd)
	case ViewChat:
		if m.state == StateIdle || m.state == StateError {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// The chat keeps scrolling and animating regardless of focus.
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// userLabel is the header descriptor for the signed-in user.
func (m Model) userLabel() string {
	if m.sess == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", m.sess.UserName, m.sess.Role)
}
