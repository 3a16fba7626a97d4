package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hr-tui/internal/components/chat"
	"hr-tui/internal/styles"
)

// View renders the application.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == ViewLogin {
		return m.login.View()
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	switch m.view {
	case ViewDashboard:
		sections = append(sections, m.dash.View())
	default:
		chatView := m.chat.View()
		if m.chat.IsEmpty() {
			welcomeStyle := lipgloss.NewStyle().
				Foreground(styles.Muted).
				Width(m.width).
				Align(lipgloss.Center).
				Padding(2, 0)
			chatView = welcomeStyle.Render(chat.WelcomeText)
		}
		sections = append(sections, chatView)

		if m.state == StateStreaming {
			disabledInput := lipgloss.NewStyle().
				Foreground(styles.Muted).
				Italic(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(styles.Muted).
				Padding(0, 1).
				Width(m.width - 2).
				Render("Waiting for response... (Esc to cancel)")
			sections = append(sections, disabledInput)
		} else {
			sections = append(sections, m.input.View())
		}
	}

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the signed-in user on the right.
func (m Model) renderHeader() string {
	left := styles.Header.Render("HR Assistant")
	right := styles.HeaderUser.Render(m.userLabel())

	spacerWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacerWidth), right)
}

// renderStatusBar renders the status bar at the bottom.
func (m Model) renderStatusBar() string {
	var status string
	var statusStyle lipgloss.Style

	switch m.state {
	case StateIdle:
		status = "Ready"
		statusStyle = styles.StatusBar
	case StateStreaming:
		status = "Streaming..."
		statusStyle = styles.StatusBarStreaming
	case StateError:
		status = fmt.Sprintf("Error: %v", m.err)
		statusStyle = styles.StatusBarError
	}

	help := "Enter: send • Ctrl+D: dashboard • Ctrl+L: clear • Ctrl+X: logout • Ctrl+C: quit"
	if m.view == ViewDashboard {
		help = "Esc: back to chat • Ctrl+X: logout • Ctrl+C: quit"
	}

	left := statusStyle.Render(status)
	right := styles.StatusBar.Render(help)

	spacerWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacerWidth), right)
}
