package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hr-tui/internal/messages"
)

// turnTimeout bounds a single turn end to end. A hung backend stream used
// to hang the UI with it; the deadline guarantees the turn terminates.
const turnTimeout = 5 * time.Minute

func newTurnContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), turnTimeout)
}

// streamTurn submits one chat turn and pumps its events into the program.
// Events are forwarded in wire order; the returned message is delivered
// after the last forwarded event, so the end always folds last.
func (m Model) streamTurn(ctx context.Context, content string) tea.Cmd {
	client := m.client
	sess := m.sess
	p := m.shared.GetProgram()

	return func() tea.Msg {
		eventCh, errCh, err := client.Chat(ctx, sess, content)
		if err != nil {
			return messages.StreamErrMsg{Err: err}
		}
		p.Send(messages.StreamStartMsg{})

		for eventCh != nil || errCh != nil {
			select {
			case ev, ok := <-eventCh:
				if !ok {
					eventCh = nil
					continue
				}
				p.Send(messages.StreamEventMsg{Event: ev})
			case err, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				if err != nil {
					return messages.StreamErrMsg{Err: err}
				}
			}
		}

		return messages.StreamEndMsg{}
	}
}

// loginCmd attempts a login and reports the outcome.
func (m Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sess, err := client.Login(ctx, username, password)
		return messages.LoginResultMsg{Session: sess, Err: err}
	}
}

// fetchStats loads the dashboard aggregates.
func (m Model) fetchStats() tea.Cmd {
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := client.DashboardStats(ctx, sess)
		return messages.StatsMsg{Stats: stats, Err: err}
	}
}
