package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"hr-tui/internal/hrclient"
	"hr-tui/internal/styles"
)

// Model renders the conversation transcript. All mutation goes through the
// transcript reducer; this component owns the open turn handle and the
// viewport, nothing else.
type Model struct {
	viewport   viewport.Model
	spinner    spinner.Model
	transcript *hrclient.Transcript
	turn       *hrclient.Turn
	streaming  bool
	width      int
	height     int
}

// New creates a new chat model.
func New(width, height int) Model {
	vp := viewport.New(width, height)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StepPending

	return Model{
		viewport:   vp,
		spinner:    sp,
		transcript: hrclient.NewTranscript(),
		width:      width,
		height:     height,
	}
}

// Init starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles scrolling and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.viewport.ViewUp()
		case "pgdown":
			m.viewport.ViewDown()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.streaming {
			m.updateContent()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat viewport.
func (m Model) View() string {
	return m.viewport.View()
}

// Begin opens a new turn for the given user message.
func (m *Model) Begin(userText string) {
	m.turn = m.transcript.Begin(userText)
	m.streaming = true
	m.updateContent()
}

// ApplyEvent folds one stream event into the open turn.
func (m *Model) ApplyEvent(ev hrclient.Event) {
	m.transcript.Apply(m.turn, ev)
	m.updateContent()
}

// EndTurn finalizes the open turn. Safe to call more than once.
func (m *Model) EndTurn() {
	m.transcript.Finalize(m.turn)
	m.turn = nil
	m.streaming = false
	m.updateContent()
}

// Streaming reports whether a turn is in flight.
func (m Model) Streaming() bool {
	return m.streaming
}

// SetSize updates the chat dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateContent()
}

// IsEmpty returns true if there are no messages.
func (m Model) IsEmpty() bool {
	return m.transcript.Len() == 0
}

// Clear drops the conversation.
func (m *Model) Clear() {
	m.transcript.Clear()
	m.turn = nil
	m.streaming = false
	m.viewport.SetContent("")
}

// updateContent rebuilds the viewport content from a transcript snapshot.
func (m *Model) updateContent() {
	msgs := m.transcript.Messages()

	var content strings.Builder
	for i, msg := range msgs {
		open := m.streaming && i == len(msgs)-1 && msg.Role == hrclient.RoleAssistant
		content.WriteString(renderMessage(msg, m.width, open, m.spinner.View()))
		if i < len(msgs)-1 {
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}
