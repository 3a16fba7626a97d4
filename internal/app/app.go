package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"hr-tui/internal/components/chat"
	"hr-tui/internal/components/dashboard"
	"hr-tui/internal/components/input"
	"hr-tui/internal/components/login"
	"hr-tui/internal/hrclient"
)

// View is the top-level screen being shown.
type View int

const (
	ViewLogin View = iota
	ViewChat
	ViewDashboard
)

// State represents the chat turn state.
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateError
)

// SharedState holds state that needs to be shared between model copies.
type SharedState struct {
	mu      sync.Mutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (s *SharedState) SetProgram(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

// GetProgram gets the program reference.
func (s *SharedState) GetProgram() *tea.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

// Model is the main application model.
type Model struct {
	view   View
	state  State
	login  login.Model
	chat   chat.Model
	input  input.Model
	dash   dashboard.Model
	client *hrclient.Client
	sess   *hrclient.Session
	shared *SharedState
	log    zerolog.Logger
	width  int
	height int
	err    error
	ctx    context.Context
	cancel context.CancelFunc
	ready  bool
}

// New creates the application model. A persisted, unexpired session skips
// the login view; otherwise the token's absence gates the main view.
func New(client *hrclient.Client, log zerolog.Logger) Model {
	m := Model{
		view:   ViewLogin,
		state:  StateIdle,
		login:  login.New(80),
		chat:   chat.New(80, 20),
		input:  input.New(80),
		dash:   dashboard.New(80),
		client: client,
		shared: &SharedState{},
		log:    log,
	}

	if sess, err := hrclient.LoadSession(); err == nil && !sess.Expired() {
		m.sess = sess
		m.view = ViewChat
	}

	return m
}

// SetProgram sets the tea.Program reference for stream callbacks.
func (m *Model) SetProgram(p *tea.Program) {
	m.shared.SetProgram(p)
}

// Init initializes the application.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.login.Init(),
		m.input.Init(),
		m.chat.Init(),
	)
}
