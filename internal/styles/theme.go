package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#2563EB")
	Secondary = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#D97706")
	Error     = lipgloss.Color("#EF4444")
	Muted     = lipgloss.Color("#6B7280")
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#E5E7EB")
	ThoughtFg = lipgloss.Color("#93C5FD")

	// Message Styles
	UserMessage = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(White).
			Bold(true)

	UserLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	AssistantMessage = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(LightGray)

	AssistantLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Thought-process panel
	StepTitle = lipgloss.NewStyle().
			Foreground(ThoughtFg)

	StepPending = lipgloss.NewStyle().
			Foreground(Primary)

	StepComplete = lipgloss.NewStyle().
			Foreground(Secondary)

	StepError = lipgloss.NewStyle().
			Foreground(Error)

	ThoughtHeader = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			PaddingLeft(1)

	ThoughtBlock = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Primary).
			PaddingLeft(1).
			MarginLeft(1)

	// Input Styles
	InputBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Status Bar Styles
	StatusBar = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	StatusBarStreaming = lipgloss.NewStyle().
				Foreground(Primary).
				Padding(0, 1)

	StatusBarError = lipgloss.NewStyle().
			Foreground(Error).
			Padding(0, 1)

	// Header
	Header = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(0, 1)

	HeaderUser = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	StreamingCursor = lipgloss.NewStyle().
			Foreground(Primary)

	// Dashboard
	StatCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 2).
			Margin(0, 1)

	StatValue = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	StatLabel = lipgloss.NewStyle().
			Foreground(Muted)

	ChartBar = lipgloss.NewStyle().
			Foreground(Primary)

	ChartLabel = lipgloss.NewStyle().
			Foreground(LightGray)

	// Login
	LoginTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Align(lipgloss.Center)

	LoginError = lipgloss.NewStyle().
			Foreground(Error)

	LoginBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 3)
)
