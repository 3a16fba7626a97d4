package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hr-tui/internal/hrclient"
	"hr-tui/internal/styles"
)

// Model renders the admin analytics overview from one stats snapshot.
type Model struct {
	stats   *hrclient.DashboardStats
	errMsg  string
	loading bool
	width   int
}

// New creates an empty dashboard in its loading state.
func New(width int) Model {
	return Model{width: width, loading: true}
}

// SetStats installs a fresh stats snapshot.
func (m *Model) SetStats(stats *hrclient.DashboardStats) {
	m.stats = stats
	m.errMsg = ""
	m.loading = false
}

// SetError records a fetch failure.
func (m *Model) SetError(err error) {
	m.errMsg = err.Error()
	m.loading = false
}

// SetLoading puts the dashboard back into its loading state for a refresh.
func (m *Model) SetLoading() {
	m.loading = true
}

// SetWidth resizes the dashboard.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// View renders the stat cards and distribution charts.
func (m Model) View() string {
	if m.loading {
		return styles.StatusBar.Render("Loading dashboard...")
	}
	if m.errMsg != "" {
		return styles.StatusBarError.Render("Failed to load dashboard: " + m.errMsg)
	}
	if m.stats == nil {
		return styles.StatusBar.Render("No dashboard data.")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Employees", m.stats.TotalEmployees),
		statCard("Pending Approvals", m.stats.PendingLeaves),
		statCard("Active Leaves", m.stats.ApprovedLeaves),
	)

	sections := []string{
		styles.Header.Render("Overview"),
		cards,
	}
	if chart := renderDistribution("By Department", m.stats.Departments); chart != "" {
		sections = append(sections, chart)
	}
	if chart := renderDistribution("Leave Status", m.stats.LeaveStatus); chart != "" {
		sections = append(sections, chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func statCard(label string, value int64) string {
	return styles.StatCard.Render(
		styles.StatValue.Render(fmt.Sprintf("%d", value)) + "\n" +
			styles.StatLabel.Render(label))
}

// renderDistribution draws a labeled horizontal bar per entry, scaled to
// the largest count.
func renderDistribution(title string, entries []hrclient.DistributionEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var max int64 = 1
	for _, e := range entries {
		if e.Count > max {
			max = e.Count
		}
	}

	const barWidth = 24
	var sb strings.Builder
	sb.WriteString(styles.Header.Render(title))
	for _, e := range entries {
		n := int(e.Count * barWidth / max)
		if e.Count > 0 && n == 0 {
			n = 1
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(" %s %s %d",
			styles.ChartLabel.Width(18).Render(e.Label),
			styles.ChartBar.Render(strings.Repeat("█", n)),
			e.Count))
	}
	return sb.String()
}
