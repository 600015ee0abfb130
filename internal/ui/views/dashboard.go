package views

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/stats"
	"github.com/dori/folio/internal/ui/theme"
)

const statusBarWidth = 30

// DashboardView shows summary figures for the current snapshot
type DashboardView struct {
	width  int
	height int

	projects []model.Project
	summary  stats.Summary
	recent   []model.Project
}

// NewDashboardView creates a new dashboard view
func NewDashboardView() DashboardView {
	return DashboardView{}
}

// Init initializes the dashboard view
func (v DashboardView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// SetProjects replaces the snapshot and recomputes the figures
func (v DashboardView) SetProjects(projects []model.Project) DashboardView {
	v.projects = projects
	v.summary = stats.Compute(projects)
	v.recent = stats.Recent(projects, stats.RecentLimit)
	return v
}

// Summary returns the figures currently displayed
func (v DashboardView) Summary() stats.Summary {
	return v.summary
}

// IsInputMode is always false; the dashboard has no inputs
func (v DashboardView) IsInputMode() bool {
	return false
}

// Update handles messages for the dashboard view
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

// View renders the dashboard
func (v DashboardView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	b.WriteString(styles.Title.Render("Project Dashboard"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Overview of your academic projects"))
	b.WriteString("\n\n")

	rate := lipgloss.NewStyle().Foreground(t.Success).Bold(true).
		Render(fmt.Sprintf("%d%%", v.summary.CompletionRate()))
	b.WriteString(styles.Label.Render("Success Rate ") + rate)
	b.WriteString("\n\n")

	b.WriteString(v.renderCards())
	b.WriteString("\n\n")

	b.WriteString(styles.PanelTitle.Render("Recent Activity"))
	b.WriteString("\n")
	b.WriteString(v.renderRecent())
	b.WriteString("\n")

	b.WriteString(styles.PanelTitle.Render("Project Status Overview"))
	b.WriteString("\n")
	b.WriteString(v.renderStatusBars())

	return b.String()
}

func (v DashboardView) renderCards() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	card := func(label string, value int, color lipgloss.Color) string {
		val := styles.StatValue.Foreground(color).Render(fmt.Sprintf("%d", value))
		return styles.StatCard.Render(styles.Label.Render(label) + "\n" + val)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Projects", v.summary.Total, t.Primary),
		card("Completed", v.summary.Completed, t.StatusCompleted),
		card("In Progress", v.summary.InProgress, t.StatusInProgress),
		card("Planning", v.summary.Planning, t.StatusPlanning),
	)
}

func (v DashboardView) renderRecent() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	if len(v.recent) == 0 {
		return styles.CardTitle.Render("  No projects yet") + "\n" +
			styles.Label.Render("  Create your first project to get started") + "\n"
	}

	var b strings.Builder
	for _, p := range v.recent {
		b.WriteString("  ")
		b.WriteString(styles.Badge(t, p.Status))
		b.WriteString(" ")
		b.WriteString(styles.CardTitle.Render(p.Title))
		b.WriteString(styles.CardMeta.Render(fmt.Sprintf("  updated %s", p.UpdatedAt.Format("Jan 2, 2006"))))
		b.WriteString("\n")
	}
	return b.String()
}

func (v DashboardView) renderStatusBars() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	labelStyle := lipgloss.NewStyle().Foreground(t.Foreground).Width(13)
	empty := lipgloss.NewStyle().Foreground(t.Highlight)

	var b strings.Builder
	for _, s := range model.Statuses() {
		filled := int(math.Round(v.summary.Fraction(s) * statusBarWidth))
		bar := lipgloss.NewStyle().Foreground(t.StatusColor(s)).Render(strings.Repeat("█", filled)) +
			empty.Render(strings.Repeat("░", statusBarWidth-filled))

		b.WriteString("  ")
		b.WriteString(labelStyle.Render(s.Label()))
		b.WriteString(bar)
		b.WriteString(styles.CardMeta.Render(fmt.Sprintf(" %d (%d%%)", v.summary.Count(s), v.summary.Share(s))))
		b.WriteString("\n")
	}
	return b.String()
}
