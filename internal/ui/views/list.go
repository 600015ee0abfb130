package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/folio/internal/filter"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/ui/theme"
)

// ListMode represents the current input mode of the list view
type ListMode int

const (
	ListModeNormal ListMode = iota
	ListModeSearch
	ListModeConfirmDelete
)

// cardHeight is the rendered height of one project card, borders included
const cardHeight = 6

// EditProjectRequest is sent when the user wants to edit a project
// (Defined here to avoid circular import with ui package)
type EditProjectRequest struct {
	ID string
}

// DeleteProjectRequest is sent once the user confirms a deletion
type DeleteProjectRequest struct {
	ID    string
	Title string
}

// ListView shows the filtered project cards
type ListView struct {
	width  int
	height int

	projects []model.Project // full snapshot
	visible  []model.Project // after filtering
	techs    []string

	criteria filter.Criteria
	mode     ListMode
	input    textinput.Model
	// search text to restore when search is cancelled
	prevSearch string

	cursor       int
	scrollOffset int

	// For delete confirmation
	deleteID    string
	deleteTitle string
}

// NewListView creates a new list view
func NewListView() ListView {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.CharLimit = 128

	return ListView{
		criteria: filter.None(),
		input:    ti,
	}
}

// Init initializes the list view
func (v ListView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns true when the view is capturing keys (search or
// delete confirmation)
func (v ListView) IsInputMode() bool {
	return v.mode == ListModeSearch || v.mode == ListModeConfirmDelete
}

// Mode returns the current input mode
func (v ListView) Mode() ListMode {
	return v.mode
}

// SetSize updates the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	v.ensureCursorVisible()
	return v
}

// SetProjects replaces the snapshot and reapplies the current criteria
func (v ListView) SetProjects(projects []model.Project) ListView {
	v.projects = projects
	v.techs = filter.AvailableTechs(projects)
	v.applyFilter()
	return v
}

// Criteria returns the active filter criteria
func (v ListView) Criteria() filter.Criteria {
	return v.criteria
}

// Visible returns the projects currently shown
func (v ListView) Visible() []model.Project {
	return v.visible
}

// Selected returns the project under the cursor
func (v ListView) Selected() (model.Project, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return model.Project{}, false
	}
	return v.visible[v.cursor], true
}

// Update handles messages for the list view
func (v ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch v.mode {
	case ListModeSearch:
		return v.handleSearchMode(keyMsg)
	case ListModeConfirmDelete:
		return v.handleDeleteConfirm(keyMsg)
	default:
		return v.handleNormalMode(keyMsg)
	}
}

func (v ListView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		if len(v.visible) > 0 {
			v.cursor = len(v.visible) - 1
		}

	case "/":
		v.mode = ListModeSearch
		needle, _ := v.criteria.Search.Value()
		v.prevSearch = needle
		v.input.SetValue(needle)
		v.input.CursorEnd()
		return v, v.input.Focus()

	case "s":
		v.criteria.Status = nextStatus(v.criteria.Status)
		v.applyFilter()
	case "t":
		v.criteria.Tech = nextTech(v.criteria.Tech, v.techs)
		v.applyFilter()
	case "c":
		v.criteria = filter.None()
		v.input.SetValue("")
		v.applyFilter()

	case "enter", "e":
		if p, ok := v.Selected(); ok {
			id := p.ID
			return v, func() tea.Msg { return EditProjectRequest{ID: id} }
		}
	case "d":
		if p, ok := v.Selected(); ok {
			v.mode = ListModeConfirmDelete
			v.deleteID = p.ID
			v.deleteTitle = p.Title
		}
	}

	v.ensureCursorVisible()
	return v, nil
}

// handleSearchMode filters live as the user types
func (v ListView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.mode = ListModeNormal
		v.input.Blur()
		return v, nil

	case "esc":
		v.mode = ListModeNormal
		v.input.Blur()
		v.input.SetValue(v.prevSearch)
		v.setSearch(v.prevSearch)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.setSearch(v.input.Value())
	return v, cmd
}

func (v ListView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		req := DeleteProjectRequest{ID: v.deleteID, Title: v.deleteTitle}
		v.mode = ListModeNormal
		v.deleteID, v.deleteTitle = "", ""
		return v, func() tea.Msg { return req }
	case "n", "N", "esc":
		v.mode = ListModeNormal
		v.deleteID, v.deleteTitle = "", ""
	}
	return v, nil
}

func (v *ListView) setSearch(text string) {
	if text == "" {
		v.criteria.Search = filter.AnyText()
	} else {
		v.criteria.Search = filter.Contains(text)
	}
	v.applyFilter()
}

func (v *ListView) applyFilter() {
	v.visible = filter.Apply(v.projects, v.criteria)
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureCursorVisible()
}

// nextStatus cycles Any -> each status in order -> Any
func nextStatus(m filter.Match[model.Status]) filter.Match[model.Status] {
	statuses := model.Statuses()
	cur, ok := m.Value()
	if !ok {
		return filter.Equals(statuses[0])
	}
	for i, s := range statuses {
		if s == cur && i+1 < len(statuses) {
			return filter.Equals(statuses[i+1])
		}
	}
	return filter.Any[model.Status]()
}

// nextTech cycles Any -> each available tech -> Any. A selected tech that
// has disappeared from the snapshot restarts the cycle.
func nextTech(m filter.Match[string], techs []string) filter.Match[string] {
	if len(techs) == 0 {
		return filter.Any[string]()
	}
	cur, ok := m.Value()
	if !ok {
		return filter.Equals(techs[0])
	}
	for i, t := range techs {
		if t == cur {
			if i+1 < len(techs) {
				return filter.Equals(techs[i+1])
			}
			return filter.Any[string]()
		}
	}
	return filter.Equals(techs[0])
}

// visibleCardCount returns how many cards fit in the viewport
func (v ListView) visibleCardCount() int {
	// header, filter line and confirmation prompt
	available := (v.height - 5) / cardHeight
	if available < 1 {
		available = 1
	}
	return available
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (v *ListView) ensureCursorVisible() {
	visible := v.visibleCardCount()

	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}

	maxOffset := len(v.visible) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.scrollOffset > maxOffset {
		v.scrollOffset = maxOffset
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// View renders the list view
func (v ListView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	b.WriteString(styles.Title.Render("Project Portfolio"))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(fmt.Sprintf("%d of %d projects", len(v.visible), len(v.projects))))
	b.WriteString("\n")

	if v.mode == ListModeSearch {
		searchStyle := lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true)
		b.WriteString(searchStyle.Render("/"))
		b.WriteString(v.input.View())
		b.WriteString("\n")
	} else if v.criteria.Active() {
		filterStyle := lipgloss.NewStyle().
			Foreground(t.Info).
			Italic(true)
		b.WriteString(filterStyle.Render(v.criteria.Describe()))
		b.WriteString(styles.Label.Render(" (c to clear)"))
		b.WriteString("\n")
	}

	if v.mode == ListModeConfirmDelete {
		prompt := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		b.WriteString(prompt.Render(fmt.Sprintf("Delete %q? (y/n)", v.deleteTitle)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(v.visible) == 0 {
		b.WriteString(v.renderEmpty())
		return b.String()
	}

	end := v.scrollOffset + v.visibleCardCount()
	if end > len(v.visible) {
		end = len(v.visible)
	}
	cards := make([]string, 0, end-v.scrollOffset)
	for i := v.scrollOffset; i < end; i++ {
		cards = append(cards, v.renderCard(v.visible[i], i == v.cursor))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))

	if end < len(v.visible) {
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(fmt.Sprintf("  ... %d more", len(v.visible)-end)))
	}

	return b.String()
}

func (v ListView) renderEmpty() string {
	styles := theme.Current.Styles

	title, hint := "No projects match your filters", "Try adjusting your search or filter criteria"
	if len(v.projects) == 0 {
		title, hint = "No projects yet", "Create your first project to get started"
	}
	return styles.CardTitle.Render("  "+title) + "\n" + styles.Label.Render("  "+hint)
}

func (v ListView) renderCard(p model.Project, isCursor bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	style := styles.Card
	if isCursor {
		style = styles.CardSelected
	}
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	inner := width - 4

	title := styles.Badge(t, p.Status) + " " + styles.CardTitle.Render(truncate(p.Title, inner-14))
	desc := styles.CardMeta.Render(truncate(p.Description, inner))
	members := styles.Label.Render("Team: ") + truncate(strings.Join(p.Members, ", "), inner-6)

	var techs []string
	for _, tech := range p.TechStack {
		techs = append(techs, styles.Tag.Render(tech))
	}
	tech := strings.Join(techs, "")

	dates := model.FormatDate(p.StartDate)
	if p.EndDate != nil {
		dates += " → " + model.FormatDate(*p.EndDate)
	}
	footer := lipgloss.JoinHorizontal(lipgloss.Top, tech, styles.Date.Render(dates))

	return style.Width(width).Render(strings.Join([]string{title, desc, members, footer}, "\n"))
}

// truncate shortens s to n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
