package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/folio/internal/form"
	"github.com/dori/folio/internal/router"
	"github.com/dori/folio/internal/store"
	"github.com/dori/folio/internal/ui/theme"
	"github.com/dori/folio/internal/ui/views"
	"go.uber.org/zap"
)

// RootModel is the main application model that manages views
type RootModel struct {
	router *router.Router
	logger *zap.Logger
	keys   KeyMap
	help   help.Model
	width  int
	height int

	dashboardView views.DashboardView
	listView      views.ListView
	formView      views.FormView
	helpVisible   bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(r *router.Router, logger *zap.Logger) RootModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := help.New()
	h.ShowAll = false

	return RootModel{
		router:        r,
		logger:        logger.Named("ui"),
		keys:          DefaultKeyMap(),
		help:          h,
		dashboardView: views.NewDashboardView(),
		listView:      views.NewListView(),
		formView:      views.NewFormView(),
	}
}

// Init loads the first snapshot
func (m RootModel) Init() tea.Cmd {
	return m.loadProjects
}

func (m RootModel) loadProjects() tea.Msg {
	projects, err := m.router.Snapshot()
	return ProjectsLoadedMsg{Projects: projects, Err: err}
}

// currentView returns the view the router is on
func (m RootModel) currentView() router.View {
	return m.router.State().View
}

func (m RootModel) isInputMode() bool {
	switch m.currentView() {
	case router.ViewList:
		return m.listView.IsInputMode()
	case router.ViewForm:
		return m.formView.IsInputMode()
	default:
		return m.dashboardView.IsInputMode()
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (2 lines) and footer (2 lines)
		contentHeight := m.height - 4
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.listView = m.listView.SetSize(m.width, contentHeight)
		m.formView = m.formView.SetSize(m.width, contentHeight)
		return m, nil

	case ProjectsLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.logger.Error("Failed to load projects", zap.Error(msg.Err))
			return m, nil
		}
		m.dashboardView = m.dashboardView.SetProjects(msg.Projects)
		m.listView = m.listView.SetProjects(msg.Projects)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if m.helpVisible {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.helpVisible = false
				m.help.ShowAll = false
			}
			return m, nil
		}

		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			m.help.ShowAll = true
			return m, nil

		case key.Matches(msg, m.keys.DashboardView):
			m.router.Navigate(router.ViewDashboard)
			return m, m.loadProjects
		case key.Matches(msg, m.keys.ProjectsView):
			m.router.Navigate(router.ViewList)
			return m, m.loadProjects
		case key.Matches(msg, m.keys.AddProject):
			return m.openForm()
		}

	case views.EditProjectRequest:
		f, err := m.router.Edit(msg.ID)
		if err != nil {
			m.errorMsg = fmt.Sprintf("Cannot edit project: %v", err)
			return m, m.loadProjects
		}
		m.formView = m.formView.Load(f, true)
		return m, m.formView.Init()

	case views.DeleteProjectRequest:
		if err := m.router.Delete(msg.ID); err != nil {
			m.errorMsg = fmt.Sprintf("Delete failed: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Deleted %q", msg.Title)
		}
		return m, m.loadProjects

	case views.SubmitFormRequest:
		return m.submit(msg.Form)

	case views.CancelFormRequest:
		m.router.Cancel()
		return m, m.loadProjects
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch m.currentView() {
	case router.ViewDashboard:
		var model tea.Model
		model, cmd = m.dashboardView.Update(msg)
		m.dashboardView = model.(views.DashboardView)
	case router.ViewList:
		var model tea.Model
		model, cmd = m.listView.Update(msg)
		m.listView = model.(views.ListView)
	case router.ViewForm:
		var model tea.Model
		model, cmd = m.formView.Update(msg)
		m.formView = model.(views.FormView)
	}
	return m, cmd
}

// openForm enters the form. A fresh form is only started when coming from
// another view.
func (m RootModel) openForm() (tea.Model, tea.Cmd) {
	wasForm := m.currentView() == router.ViewForm
	m.router.Navigate(router.ViewForm)
	if !wasForm {
		m.formView = m.formView.Load(form.New(), false)
	}
	return m, m.formView.Init()
}

func (m RootModel) submit(f form.Form) (tea.Model, tea.Cmd) {
	_, editing := m.router.State().Editing()

	saved, err := m.router.Submit(f)
	if err != nil {
		var ferrs form.FieldErrors
		switch {
		case errors.As(err, &ferrs):
			m.formView = m.formView.SetErrors(ferrs)
			m.errorMsg = "Please fix the highlighted fields"
			return m, nil
		case errors.Is(err, store.ErrNotFound):
			// the project went away while it was being edited
			m.router.Cancel()
			m.errorMsg = "Project no longer exists"
			return m, m.loadProjects
		default:
			m.errorMsg = fmt.Sprintf("Save failed: %v", err)
			return m, nil
		}
	}

	if editing {
		m.statusMsg = fmt.Sprintf("Updated %q", saved.Title)
	} else {
		m.statusMsg = fmt.Sprintf("Created %q", saved.Title)
	}
	m.formView = m.formView.Load(form.New(), false)
	return m, m.loadProjects
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	// Reserve: 1 line for header + 2 lines for footer
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView() {
		case router.ViewDashboard:
			content = m.dashboardView.View()
		case router.ViewList:
			content = m.listView.View()
		case router.ViewForm:
			content = m.formView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the title, navigation tabs and theme
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("folio")

	current := m.currentView()
	formLabel := "Add Project"
	if _, editing := m.router.State().Editing(); editing {
		formLabel = "Edit Project"
	}
	tab := func(k string, label string, v router.View) string {
		if v == current {
			return styles.TabActive.Render(k + " " + label)
		}
		return styles.Tab.Render(k + " " + label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Center,
		tab("1", router.ViewDashboard.String(), router.ViewDashboard),
		tab("2", router.ViewList.String(), router.ViewList),
		tab("3", formLabel, router.ViewForm),
	)

	themeIndicator := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1).
		Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, tabs)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and context-aware key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView() {
	case router.ViewList:
		switch m.listView.Mode() {
		case views.ListModeSearch:
			line1 = key("enter", "apply") + sep + key("esc", "cancel")
		case views.ListModeConfirmDelete:
			line1 = key("y", "delete") + sep + key("n/esc", "keep")
		default:
			line1 = key("j/k", "move") + sep +
				key("enter/e", "edit") + sep +
				key("d", "delete") + sep +
				key("/", "search") + sep +
				key("s", "status") + sep +
				key("t", "tech") + sep +
				key("c", "clear")
			line2 = key("1-3", "views") + sep +
				key("a", "add") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help") + sep +
				key("q", "quit")
		}

	case router.ViewForm:
		line1 = key("tab/shift+tab", "field") + sep +
			key("←/→", "status") + sep +
			key("ctrl+n", "add row") + sep +
			key("ctrl+x", "remove row")
		line2 = key("ctrl+s", "save") + sep +
			key("esc", "cancel") + sep +
			key("ctrl+t", "theme")

	default:
		line1 = key("1-3", "views") + sep +
			key("a", "add project") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help") + sep +
			key("q", "quit")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(titleStyle.Render("folio Help"))
	b.WriteString("\n\n")

	section := func(name string, keys [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range keys {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Views", [][]string{
		{"1", "Dashboard"},
		{"2", "Projects"},
		{"3 / a", "Add project"},
	})
	section("Projects", [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"enter / e", "Edit project"},
		{"d", "Delete project (asks y/n)"},
		{"/", "Search title, description and team"},
		{"s", "Cycle status filter"},
		{"t", "Cycle technology filter"},
		{"c", "Clear filters"},
	})
	section("Form", [][]string{
		{"tab / shift+tab", "Next/previous field"},
		{"← / →", "Change status"},
		{"ctrl+n", "Add member or technology row"},
		{"ctrl+x", "Remove focused row"},
		{"ctrl+s", "Save"},
		{"esc", "Cancel"},
	})
	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	next := theme.Next(theme.Current.Theme.Name)
	theme.SetTheme(next)
	m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
}
