package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/folio/internal/form"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/ui/theme"
)

// SubmitFormRequest is sent when the user submits the form
type SubmitFormRequest struct {
	Form form.Form
}

// CancelFormRequest is sent when the user leaves the form without saving
type CancelFormRequest struct{}

// slot is one focusable position in the form. row is only used for the
// member and technology lists.
type slot struct {
	field string
	row   int
}

// FormView edits a project form
type FormView struct {
	width  int
	height int

	editing bool
	form    form.Form
	errors  form.FieldErrors

	title       textinput.Model
	description textinput.Model
	startDate   textinput.Model
	endDate     textinput.Model
	members     []textinput.Model
	techs       []textinput.Model

	focus int
}

// NewFormView creates a form view for a new project
func NewFormView() FormView {
	return FormView{}.Load(form.New(), false)
}

// newInput builds a text input. A limit of 0 leaves the length unbounded.
func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetValue(value)
	return ti
}

// Load fills the view from a form. editing selects the edit wording.
func (v FormView) Load(f form.Form, editing bool) FormView {
	v.form = f
	v.editing = editing
	v.errors = nil
	v.focus = 0

	v.title = newInput("Enter project title", f.Title, 0)
	v.description = newInput("Describe your project in detail...", f.Description, 0)
	v.startDate = newInput(model.DateLayout, f.StartDate, 10)
	v.endDate = newInput(model.DateLayout+" (optional)", f.EndDate, 10)
	v.rebuildRows()
	v.setWidths()
	v.applyFocus()
	return v
}

func (v *FormView) rebuildRows() {
	v.members = v.members[:0:0]
	for _, m := range v.form.Members {
		v.members = append(v.members, newInput("Enter team member name", m, 0))
	}
	v.techs = v.techs[:0:0]
	for _, t := range v.form.TechStack {
		v.techs = append(v.techs, newInput("Enter technology name", t, 0))
	}
}

// Init initializes the form view
func (v FormView) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v FormView) SetSize(width, height int) FormView {
	v.width = width
	v.height = height
	v.setWidths()
	return v
}

func (v *FormView) setWidths() {
	w := v.width - 8
	if w < 20 {
		w = 20
	}
	v.title.Width = w
	v.description.Width = w
	for i := range v.members {
		v.members[i].Width = w
	}
	for i := range v.techs {
		v.techs[i].Width = w
	}
}

// IsInputMode is always true; every printable key belongs to a field
func (v FormView) IsInputMode() bool {
	return true
}

// Editing reports whether the form edits an existing project
func (v FormView) Editing() bool {
	return v.editing
}

// Form returns the current field values
func (v FormView) Form() form.Form {
	return v.form
}

// SetErrors shows validation messages under their fields
func (v FormView) SetErrors(errs form.FieldErrors) FormView {
	v.errors = errs
	return v
}

// Errors returns the messages currently shown
func (v FormView) Errors() form.FieldErrors {
	return v.errors
}

func (v FormView) slots() []slot {
	s := []slot{
		{field: form.FieldTitle},
		{field: form.FieldDescription},
		{field: form.FieldStatus},
		{field: form.FieldStartDate},
		{field: form.FieldEndDate},
	}
	for i := range v.members {
		s = append(s, slot{field: form.FieldMembers, row: i})
	}
	for i := range v.techs {
		s = append(s, slot{field: form.FieldTechStack, row: i})
	}
	return s
}

func (v FormView) current() slot {
	s := v.slots()
	if v.focus < 0 || v.focus >= len(s) {
		return s[0]
	}
	return s[v.focus]
}

// input returns the text input behind a slot, or nil for the status selector
func (v *FormView) input(s slot) *textinput.Model {
	switch s.field {
	case form.FieldTitle:
		return &v.title
	case form.FieldDescription:
		return &v.description
	case form.FieldStartDate:
		return &v.startDate
	case form.FieldEndDate:
		return &v.endDate
	case form.FieldMembers:
		if s.row < len(v.members) {
			return &v.members[s.row]
		}
	case form.FieldTechStack:
		if s.row < len(v.techs) {
			return &v.techs[s.row]
		}
	}
	return nil
}

func (v *FormView) applyFocus() {
	cur := v.current()
	for _, s := range v.slots() {
		in := v.input(s)
		if in == nil {
			continue
		}
		if s == cur {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// sync copies one input's value into the form. Only edited slots are
// copied; the inputs flatten newlines, so untouched fields keep the
// values they were loaded with.
func (v *FormView) sync(s slot) {
	in := v.input(s)
	if in == nil {
		return
	}
	switch s.field {
	case form.FieldTitle:
		v.form.Title = in.Value()
	case form.FieldDescription:
		v.form.Description = in.Value()
	case form.FieldStartDate:
		v.form.StartDate = in.Value()
	case form.FieldEndDate:
		v.form.EndDate = in.Value()
	case form.FieldMembers:
		v.form.SetField(form.Members, s.row, in.Value())
	case form.FieldTechStack:
		v.form.SetField(form.TechStack, s.row, in.Value())
	}
}

func listKind(field string) (form.ListKind, bool) {
	switch field {
	case form.FieldMembers:
		return form.Members, true
	case form.FieldTechStack:
		return form.TechStack, true
	}
	return 0, false
}

// focusSlot moves focus to the given slot if it exists
func (v *FormView) focusSlot(target slot) {
	for i, s := range v.slots() {
		if s == target {
			v.focus = i
			break
		}
	}
	v.applyFocus()
}

func (v FormView) cycleStatus(delta int) FormView {
	statuses := model.Statuses()
	idx := 0
	for i, s := range statuses {
		if s == v.form.Status {
			idx = i
		}
	}
	idx = (idx + delta + len(statuses)) % len(statuses)
	v.form.Status = statuses[idx]
	return v
}

// Update handles messages for the form view
func (v FormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	cur := v.current()
	switch keyMsg.String() {
	case "esc":
		return v, func() tea.Msg { return CancelFormRequest{} }

	case "ctrl+s":
		f := v.form
		return v, func() tea.Msg { return SubmitFormRequest{Form: f} }

	case "tab", "down":
		v.focus = (v.focus + 1) % len(v.slots())
		v.applyFocus()
		return v, nil

	case "shift+tab", "up":
		n := len(v.slots())
		v.focus = (v.focus - 1 + n) % n
		v.applyFocus()
		return v, nil

	case "enter":
		// enter in a list row adds the next row
		if _, isList := listKind(cur.field); !isList {
			v.focus = (v.focus + 1) % len(v.slots())
			v.applyFocus()
			return v, nil
		}
		fallthrough

	case "ctrl+n":
		kind, isList := listKind(cur.field)
		if !isList {
			return v, nil
		}
		v.form.AddField(kind)
		v.rebuildRows()
		v.setWidths()
		v.focusSlot(slot{field: cur.field, row: len(v.form.List(kind)) - 1})
		return v, nil

	case "ctrl+x":
		kind, isList := listKind(cur.field)
		if !isList {
			return v, nil
		}
		v.form.RemoveField(kind, cur.row)
		v.rebuildRows()
		v.setWidths()
		row := cur.row
		if row >= len(v.form.List(kind)) {
			row = len(v.form.List(kind)) - 1
		}
		v.focusSlot(slot{field: cur.field, row: row})
		return v, nil
	}

	if cur.field == form.FieldStatus {
		switch keyMsg.String() {
		case "left", "h":
			v = v.cycleStatus(-1)
		case "right", "l", " ":
			v = v.cycleStatus(1)
		}
		return v, nil
	}

	in := v.input(cur)
	if in == nil {
		return v, nil
	}
	var cmd tea.Cmd
	before := in.Value()
	*in, cmd = in.Update(keyMsg)
	if in.Value() != before {
		v.sync(cur)
	}
	return v, cmd
}

// View renders the form
func (v FormView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	heading, sub, action := "Add New Project", "Create a comprehensive project profile", "Create Project"
	if v.editing {
		heading, sub, action = "Edit Project", "Update your project details", "Update Project"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(heading))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(sub))
	b.WriteString("\n\n")

	cur := v.current()
	field := func(label string, s slot, body string) {
		ls := styles.Label
		if s == cur {
			ls = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
		}
		if label != "" {
			b.WriteString(ls.Render(label))
			b.WriteString("\n")
		}
		if s == cur {
			b.WriteString(ls.Render("› "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	errLine := func(name string) {
		if msg, ok := v.errors[name]; ok {
			b.WriteString(styles.Error.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	field("Project Title *", slot{field: form.FieldTitle}, v.title.View())
	errLine(form.FieldTitle)

	field("Description *", slot{field: form.FieldDescription}, v.description.View())
	errLine(form.FieldDescription)

	var opts []string
	for _, s := range model.Statuses() {
		if s == v.form.Status {
			opts = append(opts, styles.Badge(t, s))
		} else {
			opts = append(opts, styles.Label.Render(" "+s.Label()+" "))
		}
	}
	field("Status (←/→)", slot{field: form.FieldStatus}, strings.Join(opts, " "))
	errLine(form.FieldStatus)

	field("Start Date *", slot{field: form.FieldStartDate}, v.startDate.View())
	errLine(form.FieldStartDate)

	field("End Date", slot{field: form.FieldEndDate}, v.endDate.View())
	errLine(form.FieldEndDate)

	b.WriteString("\n")
	for i, in := range v.members {
		label := ""
		if i == 0 {
			label = "Team Members *"
		}
		field(label, slot{field: form.FieldMembers, row: i}, fmt.Sprintf("%d. %s", i+1, in.View()))
	}
	errLine(form.FieldMembers)

	for i, in := range v.techs {
		label := ""
		if i == 0 {
			label = "Technology Stack *"
		}
		field(label, slot{field: form.FieldTechStack, row: i}, fmt.Sprintf("%d. %s", i+1, in.View()))
	}
	errLine(form.FieldTechStack)

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("ctrl+s") + styles.HelpDesc.Render(" "+action))

	return b.String()
}
