// Package form holds the editable field set for creating and editing a
// project, and validates it into a draft.
package form

import (
	"sort"
	"strings"

	"github.com/dori/folio/internal/model"
)

// Field names used as FieldErrors keys
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMembers     = "members"
	FieldTechStack   = "techStack"
	FieldStatus      = "status"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
)

// ListKind selects one of the form's repeatable fields
type ListKind int

const (
	Members ListKind = iota
	TechStack
)

// FieldErrors maps a field name to its validation message
type FieldErrors map[string]string

// Error implements error
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return strings.Join(msgs, "; ")
}

// Form is the content of the project form. Dates are kept as text so a
// partially typed value survives until it is validated.
type Form struct {
	Title       string
	Description string
	Members     []string
	TechStack   []string
	Status      model.Status
	StartDate   string
	EndDate     string
}

// New returns an empty form with one blank member and technology row
func New() Form {
	return Form{
		Members:   []string{""},
		TechStack: []string{""},
		Status:    model.StatusPlanning,
	}
}

// FromProject returns a form prefilled with the project's values
func FromProject(p model.Project) Form {
	f := Form{
		Title:       p.Title,
		Description: p.Description,
		Members:     append([]string(nil), p.Members...),
		TechStack:   append([]string(nil), p.TechStack...),
		Status:      p.Status,
		StartDate:   model.FormatDate(p.StartDate),
	}
	if p.EndDate != nil {
		f.EndDate = model.FormatDate(*p.EndDate)
	}
	if len(f.Members) == 0 {
		f.Members = []string{""}
	}
	if len(f.TechStack) == 0 {
		f.TechStack = []string{""}
	}
	return f
}

// List returns the rows of a repeatable field
func (f Form) List(kind ListKind) []string {
	if kind == TechStack {
		return f.TechStack
	}
	return f.Members
}

// AddField appends a blank row to a repeatable field
func (f *Form) AddField(kind ListKind) {
	f.setList(kind, append(f.List(kind), ""))
}

// RemoveField removes row i. The last remaining row is never removed.
func (f *Form) RemoveField(kind ListKind, i int) {
	rows := f.List(kind)
	if len(rows) <= 1 || i < 0 || i >= len(rows) {
		return
	}
	out := make([]string, 0, len(rows)-1)
	out = append(out, rows[:i]...)
	out = append(out, rows[i+1:]...)
	f.setList(kind, out)
}

// SetField replaces the value of row i
func (f *Form) SetField(kind ListKind, i int, value string) {
	rows := f.List(kind)
	if i < 0 || i >= len(rows) {
		return
	}
	out := append([]string(nil), rows...)
	out[i] = value
	f.setList(kind, out)
}

func (f *Form) setList(kind ListKind, rows []string) {
	if kind == TechStack {
		f.TechStack = rows
		return
	}
	f.Members = rows
}

// Validate checks every field and returns the draft to save. Blank member
// and technology rows are dropped; all values are trimmed.
func (f Form) Validate() (model.Draft, FieldErrors) {
	errs := FieldErrors{}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs[FieldTitle] = "Project title is required"
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		errs[FieldDescription] = "Project description is required"
	}

	members := nonBlank(f.Members)
	if len(members) == 0 {
		errs[FieldMembers] = "At least one team member is required"
	}

	techs := nonBlank(f.TechStack)
	if len(techs) == 0 {
		errs[FieldTechStack] = "At least one technology is required"
	}

	status := f.Status
	if status == "" {
		status = model.StatusPlanning
	}
	if !status.Valid() {
		errs[FieldStatus] = "Status must be planning, in-progress, completed or on-hold"
	}

	draft := model.Draft{
		Title:       title,
		Description: description,
		Members:     members,
		TechStack:   techs,
		Status:      status,
	}

	startText := strings.TrimSpace(f.StartDate)
	startOK := false
	if startText == "" {
		errs[FieldStartDate] = "Start date is required"
	} else if start, err := model.ParseDate(startText); err != nil {
		errs[FieldStartDate] = "Start date must be a date (YYYY-MM-DD)"
	} else {
		draft.StartDate = start
		startOK = true
	}

	if endText := strings.TrimSpace(f.EndDate); endText != "" {
		end, err := model.ParseDate(endText)
		switch {
		case err != nil:
			errs[FieldEndDate] = "End date must be a date (YYYY-MM-DD)"
		case startOK && end.Before(draft.StartDate):
			errs[FieldEndDate] = "End date must be after start date"
		default:
			draft.EndDate = &end
		}
	}

	if len(errs) > 0 {
		return model.Draft{}, errs
	}
	return draft, nil
}

func nonBlank(rows []string) []string {
	var out []string
	for _, r := range rows {
		if v := strings.TrimSpace(r); v != "" {
			out = append(out, v)
		}
	}
	return out
}
