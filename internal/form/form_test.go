package form

import (
	"errors"
	"testing"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	f := New()
	f.Title = "  Alpha "
	f.Description = "Course planner"
	f.Members = []string{"Amy", "  ", "Bo "}
	f.TechStack = []string{"", "React"}
	f.Status = model.StatusInProgress
	f.StartDate = "2024-01-10"
	f.EndDate = "2024-06-30"
	return f
}

func TestNewForm(t *testing.T) {
	f := New()
	assert.Equal(t, []string{""}, f.Members)
	assert.Equal(t, []string{""}, f.TechStack)
	assert.Equal(t, model.StatusPlanning, f.Status)
}

func TestValidateProducesDraft(t *testing.T) {
	draft, errs := validForm().Validate()
	require.Nil(t, errs)

	assert.Equal(t, "Alpha", draft.Title)
	assert.Equal(t, "Course planner", draft.Description)
	assert.Equal(t, []string{"Amy", "Bo"}, draft.Members)
	assert.Equal(t, []string{"React"}, draft.TechStack)
	assert.Equal(t, model.StatusInProgress, draft.Status)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), draft.StartDate)
	require.NotNil(t, draft.EndDate)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *draft.EndDate)
}

func TestValidateEmptyEndDate(t *testing.T) {
	f := validForm()
	f.EndDate = "  "
	draft, errs := f.Validate()
	require.Nil(t, errs)
	assert.Nil(t, draft.EndDate)
}

func TestValidateSameDayEnd(t *testing.T) {
	f := validForm()
	f.EndDate = f.StartDate
	_, errs := f.Validate()
	assert.Nil(t, errs)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Form)
		field  string
		msg    string
	}{
		{"missing title", func(f *Form) { f.Title = "   " }, FieldTitle, "Project title is required"},
		{"missing description", func(f *Form) { f.Description = "" }, FieldDescription, "Project description is required"},
		{"blank members", func(f *Form) { f.Members = []string{"", " "} }, FieldMembers, "At least one team member is required"},
		{"blank techs", func(f *Form) { f.TechStack = []string{""} }, FieldTechStack, "At least one technology is required"},
		{"missing start", func(f *Form) { f.StartDate = "" }, FieldStartDate, "Start date is required"},
		{"bad start", func(f *Form) { f.StartDate = "10/01/2024" }, FieldStartDate, "Start date must be a date (YYYY-MM-DD)"},
		{"bad end", func(f *Form) { f.EndDate = "soon" }, FieldEndDate, "End date must be a date (YYYY-MM-DD)"},
		{"end before start", func(f *Form) { f.EndDate = "2024-01-09" }, FieldEndDate, "End date must be after start date"},
		{"unknown status", func(f *Form) { f.Status = "shipped" }, FieldStatus, "Status must be planning, in-progress, completed or on-hold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.modify(&f)
			_, errs := f.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	_, errs := New().Validate()

	assert.Len(t, errs, 5)
	assert.Contains(t, errs, FieldTitle)
	assert.Contains(t, errs, FieldDescription)
	assert.Contains(t, errs, FieldMembers)
	assert.Contains(t, errs, FieldTechStack)
	assert.Contains(t, errs, FieldStartDate)

	var err error = errs
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), "Project title is required")
}

func TestListFields(t *testing.T) {
	f := New()

	f.SetField(Members, 0, "Amy")
	f.AddField(Members)
	f.SetField(Members, 1, "Bo")
	f.AddField(Members)
	f.SetField(Members, 2, "Cy")
	assert.Equal(t, []string{"Amy", "Bo", "Cy"}, f.Members)

	f.RemoveField(Members, 1)
	assert.Equal(t, []string{"Amy", "Cy"}, f.Members)

	// Out of range is ignored
	f.RemoveField(Members, 5)
	f.SetField(Members, -1, "x")
	assert.Equal(t, []string{"Amy", "Cy"}, f.Members)

	// The last row stays
	f.RemoveField(TechStack, 0)
	assert.Equal(t, []string{""}, f.TechStack)

	f.AddField(TechStack)
	assert.Len(t, f.List(TechStack), 2)
}

func TestSetFieldDoesNotAlias(t *testing.T) {
	p := model.Project{Members: []string{"Amy"}, TechStack: []string{"Go"}}
	f := FromProject(p)
	f.SetField(Members, 0, "Bo")
	assert.Equal(t, []string{"Amy"}, p.Members)
}

func TestFromProject(t *testing.T) {
	end := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	p := model.Project{
		ID:          "x",
		Title:       "Alpha",
		Description: "Course planner",
		Members:     []string{"Amy"},
		TechStack:   []string{"React", "Go"},
		Status:      model.StatusOnHold,
		StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}

	f := FromProject(p)
	assert.Equal(t, "Alpha", f.Title)
	assert.Equal(t, []string{"React", "Go"}, f.TechStack)
	assert.Equal(t, model.StatusOnHold, f.Status)
	assert.Equal(t, "2024-01-10", f.StartDate)
	assert.Equal(t, "2024-05-02", f.EndDate)

	draft, errs := f.Validate()
	require.Nil(t, errs)
	assert.Equal(t, p.Draft(), draft)

	empty := FromProject(model.Project{})
	assert.Equal(t, []string{""}, empty.Members)
	assert.Empty(t, empty.EndDate)
}
