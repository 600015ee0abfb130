package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardFigures(t *testing.T) {
	v := NewDashboardView().SetSize(120, 40).SetProjects(testProjects())

	s := v.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 33, s.CompletionRate())

	out := v.View()
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "Total Projects")
	assert.Contains(t, out, "Recent Activity")
	assert.Contains(t, out, "1 (33%)")
}

func TestDashboardEmpty(t *testing.T) {
	v := NewDashboardView().SetSize(120, 40).SetProjects(nil)

	assert.Equal(t, 0, v.Summary().CompletionRate())
	out := v.View()
	assert.Contains(t, out, "No projects yet")
	assert.Contains(t, out, "0 (0%)")
}
