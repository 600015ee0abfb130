package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/stats"
	"github.com/dori/folio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	clock := &Clock{}
	s := store.NewMemStore(store.WithClock(clock.Now))

	n, err := Load(s, clock)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	projects, err := s.List()
	require.NoError(t, err)
	require.Len(t, projects, 5)

	first := projects[0]
	assert.Equal(t, "Smart Campus Navigator", first.Title)
	assert.Equal(t, model.StatusInProgress, first.Status)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.StartDate)
	assert.Equal(t, time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), first.UpdatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	done := projects[1]
	require.NotNil(t, done.EndDate)
	assert.Equal(t, time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), *done.EndDate)

	recent := stats.Recent(projects, stats.RecentLimit)
	require.Len(t, recent, 3)
	assert.Equal(t, "Peer Review Portal", recent[0].Title)
	assert.Equal(t, "Smart Campus Navigator", recent[1].Title)
	assert.Equal(t, "Sustainable Energy Monitor", recent[2].Title)

	// Clock is released after seeding
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Minute)
}

func TestLoadWithoutClock(t *testing.T) {
	s := store.NewMemStore()
	n, err := Load(s, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown status",
			yaml: `
projects:
  - title: A
    description: B
    members: [C]
    tech_stack: [Go]
    status: shipped
    start_date: 2024-01-01
`,
		},
		{
			name: "end before start",
			yaml: `
projects:
  - title: A
    description: B
    members: [C]
    tech_stack: [Go]
    status: planning
    start_date: 2024-02-01
    end_date: 2024-01-01
`,
		},
		{
			name: "missing members",
			yaml: `
projects:
  - title: A
    description: B
    tech_stack: [Go]
    status: planning
    start_date: 2024-02-01
`,
		},
		{
			name: "blank members",
			yaml: `
projects:
  - title: A
    description: B
    members: ["", "  "]
    tech_stack: [Go]
    status: planning
    start_date: 2024-02-01
`,
		},
		{
			name: "blank tech",
			yaml: `
projects:
  - title: A
    description: B
    members: [C]
    tech_stack: [" "]
    status: planning
    start_date: 2024-02-01
`,
		},
		{
			name: "blank title",
			yaml: `
projects:
  - title: "  "
    description: B
    members: [C]
    tech_stack: [Go]
    status: planning
    start_date: 2024-02-01
`,
		},
		{
			name: "missing start",
			yaml: `
projects:
  - title: A
    description: B
    members: [C]
    tech_stack: [Go]
    status: planning
`,
		},
		{
			name: "not yaml",
			yaml: "projects: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseDropsBlankRows(t *testing.T) {
	_, drafts, err := Parse([]byte(`
projects:
  - title: " Alpha "
    description: Course planner
    members: [Amy, "", " Ben "]
    tech_stack: ["", Go]
    status: planning
    start_date: 2024-01-01
`))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Alpha", drafts[0].Title)
	assert.Equal(t, []string{"Amy", "Ben"}, drafts[0].Members)
	assert.Equal(t, []string{"Go"}, drafts[0].TechStack)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
projects:
  - title: Alpha
    description: Course planner
    members: [Amy]
    tech_stack: [React]
    status: planning
    start_date: 2024-01-01
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s := store.NewMemStore()
	n, err := LoadFile(path, s, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), s, nil)
	assert.Error(t, err)
}
