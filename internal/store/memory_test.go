package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a fixed time that only moves when told to
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func testDraft(title string) model.Draft {
	return model.Draft{
		Title:       title,
		Description: title + " description",
		Members:     []string{"Amy"},
		TechStack:   []string{"Go"},
		Status:      model.StatusPlanning,
		StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemStoreCreateAssignsIdentity(t *testing.T) {
	clock := newFakeClock()
	s := NewMemStore(WithClock(clock.Now))

	a, err := s.Create(testDraft("Alpha"))
	require.NoError(t, err)
	b, err := s.Create(testDraft("Beta"))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, clock.Now(), a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Title)
	assert.Equal(t, "Beta", list[1].Title)
}

func TestMemStoreCreateUsesIDGenerator(t *testing.T) {
	n := 0
	s := NewMemStore(WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}))

	p, err := s.Create(testDraft("Alpha"))
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
}

func TestMemStoreUpdatePreservesIdentity(t *testing.T) {
	clock := newFakeClock()
	s := NewMemStore(WithClock(clock.Now))

	orig, err := s.Create(testDraft("Alpha"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	draft := testDraft("Alpha v2")
	draft.Status = model.StatusInProgress
	draft.Members = []string{"Bo", "Cy"}

	updated, err := s.Update(orig.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))
	assert.Equal(t, "Alpha v2", updated.Title)
	assert.Equal(t, []string{"Bo", "Cy"}, updated.Members)
	assert.Equal(t, model.StatusInProgress, updated.Status)
}

func TestMemStoreUpdateAdvancesWithStoppedClock(t *testing.T) {
	clock := newFakeClock()
	s := NewMemStore(WithClock(clock.Now))

	orig, err := s.Create(testDraft("Alpha"))
	require.NoError(t, err)

	first, err := s.Update(orig.ID, testDraft("Alpha"))
	require.NoError(t, err)
	second, err := s.Update(orig.ID, testDraft("Alpha"))
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(orig.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestMemStoreUpdateReplacesWholesale(t *testing.T) {
	s := NewMemStore()

	draft := testDraft("Alpha")
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	draft.EndDate = &end
	orig, err := s.Create(draft)
	require.NoError(t, err)

	updated, err := s.Update(orig.ID, testDraft("Alpha"))
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
}

func TestMemStoreUpdateNotFound(t *testing.T) {
	s := NewMemStore()
	_, err := s.Create(testDraft("Alpha"))
	require.NoError(t, err)

	_, err = s.Update("missing", testDraft("Beta"))
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alpha", list[0].Title)
}

func TestMemStoreDelete(t *testing.T) {
	s := NewMemStore()
	a, _ := s.Create(testDraft("Alpha"))
	b, _ := s.Create(testDraft("Beta"))
	c, _ := s.Create(testDraft("Gamma"))

	require.NoError(t, s.Delete(b.ID))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	_, err = s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreDeleteMissingIsNoop(t *testing.T) {
	s := NewMemStore()
	_, _ = s.Create(testDraft("Alpha"))
	before, _ := s.List()

	require.NoError(t, s.Delete("missing"))
	require.NoError(t, s.Delete("missing"))

	after, _ := s.List()
	assert.Equal(t, before, after)
}

func TestMemStoreListIsSnapshot(t *testing.T) {
	s := NewMemStore()
	p, _ := s.Create(testDraft("Alpha"))

	list, _ := s.List()
	list[0].Title = "mutated"
	list[0].Members[0] = "mutated"

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title)
	assert.Equal(t, []string{"Amy"}, got.Members)
}

func TestMemStoreDraftNotAliased(t *testing.T) {
	s := NewMemStore()
	draft := testDraft("Alpha")
	p, _ := s.Create(draft)

	draft.Members[0] = "mutated"

	got, _ := s.Get(p.ID)
	assert.Equal(t, []string{"Amy"}, got.Members)
}

func TestNextUpdate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"later", base.Add(time.Second), base.Add(time.Second)},
		{"equal", base, base.Add(time.Nanosecond)},
		{"earlier", base.Add(-time.Hour), base.Add(time.Nanosecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextUpdate(base, tt.now))
		})
	}
}
