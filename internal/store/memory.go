package store

import (
	"sync"

	"github.com/dori/folio/internal/model"
)

// MemStore keeps projects in a slice in insertion order
type MemStore struct {
	mu       sync.RWMutex
	projects []model.Project
	opts     Options
}

// NewMemStore creates an empty in-memory store
func NewMemStore(opts ...Option) *MemStore {
	return &MemStore{opts: BuildOptions(opts...)}
}

// Create appends a new project built from the draft
func (s *MemStore) Create(draft model.Draft) (model.Project, error) {
	now := s.opts.Now()
	p := fromDraft(draft)
	p.ID = s.opts.NewID()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	s.projects = append(s.projects, p)
	s.mu.Unlock()

	return p.Clone(), nil
}

// Update replaces every editable field of the project with the draft
func (s *MemStore) Update(id string, draft model.Draft) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Project{}, ErrNotFound
	}

	old := s.projects[i]
	p := fromDraft(draft)
	p.ID = old.ID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = NextUpdate(old.UpdatedAt, s.opts.Now())
	s.projects[i] = p

	return p.Clone(), nil
}

// Delete removes the project; a missing ID is not an error
func (s *MemStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
	return nil
}

// Get returns a single project by ID
func (s *MemStore) Get(id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Project{}, ErrNotFound
	}
	return s.projects[i].Clone(), nil
}

// List returns a snapshot of all projects
func (s *MemStore) List() ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

// Len returns the number of stored projects
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *MemStore) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func fromDraft(d model.Draft) model.Project {
	return model.Project{
		Title:       d.Title,
		Description: d.Description,
		Members:     d.Members,
		TechStack:   d.TechStack,
		Status:      d.Status,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
	}.Clone()
}
