// Package store owns the canonical collection of projects.
package store

import (
	"errors"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no project has the requested ID
var ErrNotFound = errors.New("project not found")

// Store is implemented by every project backend. List returns projects in
// insertion order; the returned slice belongs to the caller.
type Store interface {
	Create(draft model.Draft) (model.Project, error)
	Update(id string, draft model.Draft) (model.Project, error)
	Delete(id string) error
	Get(id string) (model.Project, error)
	List() ([]model.Project, error)
}

// Options holds settings shared by store backends
type Options struct {
	Now   func() time.Time
	NewID func() string
}

// Option configures a store backend
type Option func(*Options)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithIDGenerator overrides how project IDs are generated
func WithIDGenerator(newID func() string) Option {
	return func(o *Options) {
		o.NewID = newID
	}
}

// BuildOptions applies opts over the defaults
func BuildOptions(opts ...Option) Options {
	o := Options{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NextUpdate returns the UpdatedAt for a new version of a record last
// updated at prev. The result is always strictly after prev.
func NextUpdate(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
