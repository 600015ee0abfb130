// Package router tracks which top-level view is active and applies the
// form's create, edit and cancel transitions against the store.
package router

import (
	"fmt"

	"github.com/dori/folio/internal/form"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/store"
	"go.uber.org/zap"
)

// View identifies a top-level view
type View int

const (
	ViewDashboard View = iota
	ViewList
	ViewForm
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewList:
		return "Projects"
	case ViewForm:
		return "Project Form"
	default:
		return "Unknown"
	}
}

// ParseView maps a config or flag value to a view
func ParseView(s string) (View, error) {
	switch s {
	case "dashboard":
		return ViewDashboard, nil
	case "list", "projects":
		return ViewList, nil
	default:
		return 0, fmt.Errorf("unknown view %q", s)
	}
}

// Mode tells whether the form creates a new project or edits one
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// State is the router's current position. EditID is set only when
// View is ViewForm and Mode is ModeEdit.
type State struct {
	View   View
	Mode   Mode
	EditID string
}

// Editing returns the ID of the project being edited, if any
func (s State) Editing() (string, bool) {
	if s.View == ViewForm && s.Mode == ModeEdit {
		return s.EditID, true
	}
	return "", false
}

// CompletedHook is called after an update moves a project to completed
type CompletedHook func(p model.Project)

// Router owns view selection and routes form actions into the store
type Router struct {
	store       store.Store
	logger      *zap.Logger
	state       State
	onCompleted CompletedHook
}

// New creates a router starting on the given view. Only the dashboard and
// list are valid start views.
func New(s store.Store, logger *zap.Logger, start View) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if start == ViewForm {
		start = ViewDashboard
	}
	return &Router{
		store:  s,
		logger: logger.Named("router"),
		state:  State{View: start},
	}
}

// OnCompleted registers a hook fired when an edit completes a project
func (r *Router) OnCompleted(hook CompletedHook) {
	r.onCompleted = hook
}

// State returns the current state
func (r *Router) State() State {
	return r.state
}

// Snapshot returns the store's current projects
func (r *Router) Snapshot() ([]model.Project, error) {
	return r.store.List()
}

// Navigate handles the navigation entries. Dashboard and list drop any
// edit target. Choosing the form from outside it starts a new project;
// from inside it the current mode is kept.
func (r *Router) Navigate(v View) {
	switch v {
	case ViewForm:
		if r.state.View != ViewForm {
			r.state = State{View: ViewForm, Mode: ModeCreate}
		}
	default:
		r.state = State{View: v}
	}
	r.logger.Debug("Navigated", zap.Stringer("view", r.state.View))
}

// Edit opens the form for an existing project, read from the live store
func (r *Router) Edit(id string) (form.Form, error) {
	p, err := r.store.Get(id)
	if err != nil {
		r.logger.Warn("Edit target unavailable", zap.String("id", id), zap.Error(err))
		return form.Form{}, err
	}
	r.state = State{View: ViewForm, Mode: ModeEdit, EditID: id}
	r.logger.Debug("Editing project", zap.String("id", id))
	return form.FromProject(p), nil
}

// Submit validates the form and saves it. Validation failures return
// form.FieldErrors and leave the router on the form.
func (r *Router) Submit(f form.Form) (model.Project, error) {
	if r.state.View != ViewForm {
		return model.Project{}, fmt.Errorf("submit outside the form (view %s)", r.state.View)
	}

	draft, ferrs := f.Validate()
	if ferrs != nil {
		r.logger.Debug("Form rejected", zap.Int("errors", len(ferrs)))
		return model.Project{}, ferrs
	}

	var (
		saved model.Project
		err   error
	)
	if id, ok := r.state.Editing(); ok {
		var before model.Project
		before, err = r.store.Get(id)
		if err == nil {
			saved, err = r.store.Update(id, draft)
		}
		if err == nil && saved.Status == model.StatusCompleted && before.Status != model.StatusCompleted && r.onCompleted != nil {
			r.onCompleted(saved)
		}
	} else {
		saved, err = r.store.Create(draft)
	}
	if err != nil {
		r.logger.Error("Failed to save project", zap.Error(err))
		return model.Project{}, err
	}

	r.logger.Info("Project saved",
		zap.String("id", saved.ID),
		zap.String("title", saved.Title),
		zap.String("status", string(saved.Status)))
	r.state = State{View: ViewList}
	return saved, nil
}

// Cancel leaves the form without saving
func (r *Router) Cancel() {
	r.state = State{View: ViewList}
	r.logger.Debug("Form cancelled")
}

// Delete removes a project. Confirmation is the caller's concern.
func (r *Router) Delete(id string) error {
	if err := r.store.Delete(id); err != nil {
		r.logger.Error("Failed to delete project", zap.String("id", id), zap.Error(err))
		return err
	}
	r.logger.Info("Project deleted", zap.String("id", id))
	return nil
}
