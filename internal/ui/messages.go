package ui

import (
	"github.com/dori/folio/internal/model"
)

// Messages for inter-component communication

// ProjectsLoadedMsg carries a fresh snapshot of the store
type ProjectsLoadedMsg struct {
	Projects []model.Project
	Err      error
}
