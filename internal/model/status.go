package model

import (
	"errors"
)

// Status represents the lifecycle stage of a project
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

// ErrInvalidStatus is returned for a status outside the fixed set
var ErrInvalidStatus = errors.New("invalid status")

// Statuses returns every status in display order
func Statuses() []Status {
	return []Status{
		StatusPlanning,
		StatusInProgress,
		StatusCompleted,
		StatusOnHold,
	}
}

// Valid returns true if the status is one of the known values
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Label returns the human-readable name for a status
func (s Status) Label() string {
	switch s {
	case StatusPlanning:
		return "Planning"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	default:
		return "Unknown"
	}
}

// ParseStatus converts a string into a Status
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Stats holds project counts by status
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Planning   int `json:"planning"`
	OnHold     int `json:"on_hold"`
}
