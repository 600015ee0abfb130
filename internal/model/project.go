package model

import (
	"errors"
	"time"
)

// DateLayout is the textual form of a calendar date
const DateLayout = "2006-01-02"

// ErrEndBeforeStart is returned when a project's end date precedes its start date
var ErrEndBeforeStart = errors.New("end date must be after start date")

// Project represents a tracked project in the portfolio
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Members     []string   `json:"members"`
	TechStack   []string   `json:"tech_stack"`
	Status      Status     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Draft is a project without identity or timestamps, used as input
// to create and update
type Draft struct {
	Title       string
	Description string
	Members     []string
	TechStack   []string
	Status      Status
	StartDate   time.Time
	EndDate     *time.Time
}

// Draft returns the editable fields of the project
func (p Project) Draft() Draft {
	return Draft{
		Title:       p.Title,
		Description: p.Description,
		Members:     append([]string(nil), p.Members...),
		TechStack:   append([]string(nil), p.TechStack...),
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     cloneDate(p.EndDate),
	}
}

// Clone returns a deep copy so callers can't reach into store-owned slices
func (p Project) Clone() Project {
	c := p
	c.Members = append([]string(nil), p.Members...)
	c.TechStack = append([]string(nil), p.TechStack...)
	c.EndDate = cloneDate(p.EndDate)
	return c
}

// HasTech returns true if the project uses the given technology
func (p *Project) HasTech(tech string) bool {
	for _, t := range p.TechStack {
		if t == tech {
			return true
		}
	}
	return false
}

// Validate checks the date ordering of a draft.
// Field presence is checked at the form boundary.
func (d Draft) Validate() error {
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
