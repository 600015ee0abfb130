// Package filter narrows a project snapshot by search text, status and
// technology. Each dimension is either unconstrained or carries a value;
// the three are combined with AND.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dori/folio/internal/model"
)

// Match constrains a dimension to an exact value, or not at all
type Match[T comparable] struct {
	value  T
	active bool
}

// Any returns a match that accepts every value
func Any[T comparable]() Match[T] {
	return Match[T]{}
}

// Equals returns a match that accepts only v
func Equals[T comparable](v T) Match[T] {
	return Match[T]{value: v, active: true}
}

// Value returns the constrained value and whether a constraint is set
func (m Match[T]) Value() (T, bool) {
	return m.value, m.active
}

// Matches reports whether v satisfies the constraint
func (m Match[T]) Matches(v T) bool {
	return !m.active || m.value == v
}

// Text constrains a dimension to values containing a substring,
// ignoring case
type Text struct {
	needle string
	active bool
}

// AnyText returns a text constraint that accepts everything
func AnyText() Text {
	return Text{}
}

// Contains returns a text constraint on the given substring.
// An empty substring matches everything.
func Contains(substr string) Text {
	return Text{needle: substr, active: true}
}

// Value returns the substring as given and whether a constraint is set
func (t Text) Value() (string, bool) {
	return t.needle, t.active
}

// Matches reports whether any of the fields contains the substring
func (t Text) Matches(fields ...string) bool {
	if !t.active || t.needle == "" {
		return true
	}
	needle := strings.ToLower(t.needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Criteria holds one constraint per filter dimension
type Criteria struct {
	Search Text
	Status Match[model.Status]
	Tech   Match[string]
}

// None returns criteria that accept every project
func None() Criteria {
	return Criteria{
		Search: AnyText(),
		Status: Any[model.Status](),
		Tech:   Any[string](),
	}
}

// Matches reports whether a project satisfies all three constraints
func (c Criteria) Matches(p model.Project) bool {
	if !c.Status.Matches(p.Status) {
		return false
	}
	if tech, ok := c.Tech.Value(); ok && !p.HasTech(tech) {
		return false
	}
	fields := make([]string, 0, 2+len(p.Members))
	fields = append(fields, p.Title, p.Description)
	fields = append(fields, p.Members...)
	return c.Search.Matches(fields...)
}

// Active returns true if any dimension narrows the result
func (c Criteria) Active() bool {
	needle, searching := c.Search.Value()
	_, byStatus := c.Status.Value()
	_, byTech := c.Tech.Value()
	return (searching && needle != "") || byStatus || byTech
}

// Describe returns a short summary of the active constraints
func (c Criteria) Describe() string {
	var parts []string
	if needle, ok := c.Search.Value(); ok && needle != "" {
		parts = append(parts, fmt.Sprintf("Text: %s", needle))
	}
	if st, ok := c.Status.Value(); ok {
		parts = append(parts, fmt.Sprintf("Status: %s", st.Label()))
	}
	if tech, ok := c.Tech.Value(); ok {
		parts = append(parts, fmt.Sprintf("Tech: %s", tech))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filters: " + strings.Join(parts, " | ")
}

// Apply returns the projects matching the criteria, in snapshot order
func Apply(projects []model.Project, c Criteria) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// AvailableTechs returns the sorted set of technologies used across the
// whole snapshot
func AvailableTechs(projects []model.Project) []string {
	seen := make(map[string]bool)
	var techs []string
	for _, p := range projects {
		for _, t := range p.TechStack {
			if !seen[t] {
				seen[t] = true
				techs = append(techs, t)
			}
		}
	}
	sort.Strings(techs)
	return techs
}
