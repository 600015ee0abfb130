// Package stats computes dashboard figures from a project snapshot.
package stats

import (
	"math"
	"sort"

	"github.com/dori/folio/internal/model"
)

// RecentLimit is how many projects the dashboard lists under recent activity
const RecentLimit = 3

// Summary wraps the counts with derived percentages
type Summary struct {
	model.Stats
}

// Compute tallies projects by status
func Compute(projects []model.Project) Summary {
	s := Summary{Stats: model.Stats{Total: len(projects)}}
	for _, p := range projects {
		switch p.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusPlanning:
			s.Planning++
		case model.StatusOnHold:
			s.OnHold++
		}
	}
	return s
}

// Count returns the number of projects with the given status
func (s Summary) Count(status model.Status) int {
	switch status {
	case model.StatusCompleted:
		return s.Completed
	case model.StatusInProgress:
		return s.InProgress
	case model.StatusPlanning:
		return s.Planning
	case model.StatusOnHold:
		return s.OnHold
	default:
		return 0
	}
}

// CompletionRate returns the rounded percentage of completed projects,
// or 0 when there are none
func (s Summary) CompletionRate() int {
	return percent(s.Completed, s.Total)
}

// Share returns the rounded percentage of projects with the given status
func (s Summary) Share(status model.Status) int {
	return percent(s.Count(status), s.Total)
}

// Fraction returns the unrounded share of a status in [0, 1], for bar widths
func (s Summary) Fraction(status model.Status) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Count(status)) / float64(s.Total)
}

// Recent returns up to n projects ordered by most recent update. Ties keep
// snapshot order. The input slice is not reordered.
func Recent(projects []model.Project, n int) []model.Project {
	sorted := make([]model.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// percent rounds half up; part and total are never negative
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
