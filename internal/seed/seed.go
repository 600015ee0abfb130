// Package seed loads the example projects a session starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultProjects []byte

// Entry is one project in a seed file
type Entry struct {
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Members      []string   `yaml:"members"`
	TechStack    []string   `yaml:"tech_stack"`
	Status       string     `yaml:"status"`
	StartDate    time.Time  `yaml:"start_date"`
	EndDate      *time.Time `yaml:"end_date"`
	LastActivity *time.Time `yaml:"last_activity"`
}

type file struct {
	Projects []Entry `yaml:"projects"`
}

// Clock is a time source that can be pinned to a fixed instant, so seeded
// projects carry their historical activity time instead of the start-up time
type Clock struct {
	mu     sync.Mutex
	pinned *time.Time
}

// Now returns the pinned time if set, otherwise the wall clock
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned != nil {
		return *c.pinned
	}
	return time.Now()
}

func (c *Clock) pin(t *time.Time) {
	c.mu.Lock()
	c.pinned = t
	c.mu.Unlock()
}

// Parse decodes seed YAML into drafts, validating each one
func Parse(data []byte) ([]Entry, []model.Draft, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	drafts := make([]model.Draft, 0, len(f.Projects))
	for i, e := range f.Projects {
		d, err := e.draft()
		if err != nil {
			return nil, nil, fmt.Errorf("seed project %d (%q): %w", i+1, e.Title, err)
		}
		drafts = append(drafts, d)
	}
	return f.Projects, drafts, nil
}

func (e Entry) draft() (model.Draft, error) {
	status, err := model.ParseStatus(e.Status)
	if err != nil {
		return model.Draft{}, fmt.Errorf("%w: %q", err, e.Status)
	}
	title := strings.TrimSpace(e.Title)
	description := strings.TrimSpace(e.Description)
	members := nonBlank(e.Members)
	techs := nonBlank(e.TechStack)
	if title == "" || description == "" || len(members) == 0 || len(techs) == 0 {
		return model.Draft{}, fmt.Errorf("title, description, members and tech_stack are required")
	}
	if e.StartDate.IsZero() {
		return model.Draft{}, fmt.Errorf("start_date is required")
	}

	d := model.Draft{
		Title:       title,
		Description: description,
		Members:     members,
		TechStack:   techs,
		Status:      status,
		StartDate:   day(e.StartDate),
	}
	if e.EndDate != nil {
		end := day(*e.EndDate)
		d.EndDate = &end
	}
	if err := d.Validate(); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}

// nonBlank trims rows and drops the empty ones
func nonBlank(rows []string) []string {
	var out []string
	for _, r := range rows {
		if v := strings.TrimSpace(r); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Load creates the built-in example projects in s
func Load(s store.Store, clock *Clock) (int, error) {
	return load(defaultProjects, s, clock)
}

// LoadFile creates the projects listed in a seed file. The file is only read.
func LoadFile(path string, s store.Store, clock *Clock) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}
	return load(data, s, clock)
}

func load(data []byte, s store.Store, clock *Clock) (int, error) {
	entries, drafts, err := Parse(data)
	if err != nil {
		return 0, err
	}

	if clock != nil {
		defer clock.pin(nil)
	}
	for i, d := range drafts {
		if clock != nil {
			clock.pin(entries[i].LastActivity)
		}
		if _, err := s.Create(d); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", d.Title, err)
		}
	}
	return len(drafts), nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
