package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/store"
	"go.uber.org/zap"
)

const projectColumns = `id, title, description, status, start_date, end_date, created_at, updated_at`

// List returns all projects in insertion order
func (db *DB) List() ([]model.Project, error) {
	rows, err := db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY position`)
	if err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Close BEFORE loading children: with one connection, an open cursor
	// would block the next query
	rows.Close()

	members, err := db.loadNames("project_members")
	if err != nil {
		return nil, err
	}
	techs, err := db.loadNames("project_technologies")
	if err != nil {
		return nil, err
	}

	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		p.Members = members[p.ID]
		p.TechStack = techs[p.ID]
		out = append(out, p)
	}
	return out, nil
}

// Get returns a single project by ID
func (db *DB) Get(id string) (model.Project, error) {
	row := db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, store.ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}

	if p.Members, err = db.loadProjectNames("project_members", id); err != nil {
		return model.Project{}, err
	}
	if p.TechStack, err = db.loadProjectNames("project_technologies", id); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// Create inserts a new project at the end of the collection
func (db *DB) Create(draft model.Draft) (model.Project, error) {
	now := db.opts.Now()
	p := model.Project{
		ID:          db.opts.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		Members:     draft.Members,
		TechStack:   draft.TechStack,
		Status:      draft.Status,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()

	err := db.Transaction(func(tx *sql.Tx) error {
		// Get max position
		var maxPos sql.NullInt64
		if err := tx.QueryRow("SELECT MAX(position) FROM projects").Scan(&maxPos); err != nil {
			return err
		}
		position := 0
		if maxPos.Valid {
			position = int(maxPos.Int64) + 1
		}

		_, err := tx.Exec(`
			INSERT INTO projects (id, title, description, status, start_date, end_date, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Title, p.Description, string(p.Status), model.FormatDate(p.StartDate),
			nullableDate(p.EndDate), position, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return err
		}

		return writeChildren(tx, p)
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	db.logger.Debug("Project inserted", zap.String("id", p.ID))
	return p, nil
}

// Update replaces the editable fields of a project, keeping its ID,
// creation time and position
func (db *DB) Update(id string, draft model.Draft) (model.Project, error) {
	var p model.Project

	err := db.Transaction(func(tx *sql.Tx) error {
		var createdAt, updatedAt time.Time
		err := tx.QueryRow(`SELECT created_at, updated_at FROM projects WHERE id = ?`, id).
			Scan(&createdAt, &updatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}

		p = model.Project{
			ID:          id,
			Title:       draft.Title,
			Description: draft.Description,
			Members:     draft.Members,
			TechStack:   draft.TechStack,
			Status:      draft.Status,
			StartDate:   draft.StartDate,
			EndDate:     draft.EndDate,
			CreatedAt:   createdAt,
			UpdatedAt:   store.NextUpdate(updatedAt, db.opts.Now()),
		}.Clone()

		_, err = tx.Exec(`
			UPDATE projects
			SET title = ?, description = ?, status = ?, start_date = ?, end_date = ?, updated_at = ?
			WHERE id = ?
		`, p.Title, p.Description, string(p.Status), model.FormatDate(p.StartDate),
			nullableDate(p.EndDate), p.UpdatedAt, id)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM project_members WHERE project_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM project_technologies WHERE project_id = ?`, id); err != nil {
			return err
		}
		return writeChildren(tx, p)
	})
	if errors.Is(err, store.ErrNotFound) {
		return model.Project{}, err
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	return p, nil
}

// Delete removes a project and its members and technologies
func (db *DB) Delete(id string) error {
	_, err := db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (model.Project, error) {
	var p model.Project
	var status, startDate string
	var endDate sql.NullString

	err := row.Scan(&p.ID, &p.Title, &p.Description, &status, &startDate, &endDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Project{}, err
	}

	p.Status = model.Status(status)
	if p.StartDate, err = model.ParseDate(startDate); err != nil {
		return model.Project{}, fmt.Errorf("bad start date for %s: %w", p.ID, err)
	}
	if endDate.Valid {
		end, err := model.ParseDate(endDate.String)
		if err != nil {
			return model.Project{}, fmt.Errorf("bad end date for %s: %w", p.ID, err)
		}
		p.EndDate = &end
	}
	return p, nil
}

// loadNames returns every name in a child table grouped by project ID
func (db *DB) loadNames(table string) (map[string][]string, error) {
	rows, err := db.Query(`SELECT project_id, name FROM ` + table + ` ORDER BY project_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string][]string)
	for rows.Next() {
		var projectID, name string
		if err := rows.Scan(&projectID, &name); err != nil {
			return nil, err
		}
		names[projectID] = append(names[projectID], name)
	}
	return names, rows.Err()
}

func (db *DB) loadProjectNames(table, projectID string) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM `+table+` WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func writeChildren(tx *sql.Tx, p model.Project) error {
	for i, name := range p.Members {
		_, err := tx.Exec(`INSERT INTO project_members (project_id, position, name) VALUES (?, ?, ?)`, p.ID, i, name)
		if err != nil {
			return err
		}
	}
	for i, name := range p.TechStack {
		_, err := tx.Exec(`INSERT INTO project_technologies (project_id, position, name) VALUES (?, ?, ?)`, p.ID, i, name)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return model.FormatDate(*t)
}
