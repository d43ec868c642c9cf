package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filmcraft/internal/store"
)

func (c *Client) CreateProject(ctx context.Context, in store.ProjectInput) (*store.Project, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO projects (user_id, title, description, genre) VALUES (?, ?, ?, ?)`,
		in.UserID, in.Title, in.Description, in.Genre,
	)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}
	return c.GetProjectByID(ctx, id)
}

func (c *Client) GetProjectByID(ctx context.Context, projectID int64) (*store.Project, error) {
	var p store.Project
	var createdAt, updatedAt string
	err := c.q.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, genre, created_at, updated_at FROM projects WHERE id = ?`,
		projectID,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Genre, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", projectID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID int64, patch store.ProjectPatch) (*store.Project, error) {
	res, err := c.q.ExecContext(ctx,
		`UPDATE projects SET
	title = COALESCE(?, title),
	description = COALESCE(?, description),
	genre = COALESCE(?, genre),
	updated_at = datetime('now')
WHERE id = ?`,
		patch.Title, patch.Description, patch.Genre, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("project %d: %w", projectID, store.ErrNotFound)
	}
	return c.GetProjectByID(ctx, projectID)
}

func (c *Client) CreateCharacter(ctx context.Context, projectID int64, name, description string) (*store.Character, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO characters (project_id, name, description) VALUES (?, ?, ?)`,
		projectID, name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading character id: %w", err)
	}
	return &store.Character{ID: id, ProjectID: projectID, Name: name, Description: description}, nil
}

func (c *Client) GetProjectCharacters(ctx context.Context, projectID int64) ([]store.Character, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, project_id, name, description FROM characters WHERE project_id = ? ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var characters []store.Character
	for rows.Next() {
		var ch store.Character
		if err := rows.Scan(&ch.ID, &ch.ProjectID, &ch.Name, &ch.Description); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		characters = append(characters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return characters, nil
}
