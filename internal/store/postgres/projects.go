package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmcraft/internal/store"
)

const projectColumns = `id, user_id, title, description, genre, created_at, updated_at`

func scanProject(row pgx.Row) (*store.Project, error) {
	var p store.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Genre, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProject(ctx context.Context, in store.ProjectInput) (*store.Project, error) {
	p, err := scanProject(c.q.QueryRow(ctx,
		`INSERT INTO projects (user_id, title, description, genre) VALUES ($1, $2, $3, $4)
RETURNING `+projectColumns,
		in.UserID, in.Title, in.Description, in.Genre,
	))
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

func (c *Client) GetProjectByID(ctx context.Context, projectID int64) (*store.Project, error) {
	p, err := scanProject(c.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", projectID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID int64, patch store.ProjectPatch) (*store.Project, error) {
	p, err := scanProject(c.q.QueryRow(ctx,
		`UPDATE projects SET
    title = COALESCE($2, title),
    description = COALESCE($3, description),
    genre = COALESCE($4, genre),
    updated_at = now()
WHERE id = $1
RETURNING `+projectColumns,
		projectID, patch.Title, patch.Description, patch.Genre,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", projectID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

func (c *Client) CreateCharacter(ctx context.Context, projectID int64, name, description string) (*store.Character, error) {
	ch := store.Character{ProjectID: projectID, Name: name, Description: description}
	err := c.q.QueryRow(ctx,
		`INSERT INTO characters (project_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		projectID, name, description,
	).Scan(&ch.ID)
	if err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return &ch, nil
}

func (c *Client) GetProjectCharacters(ctx context.Context, projectID int64) ([]store.Character, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, project_id, name, description FROM characters WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	characters, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Character, error) {
		var ch store.Character
		err := row.Scan(&ch.ID, &ch.ProjectID, &ch.Name, &ch.Description)
		return ch, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning characters: %w", err)
	}
	return characters, nil
}
