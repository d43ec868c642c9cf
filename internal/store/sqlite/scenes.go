package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filmcraft/internal/store"
)

const sceneColumns = `id, project_id, order_index, title, description, time_of_day, weather, lighting,
	camera_angle, mood, duration, transition_type, transition_duration, color_grading, production_notes, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScene(row rowScanner) (store.Scene, error) {
	var s store.Scene
	err := row.Scan(
		&s.ID, &s.ProjectID, &s.OrderIndex, &s.Title, &s.Description, &s.TimeOfDay, &s.Weather, &s.Lighting,
		&s.CameraAngle, &s.Mood, &s.Duration, &s.TransitionType, &s.TransitionDuration, &s.ColorGrading,
		&s.ProductionNotes, &s.Status,
	)
	return s, err
}

func (c *Client) GetProjectScenes(ctx context.Context, projectID int64) ([]store.Scene, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE project_id = ? ORDER BY order_index, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing scenes: %w", err)
	}
	defer rows.Close()

	var scenes []store.Scene
	for rows.Next() {
		s, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scene: %w", err)
		}
		scenes = append(scenes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenes: %w", err)
	}
	return scenes, nil
}

func (c *Client) getScene(ctx context.Context, sceneID int64) (*store.Scene, error) {
	s, err := scanScene(c.q.QueryRowContext(ctx, `SELECT `+sceneColumns+` FROM scenes WHERE id = ?`, sceneID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scene %d: %w", sceneID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting scene: %w", err)
	}
	return &s, nil
}

func (c *Client) CreateScene(ctx context.Context, in store.SceneInput) (*store.Scene, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO scenes (project_id, order_index, title, description, time_of_day, weather, lighting,
	camera_angle, mood, duration, transition_type, transition_duration, color_grading, production_notes, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ProjectID, in.OrderIndex, in.Title, in.Description, in.TimeOfDay, in.Weather, in.Lighting,
		in.CameraAngle, in.Mood, in.Duration, in.TransitionType, in.TransitionDuration, in.ColorGrading,
		in.ProductionNotes, in.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading scene id: %w", err)
	}
	return c.getScene(ctx, id)
}

func (c *Client) UpdateScene(ctx context.Context, sceneID int64, p store.ScenePatch) (*store.Scene, error) {
	res, err := c.q.ExecContext(ctx,
		`UPDATE scenes SET
	title = COALESCE(?, title),
	description = COALESCE(?, description),
	time_of_day = COALESCE(?, time_of_day),
	weather = COALESCE(?, weather),
	lighting = COALESCE(?, lighting),
	camera_angle = COALESCE(?, camera_angle),
	mood = COALESCE(?, mood),
	duration = COALESCE(?, duration),
	transition_type = COALESCE(?, transition_type),
	transition_duration = COALESCE(?, transition_duration),
	color_grading = COALESCE(?, color_grading),
	production_notes = COALESCE(?, production_notes),
	status = COALESCE(?, status)
WHERE id = ?`,
		p.Title, p.Description, p.TimeOfDay, p.Weather, p.Lighting, p.CameraAngle, p.Mood, p.Duration,
		p.TransitionType, p.TransitionDuration, p.ColorGrading, p.ProductionNotes, p.Status, sceneID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating scene: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("scene %d: %w", sceneID, store.ErrNotFound)
	}
	return c.getScene(ctx, sceneID)
}

func (c *Client) DeleteScene(ctx context.Context, sceneID int64) error {
	res, err := c.q.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, sceneID)
	if err != nil {
		return fmt.Errorf("deleting scene: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("scene %d: %w", sceneID, store.ErrNotFound)
	}
	return nil
}

// ReorderScenes assigns order_index = position for each id in orderedIDs.
// Ids that do not belong to the project are rejected.
func (c *Client) ReorderScenes(ctx context.Context, projectID int64, orderedIDs []int64) error {
	for position, id := range orderedIDs {
		res, err := c.q.ExecContext(ctx,
			`UPDATE scenes SET order_index = ? WHERE id = ? AND project_id = ?`,
			position, id, projectID,
		)
		if err != nil {
			return fmt.Errorf("reordering scene %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("reordering scene %d: %w", id, store.ErrNotFound)
		}
	}
	return nil
}
