package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmcraft/internal/store"
)

const sceneColumns = `id, project_id, order_index, title, description, time_of_day, weather, lighting,
    camera_angle, mood, duration, transition_type, transition_duration, color_grading, production_notes, status`

func scanScene(row pgx.Row) (store.Scene, error) {
	var s store.Scene
	err := row.Scan(
		&s.ID, &s.ProjectID, &s.OrderIndex, &s.Title, &s.Description, &s.TimeOfDay, &s.Weather, &s.Lighting,
		&s.CameraAngle, &s.Mood, &s.Duration, &s.TransitionType, &s.TransitionDuration, &s.ColorGrading,
		&s.ProductionNotes, &s.Status,
	)
	return s, err
}

func (c *Client) GetProjectScenes(ctx context.Context, projectID int64) ([]store.Scene, error) {
	rows, err := c.q.Query(ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE project_id = $1 ORDER BY order_index, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing scenes: %w", err)
	}
	scenes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Scene, error) {
		return scanScene(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scanning scenes: %w", err)
	}
	return scenes, nil
}

func (c *Client) CreateScene(ctx context.Context, in store.SceneInput) (*store.Scene, error) {
	s, err := scanScene(c.q.QueryRow(ctx,
		`INSERT INTO scenes (project_id, order_index, title, description, time_of_day, weather, lighting,
    camera_angle, mood, duration, transition_type, transition_duration, color_grading, production_notes, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING `+sceneColumns,
		in.ProjectID, in.OrderIndex, in.Title, in.Description, in.TimeOfDay, in.Weather, in.Lighting,
		in.CameraAngle, in.Mood, in.Duration, in.TransitionType, in.TransitionDuration, in.ColorGrading,
		in.ProductionNotes, in.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	return &s, nil
}

func (c *Client) UpdateScene(ctx context.Context, sceneID int64, p store.ScenePatch) (*store.Scene, error) {
	s, err := scanScene(c.q.QueryRow(ctx,
		`UPDATE scenes SET
    title = COALESCE($2, title),
    description = COALESCE($3, description),
    time_of_day = COALESCE($4, time_of_day),
    weather = COALESCE($5, weather),
    lighting = COALESCE($6, lighting),
    camera_angle = COALESCE($7, camera_angle),
    mood = COALESCE($8, mood),
    duration = COALESCE($9, duration),
    transition_type = COALESCE($10, transition_type),
    transition_duration = COALESCE($11, transition_duration),
    color_grading = COALESCE($12, color_grading),
    production_notes = COALESCE($13, production_notes),
    status = COALESCE($14, status)
WHERE id = $1
RETURNING `+sceneColumns,
		sceneID, p.Title, p.Description, p.TimeOfDay, p.Weather, p.Lighting, p.CameraAngle, p.Mood,
		p.Duration, p.TransitionType, p.TransitionDuration, p.ColorGrading, p.ProductionNotes, p.Status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scene %d: %w", sceneID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating scene: %w", err)
	}
	return &s, nil
}

func (c *Client) DeleteScene(ctx context.Context, sceneID int64) error {
	tag, err := c.q.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, sceneID)
	if err != nil {
		return fmt.Errorf("deleting scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scene %d: %w", sceneID, store.ErrNotFound)
	}
	return nil
}

// ReorderScenes assigns order_index = position for each id in one batch.
// Outside WithinTx the batch still runs as a single implicit transaction.
func (c *Client) ReorderScenes(ctx context.Context, projectID int64, orderedIDs []int64) error {
	batch := &pgx.Batch{}
	for position, id := range orderedIDs {
		batch.Queue(`UPDATE scenes SET order_index = $1 WHERE id = $2 AND project_id = $3`, position, id, projectID)
	}

	results := c.q.SendBatch(ctx, batch)
	defer results.Close()

	for _, id := range orderedIDs {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("reordering scene %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("reordering scene %d: %w", id, store.ErrNotFound)
		}
	}
	return nil
}
