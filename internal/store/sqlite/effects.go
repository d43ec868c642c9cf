package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"filmcraft/internal/store"
)

func (c *Client) CreateSoundEffect(ctx context.Context, in store.SoundEffectInput) (*store.SoundEffect, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO sound_effects (project_id, scene_id, name, category, start_time, volume) VALUES (?, ?, ?, ?, ?, ?)`,
		in.ProjectID, nullableID(in.SceneID), in.Name, in.Category, in.StartTime, in.Volume,
	)
	if err != nil {
		return nil, fmt.Errorf("creating sound effect: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading sound effect id: %w", err)
	}
	return &store.SoundEffect{
		ID:        id,
		ProjectID: in.ProjectID,
		SceneID:   in.SceneID,
		Name:      in.Name,
		Category:  in.Category,
		StartTime: in.StartTime,
		Volume:    in.Volume,
	}, nil
}

func (c *Client) ListSoundEffectsByProject(ctx context.Context, projectID int64) ([]store.SoundEffect, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, project_id, scene_id, name, category, start_time, volume
FROM sound_effects WHERE project_id = ? ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sound effects: %w", err)
	}
	defer rows.Close()

	var effects []store.SoundEffect
	for rows.Next() {
		var e store.SoundEffect
		var sceneID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ProjectID, &sceneID, &e.Name, &e.Category, &e.StartTime, &e.Volume); err != nil {
			return nil, fmt.Errorf("scanning sound effect: %w", err)
		}
		e.SceneID = scanNullableID(sceneID)
		effects = append(effects, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sound effects: %w", err)
	}
	return effects, nil
}

func (c *Client) CreateVisualEffect(ctx context.Context, in store.VisualEffectInput) (*store.VisualEffect, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO visual_effects (project_id, scene_id, name, category, intensity, duration, start_time, color_tint)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ProjectID, nullableID(in.SceneID), in.Name, in.Category, in.Intensity, in.Duration, in.StartTime, in.ColorTint,
	)
	if err != nil {
		return nil, fmt.Errorf("creating visual effect: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading visual effect id: %w", err)
	}
	return &store.VisualEffect{
		ID:        id,
		ProjectID: in.ProjectID,
		SceneID:   in.SceneID,
		Name:      in.Name,
		Category:  in.Category,
		Intensity: in.Intensity,
		Duration:  in.Duration,
		StartTime: in.StartTime,
		ColorTint: in.ColorTint,
	}, nil
}

func (c *Client) ListVisualEffectsByProject(ctx context.Context, projectID int64) ([]store.VisualEffect, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, project_id, scene_id, name, category, intensity, duration, start_time, color_tint
FROM visual_effects WHERE project_id = ? ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visual effects: %w", err)
	}
	defer rows.Close()

	var effects []store.VisualEffect
	for rows.Next() {
		var e store.VisualEffect
		var sceneID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ProjectID, &sceneID, &e.Name, &e.Category, &e.Intensity, &e.Duration, &e.StartTime, &e.ColorTint); err != nil {
			return nil, fmt.Errorf("scanning visual effect: %w", err)
		}
		e.SceneID = scanNullableID(sceneID)
		effects = append(effects, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visual effects: %w", err)
	}
	return effects, nil
}
