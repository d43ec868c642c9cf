package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmcraft/internal/store"
)

func (c *Client) CreateSoundEffect(ctx context.Context, in store.SoundEffectInput) (*store.SoundEffect, error) {
	e := store.SoundEffect{
		ProjectID: in.ProjectID,
		SceneID:   in.SceneID,
		Name:      in.Name,
		Category:  in.Category,
		StartTime: in.StartTime,
		Volume:    in.Volume,
	}
	err := c.q.QueryRow(ctx,
		`INSERT INTO sound_effects (project_id, scene_id, name, category, start_time, volume)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.ProjectID, in.SceneID, in.Name, in.Category, in.StartTime, in.Volume,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("creating sound effect: %w", err)
	}
	return &e, nil
}

func (c *Client) ListSoundEffectsByProject(ctx context.Context, projectID int64) ([]store.SoundEffect, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, project_id, scene_id, name, category, start_time, volume
FROM sound_effects WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sound effects: %w", err)
	}
	effects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.SoundEffect, error) {
		var e store.SoundEffect
		err := row.Scan(&e.ID, &e.ProjectID, &e.SceneID, &e.Name, &e.Category, &e.StartTime, &e.Volume)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning sound effects: %w", err)
	}
	return effects, nil
}

func (c *Client) CreateVisualEffect(ctx context.Context, in store.VisualEffectInput) (*store.VisualEffect, error) {
	e := store.VisualEffect{
		ProjectID: in.ProjectID,
		SceneID:   in.SceneID,
		Name:      in.Name,
		Category:  in.Category,
		Intensity: in.Intensity,
		Duration:  in.Duration,
		StartTime: in.StartTime,
		ColorTint: in.ColorTint,
	}
	err := c.q.QueryRow(ctx,
		`INSERT INTO visual_effects (project_id, scene_id, name, category, intensity, duration, start_time, color_tint)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		in.ProjectID, in.SceneID, in.Name, in.Category, in.Intensity, in.Duration, in.StartTime, in.ColorTint,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("creating visual effect: %w", err)
	}
	return &e, nil
}

func (c *Client) ListVisualEffectsByProject(ctx context.Context, projectID int64) ([]store.VisualEffect, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, project_id, scene_id, name, category, intensity, duration, start_time, color_tint
FROM visual_effects WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visual effects: %w", err)
	}
	effects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.VisualEffect, error) {
		var e store.VisualEffect
		err := row.Scan(&e.ID, &e.ProjectID, &e.SceneID, &e.Name, &e.Category, &e.Intensity, &e.Duration, &e.StartTime, &e.ColorTint)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning visual effects: %w", err)
	}
	return effects, nil
}
