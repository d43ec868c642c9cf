package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmcraft/internal/store"
)

func (c *Client) CreateDialogue(ctx context.Context, in store.DialogueInput) (*store.DialogueLine, error) {
	d := store.DialogueLine{
		SceneID:       in.SceneID,
		OrderIndex:    in.OrderIndex,
		CharacterName: in.CharacterName,
		Line:          in.Line,
		Emotion:       in.Emotion,
		Direction:     in.Direction,
	}
	err := c.q.QueryRow(ctx,
		`INSERT INTO dialogue_lines (scene_id, order_index, character_name, line, emotion, direction)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.SceneID, in.OrderIndex, in.CharacterName, in.Line, in.Emotion, in.Direction,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("creating dialogue: %w", err)
	}
	return &d, nil
}

func (c *Client) GetSceneDialogues(ctx context.Context, sceneID int64) ([]store.DialogueLine, error) {
	rows, err := c.q.Query(ctx,
		`SELECT id, scene_id, order_index, character_name, line, emotion, direction
FROM dialogue_lines WHERE scene_id = $1 ORDER BY order_index, id`,
		sceneID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing dialogue: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.DialogueLine, error) {
		var d store.DialogueLine
		err := row.Scan(&d.ID, &d.SceneID, &d.OrderIndex, &d.CharacterName, &d.Line, &d.Emotion, &d.Direction)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning dialogue: %w", err)
	}
	return lines, nil
}
