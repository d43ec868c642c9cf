package sqlite

import (
	"context"
	"fmt"

	"filmcraft/internal/store"
)

func (c *Client) CreateDialogue(ctx context.Context, in store.DialogueInput) (*store.DialogueLine, error) {
	res, err := c.q.ExecContext(ctx,
		`INSERT INTO dialogue_lines (scene_id, order_index, character_name, line, emotion, direction)
VALUES (?, ?, ?, ?, ?, ?)`,
		in.SceneID, in.OrderIndex, in.CharacterName, in.Line, in.Emotion, in.Direction,
	)
	if err != nil {
		return nil, fmt.Errorf("creating dialogue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading dialogue id: %w", err)
	}
	return &store.DialogueLine{
		ID:            id,
		SceneID:       in.SceneID,
		OrderIndex:    in.OrderIndex,
		CharacterName: in.CharacterName,
		Line:          in.Line,
		Emotion:       in.Emotion,
		Direction:     in.Direction,
	}, nil
}

func (c *Client) GetSceneDialogues(ctx context.Context, sceneID int64) ([]store.DialogueLine, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, scene_id, order_index, character_name, line, emotion, direction
FROM dialogue_lines WHERE scene_id = ? ORDER BY order_index, id`,
		sceneID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing dialogue: %w", err)
	}
	defer rows.Close()

	var lines []store.DialogueLine
	for rows.Next() {
		var d store.DialogueLine
		if err := rows.Scan(&d.ID, &d.SceneID, &d.OrderIndex, &d.CharacterName, &d.Line, &d.Emotion, &d.Direction); err != nil {
			return nil, fmt.Errorf("scanning dialogue: %w", err)
		}
		lines = append(lines, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dialogue: %w", err)
	}
	return lines, nil
}
