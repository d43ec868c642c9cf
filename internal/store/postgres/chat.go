package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"filmcraft/internal/store"
)

func (c *Client) CreateChatMessage(ctx context.Context, in store.ChatMessageInput) (*store.ChatMessage, error) {
	m := store.ChatMessage{
		ProjectID:    in.ProjectID,
		UserID:       in.UserID,
		Role:         in.Role,
		Content:      in.Content,
		ActionType:   in.ActionType,
		ActionData:   in.ActionData,
		ActionStatus: in.ActionStatus,
	}
	if m.ActionStatus == "" {
		m.ActionStatus = store.ActionStatusNone
	}

	// pgx encodes a map as JSONB; a nil map is stored as NULL.
	err := c.q.QueryRow(ctx,
		`INSERT INTO chat_messages (project_id, user_id, role, content, action_type, action_data, action_status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`,
		in.ProjectID, in.UserID, in.Role, in.Content, in.ActionType, in.ActionData, m.ActionStatus,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating chat message: %w", err)
	}
	return &m, nil
}

func (c *Client) GetProjectChatHistory(ctx context.Context, projectID int64, userID string, limit int) ([]store.ChatMessage, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := c.q.Query(ctx,
		`SELECT id, project_id, user_id, role, content, action_type, action_data, action_status, created_at
FROM (
    SELECT * FROM chat_messages
    WHERE project_id = $1 AND user_id = $2
    ORDER BY id DESC
    LIMIT $3
) recent
ORDER BY id ASC`,
		projectID, userID, limitArg,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chat history: %w", err)
	}
	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.ChatMessage, error) {
		var m store.ChatMessage
		err := row.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.Content, &m.ActionType, &m.ActionData, &m.ActionStatus, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning chat history: %w", err)
	}
	return messages, nil
}

func (c *Client) ClearProjectChat(ctx context.Context, projectID int64, userID string) (int64, error) {
	tag, err := c.q.Exec(ctx, `DELETE FROM chat_messages WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing chat: %w", err)
	}
	return tag.RowsAffected(), nil
}
