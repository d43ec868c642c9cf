package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"filmcraft/internal/store"
)

func (c *Client) CreateChatMessage(ctx context.Context, in store.ChatMessageInput) (*store.ChatMessage, error) {
	var actionData any
	if in.ActionData != nil {
		encoded, err := json.Marshal(in.ActionData)
		if err != nil {
			return nil, fmt.Errorf("marshaling action data: %w", err)
		}
		actionData = string(encoded)
	}
	status := in.ActionStatus
	if status == "" {
		status = store.ActionStatusNone
	}

	var createdAt string
	var id int64
	err := c.q.QueryRowContext(ctx,
		`INSERT INTO chat_messages (project_id, user_id, role, content, action_type, action_data, action_status)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, created_at`,
		in.ProjectID, in.UserID, in.Role, in.Content, in.ActionType, actionData, status,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("creating chat message: %w", err)
	}

	return &store.ChatMessage{
		ID:           id,
		ProjectID:    in.ProjectID,
		UserID:       in.UserID,
		Role:         in.Role,
		Content:      in.Content,
		ActionType:   in.ActionType,
		ActionData:   in.ActionData,
		ActionStatus: status,
		CreatedAt:    parseTime(createdAt),
	}, nil
}

func (c *Client) GetProjectChatHistory(ctx context.Context, projectID int64, userID string, limit int) ([]store.ChatMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, project_id, user_id, role, content, action_type, action_data, action_status, created_at
FROM (
	SELECT * FROM chat_messages
	WHERE project_id = ? AND user_id = ?
	ORDER BY id DESC
	LIMIT ?
)
ORDER BY id ASC`,
		projectID, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chat history: %w", err)
	}
	defer rows.Close()

	var messages []store.ChatMessage
	for rows.Next() {
		var m store.ChatMessage
		var actionData sql.NullString
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.Content, &m.ActionType, &actionData, &m.ActionStatus, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		if actionData.Valid && actionData.String != "" {
			if err := json.Unmarshal([]byte(actionData.String), &m.ActionData); err != nil {
				return nil, fmt.Errorf("unmarshaling action data: %w", err)
			}
		}
		m.CreatedAt = parseTime(createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat history: %w", err)
	}
	return messages, nil
}

func (c *Client) ClearProjectChat(ctx context.Context, projectID int64, userID string) (int64, error) {
	res, err := c.q.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("clearing chat: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared messages: %w", err)
	}
	return n, nil
}
