package director

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filmcraft/internal/store"
)

type ChatRequest struct {
	ProjectID int64
	UserID    string
	Message   string
	ImageURLs []string
}

// Chat is ProcessMessage with the transcript around it: the recent history
// is loaded, the user turn is stored, and the assistant turn is stored with
// every action the invocation took.
func (d *Director) Chat(ctx context.Context, req ChatRequest) (*Reply, error) {
	if _, err := d.Authorize(ctx, req.ProjectID, req.UserID); err != nil {
		return nil, err
	}
	history, err := d.store.GetProjectChatHistory(ctx, req.ProjectID, req.UserID, d.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("loading chat history: %w", err)
	}

	_, err = d.store.CreateChatMessage(ctx, store.ChatMessageInput{
		ProjectID:    req.ProjectID,
		UserID:       req.UserID,
		Role:         store.RoleUser,
		Content:      req.Message,
		ActionStatus: store.ActionStatusNone,
	})
	if err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	reply, err := d.ProcessMessage(ctx, MessageRequest{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Message:   req.Message,
		History:   history,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return nil, err
	}

	in := store.ChatMessageInput{
		ProjectID:    req.ProjectID,
		UserID:       req.UserID,
		Role:         store.RoleAssistant,
		Content:      reply.Response,
		ActionType:   actionType(reply.Actions),
		ActionStatus: actionStatus(reply.Actions),
	}
	if len(reply.Actions) > 0 {
		in.ActionData = map[string]any{"actions": reply.Actions}
	}
	if _, err := d.store.CreateChatMessage(ctx, in); err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}
	d.logger.Debug("chat turn stored",
		zap.Int64("project", req.ProjectID),
		zap.String("action_type", in.ActionType),
		zap.String("action_status", in.ActionStatus))
	return reply, nil
}

// actionType is the single type every action shares, "multiple" when they
// differ, or empty when nothing ran.
func actionType(actions []ActionRecord) string {
	if len(actions) == 0 {
		return ""
	}
	first := actions[0].Type
	for _, a := range actions[1:] {
		if a.Type != first {
			return "multiple"
		}
	}
	return first
}

func actionStatus(actions []ActionRecord) string {
	if len(actions) == 0 {
		return store.ActionStatusNone
	}
	succeeded := 0
	for _, a := range actions {
		if a.Success {
			succeeded++
		}
	}
	switch succeeded {
	case len(actions):
		return store.ActionStatusSuccess
	case 0:
		return store.ActionStatusFailed
	default:
		return store.ActionStatusPartial
	}
}

// History returns the most recent limit transcript turns, oldest first.
func (d *Director) History(ctx context.Context, projectID int64, userID string, limit int) ([]store.ChatMessage, error) {
	if _, err := d.Authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	msgs, err := d.store.GetProjectChatHistory(ctx, projectID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading chat history: %w", err)
	}
	return msgs, nil
}

// ClearChat deletes the user's transcript for the project and reports how
// many turns were removed.
func (d *Director) ClearChat(ctx context.Context, projectID int64, userID string) (int64, error) {
	if _, err := d.Authorize(ctx, projectID, userID); err != nil {
		return 0, err
	}
	n, err := d.store.ClearProjectChat(ctx, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing chat: %w", err)
	}
	return n, nil
}
