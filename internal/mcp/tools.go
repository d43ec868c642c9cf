package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

const defaultHistoryLimit = 20

type DirectorChatInput struct {
	Message   string   `json:"message" jsonschema:"the production command in plain language"`
	ImageURLs []string `json:"imageUrls,omitempty" jsonschema:"reference images for this turn"`
}

type VoiceEditInput struct {
	CurrentText string `json:"currentText,omitempty" jsonschema:"text being edited"`
	EditCommand string `json:"editCommand" jsonschema:"spoken edit command, possibly several chained"`
}

type ChatHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of recent turns to return"`
}

type ActionOutput struct {
	Type    string         `json:"type"`
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type DirectorChatOutput struct {
	Response string         `json:"response"`
	Actions  []ActionOutput `json:"actions"`
}

type VoiceEditOutput struct {
	EditedText string `json:"editedText"`
	Command    string `json:"command"`
	Applied    bool   `json:"applied"`
}

type ChatMessageOutput struct {
	Role         string `json:"role"`
	Content      string `json:"content"`
	ActionType   string `json:"actionType,omitempty"`
	ActionStatus string `json:"actionStatus,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type ChatHistoryOutput struct {
	Messages []ChatMessageOutput `json:"messages"`
}

func (s *Server) registerTools() {
	for _, spec := range s.registry.Specs() {
		s.mcp.AddTool(&sdk.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.Schema,
		}, s.actionHandler(spec.Name))
	}

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "director_chat",
		Description: "Send a production command to the director's assistant, which plans and applies the edits and records the exchange",
	}, s.handleDirectorChat)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "chat_history",
		Description: "Return the recent director chat transcript, oldest first",
	}, s.handleChatHistory)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "voice_edit",
		Description: "Apply a spoken edit command to a piece of text",
	}, s.handleVoiceEdit)
}

// actionHandler runs one registry tool through the dispatcher. Arguments
// that are not JSON fail the call; arguments that break the schema come
// back as a failed ActionResult.
func (s *Server) actionHandler(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var args any
		if raw := bytes.TrimSpace(req.Params.Arguments); len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w for %s: %v", director.ErrMalformedArguments, name, err)
			}
		}
		action, err := s.registry.Decode(name, args)
		if err != nil {
			return nil, err
		}

		inv := director.Invocation{
			ID:        uuid.NewString(),
			ProjectID: s.scope.ProjectID,
			UserID:    s.scope.UserID,
		}
		result := s.exec.Execute(ctx, inv, action)
		s.logger.Info("tool call",
			zap.String("invocation", inv.ID),
			zap.String("tool", name),
			zap.Bool("success", result.Success),
		)
		return actionToolResult(result), nil
	}
}

func actionToolResult(result director.ActionResult) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content:           []sdk.Content{&sdk.TextContent{Text: result.Message}},
		StructuredContent: result,
		IsError:           !result.Success,
	}
}

func (s *Server) handleDirectorChat(ctx context.Context, req *sdk.CallToolRequest, input DirectorChatInput) (*sdk.CallToolResult, DirectorChatOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, DirectorChatOutput{}, fmt.Errorf("message is required")
	}
	reply, err := s.assistant.Chat(ctx, director.ChatRequest{
		ProjectID: s.scope.ProjectID,
		UserID:    s.scope.UserID,
		Message:   input.Message,
		ImageURLs: input.ImageURLs,
	})
	if err != nil {
		return nil, DirectorChatOutput{}, err
	}
	return nil, chatOutputFromReply(reply), nil
}

func (s *Server) handleChatHistory(ctx context.Context, req *sdk.CallToolRequest, input ChatHistoryInput) (*sdk.CallToolResult, ChatHistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	msgs, err := s.assistant.History(ctx, s.scope.ProjectID, s.scope.UserID, limit)
	if err != nil {
		return nil, ChatHistoryOutput{}, err
	}
	output := make([]ChatMessageOutput, 0, len(msgs))
	for _, msg := range msgs {
		output = append(output, chatMessageOutputFromStore(msg))
	}
	return nil, ChatHistoryOutput{Messages: output}, nil
}

func (s *Server) handleVoiceEdit(ctx context.Context, req *sdk.CallToolRequest, input VoiceEditInput) (*sdk.CallToolResult, VoiceEditOutput, error) {
	res, err := s.assistant.VoiceEdit(ctx, director.VoiceEditRequest{
		CurrentText: input.CurrentText,
		EditCommand: input.EditCommand,
	})
	if err != nil {
		return nil, VoiceEditOutput{}, err
	}
	return nil, VoiceEditOutput{EditedText: res.EditedText, Command: res.Command, Applied: res.Applied}, nil
}

func chatOutputFromReply(reply *director.Reply) DirectorChatOutput {
	if reply == nil {
		return DirectorChatOutput{}
	}
	out := DirectorChatOutput{
		Response: reply.Response,
		Actions:  make([]ActionOutput, 0, len(reply.Actions)),
	}
	for _, a := range reply.Actions {
		out.Actions = append(out.Actions, ActionOutput{
			Type:    a.Type,
			Success: a.Success,
			Message: a.Message,
			Data:    a.Data,
		})
	}
	return out
}

func chatMessageOutputFromStore(msg store.ChatMessage) ChatMessageOutput {
	return ChatMessageOutput{
		Role:         msg.Role,
		Content:      msg.Content,
		ActionType:   msg.ActionType,
		ActionStatus: msg.ActionStatus,
		CreatedAt:    msg.CreatedAt.UTC().Format(time.RFC3339),
	}
}
