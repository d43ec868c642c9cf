package director

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmcraft/internal/llm"
)

type VoiceEditRequest struct {
	CurrentText string `json:"currentText"`
	EditCommand string `json:"editCommand"`
}

type VoiceEditResult struct {
	EditedText string `json:"editedText"`
	Command    string `json:"command"`
	Applied    bool   `json:"applied"`
}

var ErrEmptyCommand = errors.New("edit command is empty")

var clearAllCommands = map[string]bool{
	"clear":             true,
	"clear all":         true,
	"clear everything":  true,
	"delete all":        true,
	"delete everything": true,
	"erase all":         true,
	"start over":        true,
}

// VoiceEdit applies a spoken, possibly chained, edit command to text with a
// single model call. Clear-all commands are answered without the model.
func VoiceEdit(ctx context.Context, invoker llm.Invoker, model string, req VoiceEditRequest) (*VoiceEditResult, error) {
	command := strings.TrimSpace(req.EditCommand)
	if command == "" {
		return nil, ErrEmptyCommand
	}

	normalized := strings.ToLower(strings.TrimRight(command, ".!"))
	if clearAllCommands[normalized] {
		return &VoiceEditResult{EditedText: "", Command: command, Applied: req.CurrentText != ""}, nil
	}

	temperature := voiceEditTemperature
	resp, err := invoker.Invoke(ctx, llm.Request{
		Model: model,
		Messages: []llm.Message{
			llm.SystemMessage(voiceEditPrompt),
			llm.UserMessage(voiceEditMessage(req.CurrentText, command)),
		},
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("voice edit: %w", err)
	}
	msg, err := resp.FirstMessage()
	if err != nil {
		return nil, fmt.Errorf("voice edit: %w", err)
	}

	edited := cleanEditOutput(msg.Content)
	return &VoiceEditResult{
		EditedText: edited,
		Command:    command,
		Applied:    edited != req.CurrentText,
	}, nil
}

const voiceEditTemperature = 0.2

var quotePairs = [][2]string{{`"`, `"`}, {"'", "'"}, {"`", "`"}, {"“", "”"}}

// cleanEditOutput strips whitespace and wrapping quotes and maps the clear
// sentinel to the empty string.
func cleanEditOutput(raw string) string {
	out := strings.TrimSpace(raw)
	for _, q := range quotePairs {
		if len(out) >= len(q[0])+len(q[1]) && strings.HasPrefix(out, q[0]) && strings.HasSuffix(out, q[1]) {
			out = strings.TrimSpace(out[len(q[0]) : len(out)-len(q[1])])
		}
	}
	if strings.Contains(out, ClearSentinel) {
		return ""
	}
	return out
}

// VoiceEdit runs VoiceEdit with the director's invoker and model.
func (d *Director) VoiceEdit(ctx context.Context, req VoiceEditRequest) (*VoiceEditResult, error) {
	return VoiceEdit(ctx, d.invoker, d.model, req)
}
