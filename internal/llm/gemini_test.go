package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestToGenAI(t *testing.T) {
	temp := 0.2
	req := Request{
		Messages: []Message{
			SystemMessage("you are a director"),
			UserMessage("match this look", "https://cdn.example.com/ref.png?sig=abc"),
			AssistantMessage("", []ToolCall{
				{ID: "c1", Type: "function", Function: FunctionCall{Name: "cut_scene", Arguments: `{"sceneName":"1"}`}},
				{ID: "c2", Type: "function", Function: FunctionCall{Name: "get_project_summary", Arguments: ``}},
			}),
			ToolMessage("c1", "", `{"success":true,"result":"Cut scene \"Intro\""}`),
			ToolMessage("c2", "get_project_summary", `not json`),
		},
		Tools:          []Tool{{Type: "function", Function: FunctionDef{Name: "cut_scene", Description: "cut", Parameters: map[string]any{"type": "object"}}}},
		ResponseFormat: StrictSchema("scene", map[string]any{"type": "object"}),
		Temperature:    &temp,
	}

	contents, config, err := toGenAI(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.SystemInstruction == nil || config.SystemInstruction.Parts[0].Text != "you are a director" {
		t.Fatalf("expected system instruction, got %+v", config.SystemInstruction)
	}
	if len(config.Tools) != 1 || config.Tools[0].FunctionDeclarations[0].Name != "cut_scene" {
		t.Fatalf("unexpected tools: %+v", config.Tools)
	}
	if config.ResponseMIMEType != "application/json" || config.ResponseJsonSchema == nil {
		t.Fatalf("expected json response config")
	}
	if config.Temperature == nil || *config.Temperature != float32(0.2) {
		t.Fatalf("unexpected temperature: %v", config.Temperature)
	}

	if len(contents) != 3 {
		t.Fatalf("expected user, model, tool-response turns, got %d", len(contents))
	}
	user := contents[0]
	if user.Role != genai.RoleUser || len(user.Parts) != 2 || user.Parts[1].FileData == nil {
		t.Fatalf("unexpected user turn: %+v", user)
	}
	if user.Parts[1].FileData.MIMEType != "image/png" {
		t.Fatalf("expected png mime type, got %q", user.Parts[1].FileData.MIMEType)
	}

	model := contents[1]
	if model.Role != genai.RoleModel || len(model.Parts) != 2 || model.Parts[0].FunctionCall.Args["sceneName"] != "1" {
		t.Fatalf("unexpected model turn: %+v", model)
	}

	responses := contents[2]
	if len(responses.Parts) != 2 {
		t.Fatalf("expected both tool results in one turn, got %d parts", len(responses.Parts))
	}
	first := responses.Parts[0].FunctionResponse
	if first.Name != "cut_scene" || first.Response["success"] != true {
		t.Fatalf("unexpected first function response: %+v", first)
	}
	second := responses.Parts[1].FunctionResponse
	if second.Response["output"] != "not json" {
		t.Fatalf("expected raw output wrapper, got %+v", second.Response)
	}
}

func TestToGenAIRejectsMalformedArguments(t *testing.T) {
	req := Request{Messages: []Message{
		AssistantMessage("", []ToolCall{{ID: "c1", Function: FunctionCall{Name: "cut_scene", Arguments: `{"sceneName":`}}}),
	}}
	if _, _, err := toGenAI(req); err == nil {
		t.Fatalf("expected error for malformed arguments")
	}
}

func TestFromGenAI(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{
					{Text: "thinking", Thought: true},
					{Text: "Adding "},
					{FunctionCall: &genai.FunctionCall{Name: "add_scene", Args: map[string]any{"title": "Dawn"}}},
					{Text: "a scene."},
				},
			},
			FinishReason: genai.FinishReasonStop,
		}},
	}

	out, err := fromGenAI(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg, err := out.FirstMessage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != "Adding a scene." {
		t.Fatalf("unexpected content %q", msg.Content)
	}
	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].ID == "" || msg.ToolCalls[0].Function.Arguments != `{"title":"Dawn"}` {
		t.Fatalf("unexpected tool calls: %+v", msg.ToolCalls)
	}
}

func TestFromGenAINoCandidates(t *testing.T) {
	if _, err := fromGenAI(&genai.GenerateContentResponse{}); !errors.Is(err, ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestImageMIMEType(t *testing.T) {
	tests := map[string]string{
		"https://x/y.png":          "image/png",
		"https://x/y.JPG":          "image/jpeg",
		"https://x/y.webp?token=1": "image/webp",
		"https://x/noext":          "image/jpeg",
	}
	for in, want := range tests {
		if got := imageMIMEType(in); got != want {
			t.Errorf("imageMIMEType(%q) = %q, want %q", in, got, want)
		}
	}
}
