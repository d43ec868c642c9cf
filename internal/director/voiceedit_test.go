package director

import (
	"context"
	"errors"
	"strings"
	"testing"

	"filmcraft/internal/llm"
)

func TestVoiceEdit(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		command     string
		modelOutput string
		wantText    string
		wantApplied bool
		wantCalls   int
	}{
		{
			name:        "chained edit",
			current:     "The sunrise was beautiful. We walked home.",
			command:     "change beautiful to lovely and delete the last sentence",
			modelOutput: "The sunrise was lovely.",
			wantText:    "The sunrise was lovely.",
			wantApplied: true,
			wantCalls:   1,
		},
		{
			name:        "quoted output",
			current:     "hello world",
			command:     "capitalize hello",
			modelOutput: "  \"Hello world\"\n",
			wantText:    "Hello world",
			wantApplied: true,
			wantCalls:   1,
		},
		{
			name:        "sentinel from model",
			current:     "some notes",
			command:     "wipe the whole thing",
			modelOutput: ClearSentinel,
			wantText:    "",
			wantApplied: true,
			wantCalls:   1,
		},
		{
			name:        "not an edit",
			current:     "keep me",
			command:     "what time is it",
			modelOutput: "keep me",
			wantText:    "keep me",
			wantApplied: false,
			wantCalls:   1,
		},
		{
			name:        "clear all short-circuits",
			current:     "draft text",
			command:     "Clear all.",
			wantText:    "",
			wantApplied: true,
			wantCalls:   0,
		},
		{
			name:      "start over on empty text",
			current:   "",
			command:   "start over",
			wantText:  "",
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &scriptedInvoker{responses: []*llm.Response{textResponse(tt.modelOutput)}}
			got, err := VoiceEdit(context.Background(), inv, "", VoiceEditRequest{CurrentText: tt.current, EditCommand: tt.command})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.EditedText != tt.wantText || got.Applied != tt.wantApplied {
				t.Fatalf("VoiceEdit = %+v, want text %q applied %v", got, tt.wantText, tt.wantApplied)
			}
			if got.Command != strings.TrimSpace(tt.command) {
				t.Fatalf("expected command echoed, got %q", got.Command)
			}
			if inv.calls() != tt.wantCalls {
				t.Fatalf("expected %d model calls, got %d", tt.wantCalls, inv.calls())
			}
		})
	}
}

func TestVoiceEditPrompt(t *testing.T) {
	inv := &scriptedInvoker{responses: []*llm.Response{textResponse("b")}}
	if _, err := VoiceEdit(context.Background(), inv, "edit-model", VoiceEditRequest{CurrentText: "a", EditCommand: "replace a with b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := inv.requests[0]
	if req.Model != "edit-model" || len(req.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if !strings.Contains(req.Messages[0].Content, ClearSentinel) {
		t.Fatalf("expected system prompt to define the clear sentinel")
	}
	if req.Messages[1].Content != "Current text:\na\n\nCommand:\nreplace a with b" {
		t.Fatalf("unexpected user prompt %q", req.Messages[1].Content)
	}
	for _, sep := range []string{`"and"`, `"then"`, `"also"`, "commas", "periods", "in the order spoken", "same text"} {
		if !strings.Contains(req.Messages[0].Content, sep) {
			t.Fatalf("expected system prompt to mention %s", sep)
		}
	}
	if req.Temperature == nil || *req.Temperature != voiceEditTemperature {
		t.Fatalf("expected temperature %v, got %v", voiceEditTemperature, req.Temperature)
	}
}

func TestVoiceEditTemperaturePerCall(t *testing.T) {
	inv := &scriptedInvoker{responses: []*llm.Response{textResponse("x"), textResponse("y")}}
	for range 2 {
		if _, err := VoiceEdit(context.Background(), inv, "", VoiceEditRequest{CurrentText: "a", EditCommand: "fix it"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	first, second := inv.requests[0].Temperature, inv.requests[1].Temperature
	if first == second {
		t.Fatalf("expected each request to carry its own temperature")
	}
	*first = 1
	if *second != voiceEditTemperature {
		t.Fatalf("expected requests not to share temperature, got %v", *second)
	}
}

func TestVoiceEditErrors(t *testing.T) {
	if _, err := VoiceEdit(context.Background(), &scriptedInvoker{}, "", VoiceEditRequest{CurrentText: "x", EditCommand: "  "}); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
	boom := errors.New("timeout")
	if _, err := VoiceEdit(context.Background(), &scriptedInvoker{err: boom}, "", VoiceEditRequest{CurrentText: "x", EditCommand: "fix it"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped model error, got %v", err)
	}
}
