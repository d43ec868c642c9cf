package llm

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessageMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "plain text",
			msg:  SystemMessage("be brief"),
			want: `{"role":"system","content":"be brief"}`,
		},
		{
			name: "multimodal",
			msg:  UserMessage("like this", "https://cdn.example.com/ref.png"),
			want: `{"role":"user","content":[{"type":"text","text":"like this"},{"type":"image_url","image_url":{"url":"https://cdn.example.com/ref.png"}}]}`,
		},
		{
			name: "assistant tool calls without text",
			msg: AssistantMessage("", []ToolCall{{
				ID: "call_1", Type: "function", Function: FunctionCall{Name: "cut_scene", Arguments: `{"sceneName":"1"}`},
			}}),
			want: `{"role":"assistant","content":null,"tool_calls":[{"id":"call_1","type":"function","function":{"name":"cut_scene","arguments":"{\"sceneName\":\"1\"}"}}]}`,
		},
		{
			name: "tool result",
			msg:  ToolMessage("call_1", "cut_scene", `{"success":true}`),
			want: `{"role":"tool","content":"{\"success\":true}","tool_call_id":"call_1","name":"cut_scene"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.msg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("Marshal = %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestMessageUnmarshalJSON(t *testing.T) {
	t.Run("parts flatten into content", func(t *testing.T) {
		var m Message
		if err := json.Unmarshal([]byte(`{"role":"assistant","content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]}`), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Content != "ab" || len(m.Parts) != 2 {
			t.Fatalf("unexpected message: %+v", m)
		}
	})

	t.Run("null content", func(t *testing.T) {
		var m Message
		if err := json.Unmarshal([]byte(`{"role":"assistant","content":null,"tool_calls":[{"id":"x","type":"function","function":{"name":"get_project_summary","arguments":"{}"}}]}`), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Message{Role: "assistant", ToolCalls: []ToolCall{{ID: "x", Type: "function", Function: FunctionCall{Name: "get_project_summary", Arguments: "{}"}}}}
		if diff := cmp.Diff(want, m); diff != "" {
			t.Fatalf("unexpected message (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects numeric content", func(t *testing.T) {
		var m Message
		if err := json.Unmarshal([]byte(`{"role":"assistant","content":42}`), &m); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestStrictSchema(t *testing.T) {
	rf := StrictSchema("scene", map[string]any{"type": "object"})
	if rf.Type != "json_schema" || rf.JSONSchema == nil || !rf.JSONSchema.Strict || rf.JSONSchema.Name != "scene" {
		t.Fatalf("unexpected response format: %+v", rf)
	}
}
