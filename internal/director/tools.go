package director

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"filmcraft/internal/llm"
)

// ToolSpec is one tool offered to the model.
type ToolSpec struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	resolved *jsonschema.Resolved
	decode   func(data []byte) (Action, error)
}

// Registry holds the tool catalogue and turns raw tool calls into Actions.
type Registry struct {
	specs  []*ToolSpec
	byName map[string]*ToolSpec
}

// ErrMalformedArguments marks tool calls whose argument string is not JSON.
var ErrMalformedArguments = errors.New("malformed tool arguments")

func NewRegistry() (*Registry, error) {
	r := &Registry{byName: make(map[string]*ToolSpec)}
	steps := []func(*Registry) error{
		register[AddSoundEffect](ToolAddSoundEffect,
			"Add a sound effect to a scene."),
		register[ModifyScene](ToolModifyScene,
			"Change one or more properties of an existing scene. Only the fields given are changed."),
		register[CutScene](ToolCutScene,
			"Delete a scene from the film."),
		register[AddScene](ToolAddScene,
			"Add a new scene. Without afterScene it is placed at the end."),
		register[ReorderScenes](ToolReorderScenes,
			"Move a scene to a new 1-based position in the running order."),
		register[AddDialogue](ToolAddDialogue,
			"Append a line of dialogue to a scene."),
		register[CreateSceneFromVision](ToolCreateSceneFromVision,
			"Turn a free-form vision into a fully specified scene with dialogue and sound."),
		register[AddVisualEffect](ToolAddVisualEffect,
			"Add a visual effect to a scene."),
		register[GetProjectSummary](ToolGetProjectSummary,
			"Read the project with its scenes, effects, characters and dialogue counts."),
		register[SuggestImprovements](ToolSuggestImprovements,
			"Gather the project snapshot and observations for one focus area so you can suggest improvements."),
		register[GenerateFullFilm](ToolGenerateFullFilm,
			"Generate a complete film from a concept: title, logline and every scene with dialogue and sound."),
	}
	for _, step := range steps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func register[A Action](name, description string) func(*Registry) error {
	return func(r *Registry) error {
		if _, ok := r.byName[name]; ok {
			return fmt.Errorf("tool %s registered twice", name)
		}
		schema, err := schemaFor[A]()
		if err != nil {
			return fmt.Errorf("tool %s: %w", name, err)
		}
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("tool %s: resolving schema: %w", name, err)
		}
		spec := &ToolSpec{
			Name:        name,
			Description: description,
			Schema:      schema,
			resolved:    resolved,
			decode: func(data []byte) (Action, error) {
				var a A
				if err := json.Unmarshal(data, &a); err != nil {
					return nil, err
				}
				return a, nil
			},
		}
		r.specs = append(r.specs, spec)
		r.byName[name] = spec
		return nil
	}
}

// Specs returns the tools in registration order.
func (r *Registry) Specs() []*ToolSpec {
	return append([]*ToolSpec(nil), r.specs...)
}

func (r *Registry) Lookup(name string) (*ToolSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}

// Tools returns the catalogue in chat completions form.
func (r *Registry) Tools() []llm.Tool {
	tools := make([]llm.Tool, 0, len(r.specs))
	for _, spec := range r.specs {
		tools = append(tools, llm.Tool{
			Type: "function",
			Function: llm.FunctionDef{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Schema,
			},
		})
	}
	return tools
}

// Parse decodes a model tool call. Arguments that are not JSON are returned
// as an error wrapping ErrMalformedArguments. Unknown tools and arguments
// that break the tool's schema decode into an InvalidAction.
func (r *Registry) Parse(call llm.ToolCall) (Action, error) {
	raw := strings.TrimSpace(call.Function.Arguments)
	if raw == "" {
		raw = "{}"
	}
	var instance any
	if err := json.Unmarshal([]byte(raw), &instance); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrMalformedArguments, call.Function.Name, err)
	}
	return r.Decode(call.Function.Name, instance)
}

// Decode validates already-decoded arguments against the named tool.
func (r *Registry) Decode(name string, args any) (Action, error) {
	spec, ok := r.byName[name]
	if !ok {
		return InvalidAction{Tool: name, Err: fmt.Errorf("unknown tool %q", name)}, nil
	}
	if args == nil {
		args = map[string]any{}
	}
	if obj, ok := args.(map[string]any); ok {
		args = dropNulls(obj)
	}
	if err := spec.resolved.Validate(args); err != nil {
		return InvalidAction{Tool: name, Err: fmt.Errorf("invalid arguments: %w", err)}, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments for %s: %w", name, err)
	}
	action, err := spec.decode(data)
	if err != nil {
		return InvalidAction{Tool: name, Err: fmt.Errorf("invalid arguments: %w", err)}, nil
	}
	return action, nil
}

// dropNulls removes top-level null members; models send them for omitted
// optional arguments.
func dropNulls(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
