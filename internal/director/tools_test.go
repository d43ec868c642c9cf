package director

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/jsonschema-go/jsonschema"

	"filmcraft/internal/llm"
	"filmcraft/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestRegistryCatalogue(t *testing.T) {
	r := newTestRegistry(t)
	var names []string
	for _, spec := range r.Specs() {
		names = append(names, spec.Name)
		if spec.Description == "" {
			t.Errorf("tool %s has no description", spec.Name)
		}
		if spec.Schema.Type != "object" {
			t.Errorf("tool %s schema type = %q, want object", spec.Name, spec.Schema.Type)
		}
	}
	want := []string{
		ToolAddSoundEffect, ToolModifyScene, ToolCutScene, ToolAddScene, ToolReorderScenes,
		ToolAddDialogue, ToolCreateSceneFromVision, ToolAddVisualEffect, ToolGetProjectSummary,
		ToolSuggestImprovements, ToolGenerateFullFilm,
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected tools (-want +got):\n%s", diff)
	}

	tools := r.Tools()
	if len(tools) != len(want) || tools[0].Type != "function" || tools[0].Function.Parameters == nil {
		t.Fatalf("unexpected llm tools: %+v", tools[0])
	}
}

// Every vocab-tagged field must offer exactly the store vocabulary.
func TestSchemaEnumsMirrorVocabulary(t *testing.T) {
	r := newTestRegistry(t)
	types := map[string]reflect.Type{
		ToolAddSoundEffect:        reflect.TypeFor[AddSoundEffect](),
		ToolModifyScene:           reflect.TypeFor[ModifyScene](),
		ToolAddScene:              reflect.TypeFor[AddScene](),
		ToolAddVisualEffect:       reflect.TypeFor[AddVisualEffect](),
		ToolSuggestImprovements:   reflect.TypeFor[SuggestImprovements](),
		ToolCutScene:              reflect.TypeFor[CutScene](),
		ToolReorderScenes:         reflect.TypeFor[ReorderScenes](),
		ToolAddDialogue:           reflect.TypeFor[AddDialogue](),
		ToolCreateSceneFromVision: reflect.TypeFor[CreateSceneFromVision](),
		ToolGetProjectSummary:     reflect.TypeFor[GetProjectSummary](),
		ToolGenerateFullFilm:      reflect.TypeFor[GenerateFullFilm](),
	}
	checked := 0
	for _, spec := range r.Specs() {
		typ, ok := types[spec.Name]
		if !ok {
			t.Fatalf("no type registered in test for %s", spec.Name)
		}
		checked += assertVocabEnums(t, spec.Name, spec.Schema, typ)
	}
	if checked < 10 {
		t.Fatalf("expected vocab fields across tools, checked %d", checked)
	}

	scene, err := schemaFor[SceneBlueprint]()
	if err != nil {
		t.Fatalf("schemaFor: %v", err)
	}
	assertVocabEnums(t, "scene blueprint", scene, reflect.TypeFor[SceneBlueprint]())
	assertVocabEnums(t, "sound blueprint", scene.Properties["soundEffects"].Items, reflect.TypeFor[SoundBlueprint]())
}

func assertVocabEnums(t *testing.T, tool string, schema *jsonschema.Schema, typ reflect.Type) int {
	t.Helper()
	n := 0
	for _, f := range reflect.VisibleFields(typ) {
		field, ok := f.Tag.Lookup("vocab")
		if !ok {
			continue
		}
		vocab, ok := store.LookupVocabulary(field)
		if !ok {
			t.Fatalf("%s.%s: unknown vocabulary %q", tool, f.Name, field)
		}
		prop := schema.Properties[jsonName(f)]
		if prop == nil {
			t.Fatalf("%s: missing property for %s", tool, f.Name)
		}
		if diff := cmp.Diff(vocab.Enum(), prop.Enum); diff != "" {
			t.Errorf("%s.%s enum mismatch (-vocab +schema):\n%s", tool, jsonName(f), diff)
		}
		n++
	}
	return n
}

func TestSchemaShape(t *testing.T) {
	r := newTestRegistry(t)

	sound, _ := r.Lookup(ToolAddSoundEffect)
	required := slices.Clone(sound.Schema.Required)
	slices.Sort(required)
	if diff := cmp.Diff([]string{"category", "sceneName", "soundName"}, required); diff != "" {
		t.Fatalf("unexpected required (-want +got):\n%s", diff)
	}
	volume := sound.Schema.Properties["volume"]
	if volume.Type != "number" || len(volume.Types) != 0 {
		t.Fatalf("expected optional volume to be a plain number, got %q %v", volume.Type, volume.Types)
	}
	if volume.Minimum == nil || *volume.Minimum != 0 || volume.Maximum == nil || *volume.Maximum != 1 {
		t.Fatalf("expected volume bounds 0..1, got %v %v", volume.Minimum, volume.Maximum)
	}

	modify, _ := r.Lookup(ToolModifyScene)
	if got := modify.Schema.Properties["duration"].Type; got != "integer" {
		t.Fatalf("expected duration integer, got %q", got)
	}
	if got := modify.Schema.Required; len(got) != 1 || got[0] != "sceneName" {
		t.Fatalf("expected only sceneName required, got %v", got)
	}

	film, _ := r.Lookup(ToolGenerateFullFilm)
	if refs := film.Schema.Properties["imageReferences"]; refs.Type != "array" || refs.Items == nil || refs.Items.Type != "string" {
		t.Fatalf("unexpected imageReferences schema: %+v", refs)
	}
}

func TestBlueprintSchemasAreStrict(t *testing.T) {
	film, err := schemaFor[FilmBlueprint]()
	if err != nil {
		t.Fatalf("schemaFor: %v", err)
	}
	scene := film.Properties["scenes"].Items
	if scene == nil {
		t.Fatalf("expected scenes items schema")
	}
	for _, s := range []*jsonschema.Schema{film, scene, scene.Properties["dialogues"].Items, scene.Properties["soundEffects"].Items} {
		if len(s.Required) != len(s.Properties) {
			t.Fatalf("expected every property required, got %v of %d", s.Required, len(s.Properties))
		}
		if s.AdditionalProperties == nil {
			t.Fatalf("expected additionalProperties false")
		}
	}
	if film.Properties["scenes"].Type != "array" {
		t.Fatalf("expected scenes to be a plain array, got %q %v", film.Properties["scenes"].Type, film.Properties["scenes"].Types)
	}
}

func TestRegistryParse(t *testing.T) {
	r := newTestRegistry(t)
	parse := func(name, args string) (Action, error) {
		return r.Parse(llm.ToolCall{ID: "c1", Type: "function", Function: llm.FunctionCall{Name: name, Arguments: args}})
	}

	t.Run("typed action", func(t *testing.T) {
		got, err := parse(ToolAddSoundEffect, `{"sceneName":"2","soundName":"thunder","category":"nature","volume":0.5}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := AddSoundEffect{SceneName: "2", SoundName: "thunder", Category: "nature", Volume: ptr(0.5)}
		if diff := cmp.Diff(Action(want), got); diff != "" {
			t.Fatalf("unexpected action (-want +got):\n%s", diff)
		}
	})

	t.Run("null optionals are dropped", func(t *testing.T) {
		got, err := parse(ToolModifyScene, `{"sceneName":"1","mood":"tense","lighting":null}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m, ok := got.(ModifyScene)
		if !ok || m.Lighting != nil || m.Mood == nil || *m.Mood != "tense" {
			t.Fatalf("unexpected action: %#v", got)
		}
	})

	t.Run("empty arguments", func(t *testing.T) {
		got, err := parse(ToolGetProjectSummary, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.(GetProjectSummary); !ok {
			t.Fatalf("expected GetProjectSummary, got %#v", got)
		}
	})

	t.Run("malformed json is an error", func(t *testing.T) {
		_, err := parse(ToolCutScene, `{"sceneName":`)
		if !errors.Is(err, ErrMalformedArguments) {
			t.Fatalf("expected ErrMalformedArguments, got %v", err)
		}
	})

	invalid := []struct {
		name string
		tool string
		args string
	}{
		{name: "unknown tool", tool: "launch_rocket", args: `{}`},
		{name: "value outside vocabulary", tool: ToolModifyScene, args: `{"sceneName":"1","transitionType":"spin"}`},
		{name: "missing required", tool: ToolCutScene, args: `{}`},
		{name: "unknown property", tool: ToolCutScene, args: `{"sceneName":"1","force":true}`},
		{name: "volume above range", tool: ToolAddSoundEffect, args: `{"sceneName":"1","soundName":"x","category":"sfx","volume":3}`},
		{name: "fractional position", tool: ToolReorderScenes, args: `{"sceneName":"1","newPosition":1.5}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(tt.tool, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ia, ok := got.(InvalidAction)
			if !ok {
				t.Fatalf("expected InvalidAction, got %#v", got)
			}
			if ia.ToolName() != tt.tool || ia.Err == nil {
				t.Fatalf("unexpected invalid action: %+v", ia)
			}
		})
	}
}
