package store

import "testing"

func TestVocabularyNormalize(t *testing.T) {
	tests := []struct {
		name  string
		vocab Vocabulary
		input string
		want  string
		ok    bool
	}{
		{name: "exact", vocab: TransitionTypes, input: "fade", want: "fade", ok: true},
		{name: "case and space", vocab: TransitionTypes, input: "  Cross-Dissolve ", want: "cross-dissolve", ok: true},
		{name: "outside domain", vocab: TransitionTypes, input: "spin", ok: false},
		{name: "empty", vocab: Weathers, input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.vocab.Normalize(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDefaultsInsideVocabularies(t *testing.T) {
	if !TransitionTypes.Contains(DefaultSceneTransition) {
		t.Fatalf("expected default transition %q in vocabulary", DefaultSceneTransition)
	}
	if !Lightings.Contains(DefaultSceneLighting) {
		t.Fatalf("expected default lighting %q in vocabulary", DefaultSceneLighting)
	}
	if !Weathers.Contains(DefaultSceneWeather) {
		t.Fatalf("expected default weather %q in vocabulary", DefaultSceneWeather)
	}
	if !SceneStatuses.Contains(DefaultSceneStatus) {
		t.Fatalf("expected default status %q in vocabulary", DefaultSceneStatus)
	}
}

func TestScenePatchEmpty(t *testing.T) {
	if !(ScenePatch{}).Empty() {
		t.Fatalf("expected zero patch to be empty")
	}
	mood := "tense"
	if (ScenePatch{Mood: &mood}).Empty() {
		t.Fatalf("expected patch with mood to be non-empty")
	}
}

func TestLookupVocabulary(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range Vocabularies() {
		if seen[v.Field] {
			t.Fatalf("duplicate vocabulary field %q", v.Field)
		}
		seen[v.Field] = true
		got, ok := LookupVocabulary(v.Field)
		if !ok || len(got.Values) != len(v.Values) {
			t.Fatalf("LookupVocabulary(%q) = %+v, %v", v.Field, got, ok)
		}
	}
	if _, ok := LookupVocabulary("nope"); ok {
		t.Fatalf("expected unknown field to miss")
	}
}
