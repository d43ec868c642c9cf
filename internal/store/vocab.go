package store

import "strings"

// Vocabulary is an enumerated domain for one scene or effect field. The
// director's tool schemas are generated from these values, so a value added
// here is offered to the model and accepted by the dispatcher at once.
type Vocabulary struct {
	Field  string
	Values []string
}

func (v Vocabulary) Contains(value string) bool {
	for _, allowed := range v.Values {
		if allowed == value {
			return true
		}
	}
	return false
}

// Normalize lowercases and trims value, returning the canonical entry or
// false when the value is outside the vocabulary.
func (v Vocabulary) Normalize(value string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if v.Contains(value) {
		return value, true
	}
	return "", false
}

// Enum returns the values in the form JSON Schema expects.
func (v Vocabulary) Enum() []any {
	out := make([]any, len(v.Values))
	for i, value := range v.Values {
		out[i] = value
	}
	return out
}

var (
	TimesOfDay = Vocabulary{
		Field:  "timeOfDay",
		Values: []string{"dawn", "morning", "noon", "afternoon", "golden-hour", "dusk", "night", "midnight"},
	}
	Weathers = Vocabulary{
		Field:  "weather",
		Values: []string{"clear", "cloudy", "overcast", "rainy", "stormy", "snowy", "foggy", "windy"},
	}
	Lightings = Vocabulary{
		Field:  "lighting",
		Values: []string{"natural", "golden", "soft", "harsh", "dramatic", "low-key", "high-key", "neon", "candlelight", "moonlight"},
	}
	CameraAngles = Vocabulary{
		Field: "cameraAngle",
		Values: []string{
			"wide", "establishing", "medium", "close-up", "extreme-close-up", "over-the-shoulder",
			"pov", "low-angle", "high-angle", "aerial", "dutch", "tracking",
		},
	}
	Moods = Vocabulary{
		Field: "mood",
		Values: []string{
			"neutral", "tense", "joyful", "melancholic", "mysterious", "romantic",
			"suspenseful", "peaceful", "chaotic", "hopeful", "eerie", "triumphant",
		},
	}
	TransitionTypes = Vocabulary{
		Field:  "transitionType",
		Values: []string{"cut", "fade", "dissolve", "wipe", "iris", "cross-dissolve"},
	}
	ColorGradings = Vocabulary{
		Field:  "colorGrading",
		Values: []string{"natural", "warm", "cool", "desaturated", "vintage", "noir", "vibrant", "teal-orange", "sepia"},
	}
	SceneStatuses = Vocabulary{
		Field:  "status",
		Values: []string{"draft", "in-progress", "review", "final"},
	}
	SoundCategories = Vocabulary{
		Field:  "soundCategory",
		Values: []string{"ambient", "foley", "music", "sfx", "voice", "nature", "mechanical", "impact"},
	}
	VisualEffectCategories = Vocabulary{
		Field:  "vfxCategory",
		Values: []string{"particles", "lighting", "weather", "distortion", "color", "overlay", "explosion", "magic", "transition"},
	}
	FocusAreas = Vocabulary{
		Field:  "focusArea",
		Values: []string{"pacing", "dialogue", "visuals", "sound", "story", "overall"},
	}
)

const (
	DefaultSceneDuration   = 30
	DefaultSceneTransition = "cut"
	DefaultSceneLighting   = "natural"
	DefaultSceneWeather    = "clear"
	DefaultSceneStatus     = "draft"
	DefaultSoundVolume     = 0.8
	DefaultSoundStartTime  = 0.0
	DefaultVisualIntensity = 0.7
	DefaultVisualDuration  = 3.0
	DefaultVisualStartTime = 0.0
)

var vocabularies = []Vocabulary{
	TimesOfDay, Weathers, Lightings, CameraAngles, Moods, TransitionTypes,
	ColorGradings, SceneStatuses, SoundCategories, VisualEffectCategories, FocusAreas,
}

// Vocabularies returns every enumerated domain.
func Vocabularies() []Vocabulary {
	return append([]Vocabulary(nil), vocabularies...)
}

func LookupVocabulary(field string) (Vocabulary, bool) {
	for _, v := range vocabularies {
		if v.Field == field {
			return v, true
		}
	}
	return Vocabulary{}, false
}
