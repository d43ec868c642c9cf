package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"filmcraft/internal/llm"
	"filmcraft/internal/store"
)

type DialogueBlueprint struct {
	Character string `json:"character" jsonschema:"name of the speaking character"`
	Line      string `json:"line" jsonschema:"the spoken line"`
	Emotion   string `json:"emotion" jsonschema:"how the line is delivered"`
	Direction string `json:"direction" jsonschema:"stage direction for the actor"`
}

type SoundBlueprint struct {
	Name      string  `json:"name" jsonschema:"what the sound is"`
	Category  string  `json:"category" vocab:"soundCategory"`
	StartTime float64 `json:"startTime" jsonschema:"seconds from the start of the scene"`
	Volume    float64 `json:"volume" jsonschema:"volume between 0 and 1"`
}

// SceneBlueprint is a fully specified scene as produced by the model.
type SceneBlueprint struct {
	Title           string              `json:"title" jsonschema:"scene title"`
	Description     string              `json:"description" jsonschema:"what happens in the scene"`
	TimeOfDay       string              `json:"timeOfDay" vocab:"timeOfDay"`
	Weather         string              `json:"weather" vocab:"weather"`
	Lighting        string              `json:"lighting" vocab:"lighting"`
	CameraAngle     string              `json:"cameraAngle" vocab:"cameraAngle"`
	Mood            string              `json:"mood" vocab:"mood"`
	Duration        int                 `json:"duration" jsonschema:"scene length in seconds"`
	TransitionType  string              `json:"transitionType" vocab:"transitionType"`
	ColorGrading    string              `json:"colorGrading" vocab:"colorGrading"`
	ProductionNotes string              `json:"productionNotes" jsonschema:"notes for the crew"`
	Dialogues       []DialogueBlueprint `json:"dialogues"`
	SoundEffects    []SoundBlueprint    `json:"soundEffects"`
}

type FilmBlueprint struct {
	Title   string           `json:"title" jsonschema:"film title"`
	Logline string           `json:"logline" jsonschema:"one-sentence summary of the film"`
	Scenes  []SceneBlueprint `json:"scenes"`
}

// TargetSceneCount is the number of scenes requested for a film of
// targetSeconds: one per twenty seconds, between 3 and 20.
func TargetSceneCount(targetSeconds int) int {
	n := int(math.Round(float64(targetSeconds) / 20))
	return max(3, min(20, n))
}

// Expander turns a terse idea into a complete production record with one
// schema-constrained model call.
type Expander struct {
	invoker     llm.Invoker
	model       string
	sceneSchema *jsonschema.Schema
	filmSchema  *jsonschema.Schema
}

func NewExpander(invoker llm.Invoker, model string) (*Expander, error) {
	scene, err := schemaFor[SceneBlueprint]()
	if err != nil {
		return nil, err
	}
	film, err := schemaFor[FilmBlueprint]()
	if err != nil {
		return nil, err
	}
	return &Expander{invoker: invoker, model: model, sceneSchema: scene, filmSchema: film}, nil
}

func (e *Expander) ExpandScene(ctx context.Context, vision string, project *store.Project, scenes []store.Scene) (*SceneBlueprint, error) {
	var bp SceneBlueprint
	err := e.expand(ctx, "scene_blueprint", e.sceneSchema,
		sceneExpansionPrompt,
		llm.UserMessage(sceneExpansionMessage(vision, project, scenes)),
		&bp)
	if err != nil {
		return nil, err
	}
	return &bp, nil
}

func (e *Expander) ExpandFilm(ctx context.Context, concept string, targetSeconds int, imageURLs []string) (*FilmBlueprint, error) {
	text := filmExpansionMessage(concept, targetSeconds, TargetSceneCount(targetSeconds), len(imageURLs) > 0)
	var bp FilmBlueprint
	err := e.expand(ctx, "film_blueprint", e.filmSchema,
		filmExpansionPrompt,
		llm.UserMessage(text, imageURLs...),
		&bp)
	if err != nil {
		return nil, err
	}
	if len(bp.Scenes) == 0 {
		return nil, errors.New("expander returned a film without scenes")
	}
	return &bp, nil
}

func (e *Expander) expand(ctx context.Context, name string, schema *jsonschema.Schema, system string, user llm.Message, out any) error {
	resp, err := e.invoker.Invoke(ctx, llm.Request{
		Model:          e.model,
		Messages:       []llm.Message{llm.SystemMessage(system), user},
		ResponseFormat: llm.StrictSchema(name, schema),
	})
	if err != nil {
		return fmt.Errorf("expanding %s: %w", name, err)
	}
	msg, err := resp.FirstMessage()
	if err != nil {
		return fmt.Errorf("expanding %s: %w", name, err)
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return fmt.Errorf("expanding %s: empty response", name)
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// sceneInput maps a blueprint onto a new scene. Values outside a vocabulary
// fall back to the scene defaults.
func (bp SceneBlueprint) sceneInput(projectID int64, orderIndex int) store.SceneInput {
	duration := bp.Duration
	if duration <= 0 {
		duration = store.DefaultSceneDuration
	}
	return store.SceneInput{
		ProjectID:       projectID,
		OrderIndex:      orderIndex,
		Title:           strings.TrimSpace(bp.Title),
		Description:     bp.Description,
		TimeOfDay:       pick(store.TimesOfDay, bp.TimeOfDay, ""),
		Weather:         pick(store.Weathers, bp.Weather, store.DefaultSceneWeather),
		Lighting:        pick(store.Lightings, bp.Lighting, store.DefaultSceneLighting),
		CameraAngle:     pick(store.CameraAngles, bp.CameraAngle, ""),
		Mood:            pick(store.Moods, bp.Mood, ""),
		Duration:        duration,
		TransitionType:  pick(store.TransitionTypes, bp.TransitionType, store.DefaultSceneTransition),
		ColorGrading:    pick(store.ColorGradings, bp.ColorGrading, ""),
		ProductionNotes: bp.ProductionNotes,
		Status:          store.DefaultSceneStatus,
	}
}

func pick(v store.Vocabulary, value, fallback string) string {
	if normalized, ok := v.Normalize(value); ok {
		return normalized
	}
	return fallback
}

type persistedScene struct {
	Scene        *store.Scene
	Dialogues    int
	SoundEffects int
}

// persistBlueprint writes the scene, then its dialogue lines, then its sound
// effects. Callers run it inside a transaction.
func persistBlueprint(ctx context.Context, ps store.ProjectStore, projectID int64, orderIndex int, bp SceneBlueprint) (persistedScene, error) {
	scene, err := ps.CreateScene(ctx, bp.sceneInput(projectID, orderIndex))
	if err != nil {
		return persistedScene{}, fmt.Errorf("creating scene %q: %w", bp.Title, err)
	}
	out := persistedScene{Scene: scene}

	for _, d := range bp.Dialogues {
		if strings.TrimSpace(d.Line) == "" {
			continue
		}
		_, err := ps.CreateDialogue(ctx, store.DialogueInput{
			SceneID:       scene.ID,
			OrderIndex:    out.Dialogues,
			CharacterName: d.Character,
			Line:          d.Line,
			Emotion:       d.Emotion,
			Direction:     d.Direction,
		})
		if err != nil {
			return out, fmt.Errorf("creating dialogue for %q: %w", bp.Title, err)
		}
		out.Dialogues++
	}

	sceneID := scene.ID
	for _, sfx := range bp.SoundEffects {
		_, err := ps.CreateSoundEffect(ctx, store.SoundEffectInput{
			ProjectID: projectID,
			SceneID:   &sceneID,
			Name:      sfx.Name,
			Category:  pick(store.SoundCategories, sfx.Category, "ambient"),
			StartTime: math.Max(0, sfx.StartTime),
			Volume:    clamp01(sfx.Volume),
		})
		if err != nil {
			return out, fmt.Errorf("creating sound effect for %q: %w", bp.Title, err)
		}
		out.SoundEffects++
	}
	return out, nil
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
