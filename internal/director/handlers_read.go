package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"filmcraft/internal/store"
)

type projectInfo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

type sceneSnapshot struct {
	Number            int    `json:"number"`
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	TimeOfDay         string `json:"timeOfDay,omitempty"`
	Weather           string `json:"weather,omitempty"`
	Lighting          string `json:"lighting,omitempty"`
	CameraAngle       string `json:"cameraAngle,omitempty"`
	Mood              string `json:"mood,omitempty"`
	Duration          int    `json:"duration"`
	TransitionType    string `json:"transitionType,omitempty"`
	ColorGrading      string `json:"colorGrading,omitempty"`
	Status            string `json:"status,omitempty"`
	DialogueCount     int    `json:"dialogueCount"`
	SoundEffectCount  int    `json:"soundEffectCount"`
	VisualEffectCount int    `json:"visualEffectCount"`
}

// projectSnapshot is what the read-only tools hand back to the model.
type projectSnapshot struct {
	Project              projectInfo     `json:"project"`
	SceneCount           int             `json:"sceneCount"`
	TotalDuration        int             `json:"totalDuration"`
	Characters           []string        `json:"characters"`
	Scenes               []sceneSnapshot `json:"scenes"`
	LibrarySoundEffects  int             `json:"librarySoundEffects"`
	LibraryVisualEffects int             `json:"libraryVisualEffects"`
}

func (d *Dispatcher) snapshot(ctx context.Context, projectID int64) (*projectSnapshot, error) {
	project, err := d.store.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	scenes, err := d.scenes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	characters, err := d.store.GetProjectCharacters(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading characters: %w", err)
	}
	sounds, err := d.store.ListSoundEffectsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading sound effects: %w", err)
	}
	visuals, err := d.store.ListVisualEffectsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading visual effects: %w", err)
	}

	counts, errs := mapBatched(ctx, scenes, d.batchSize, func(ctx context.Context, s store.Scene) (int, error) {
		lines, err := d.store.GetSceneDialogues(ctx, s.ID)
		if err != nil {
			return 0, fmt.Errorf("loading dialogue for scene %d: %w", s.ID, err)
		}
		return len(lines), nil
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	snap := &projectSnapshot{
		Project: projectInfo{
			ID:          project.ID,
			Title:       project.Title,
			Description: project.Description,
			Genre:       project.Genre,
		},
		SceneCount: len(scenes),
		Characters: make([]string, 0, len(characters)),
		Scenes:     make([]sceneSnapshot, 0, len(scenes)),
	}
	for _, c := range characters {
		snap.Characters = append(snap.Characters, c.Name)
	}

	soundsByScene := make(map[int64]int)
	for _, s := range sounds {
		if s.SceneID == nil {
			snap.LibrarySoundEffects++
			continue
		}
		soundsByScene[*s.SceneID]++
	}
	visualsByScene := make(map[int64]int)
	for _, v := range visuals {
		if v.SceneID == nil {
			snap.LibraryVisualEffects++
			continue
		}
		visualsByScene[*v.SceneID]++
	}

	for i, s := range scenes {
		snap.TotalDuration += s.Duration
		snap.Scenes = append(snap.Scenes, sceneSnapshot{
			Number:            s.OrderIndex + 1,
			ID:                s.ID,
			Title:             s.Title,
			Description:       s.Description,
			TimeOfDay:         s.TimeOfDay,
			Weather:           s.Weather,
			Lighting:          s.Lighting,
			CameraAngle:       s.CameraAngle,
			Mood:              s.Mood,
			Duration:          s.Duration,
			TransitionType:    s.TransitionType,
			ColorGrading:      s.ColorGrading,
			Status:            s.Status,
			DialogueCount:     counts[i],
			SoundEffectCount:  soundsByScene[s.ID],
			VisualEffectCount: visualsByScene[s.ID],
		})
	}
	return snap, nil
}

// jsonResult renders v as the message and as actionData.
func jsonResult(v any) (ActionResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return ActionResult{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return ActionResult{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return succeeded(string(raw), data), nil
}

func (d *Dispatcher) getProjectSummary(ctx context.Context, inv Invocation) (ActionResult, error) {
	snap, err := d.snapshot(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, err
	}
	return jsonResult(snap)
}

type improvementBrief struct {
	FocusArea    string           `json:"focusArea"`
	Observations []string         `json:"observations"`
	Project      *projectSnapshot `json:"project"`
}

func (d *Dispatcher) suggestImprovements(ctx context.Context, inv Invocation, a SuggestImprovements) (ActionResult, error) {
	snap, err := d.snapshot(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, err
	}
	return jsonResult(improvementBrief{
		FocusArea:    a.FocusArea,
		Observations: observe(a.FocusArea, snap),
		Project:      snap,
	})
}

const (
	longSceneSeconds  = 120
	shortSceneSeconds = 5
)

// observe lists mechanical findings for the focus area. The model turns them
// into suggestions.
func observe(focus string, snap *projectSnapshot) []string {
	out := []string{}
	if len(snap.Scenes) == 0 {
		return append(out, "The project has no scenes yet.")
	}
	all := focus == "overall"

	if all || focus == "pacing" {
		out = append(out, fmt.Sprintf("Running time is %ds across %d scenes.", snap.TotalDuration, snap.SceneCount))
		for _, s := range snap.Scenes {
			switch {
			case s.Duration > longSceneSeconds:
				out = append(out, fmt.Sprintf("Scene %d %q runs %ds.", s.Number, s.Title, s.Duration))
			case s.Duration < shortSceneSeconds:
				out = append(out, fmt.Sprintf("Scene %d %q is only %ds.", s.Number, s.Title, s.Duration))
			}
		}
		for i := 1; i < len(snap.Scenes); i++ {
			prev, cur := snap.Scenes[i-1], snap.Scenes[i]
			if prev.Mood != "" && prev.Mood == cur.Mood {
				out = append(out, fmt.Sprintf("Scenes %d and %d share the %s mood.", prev.Number, cur.Number, cur.Mood))
			}
		}
	}
	if all || focus == "dialogue" {
		for _, s := range snap.Scenes {
			if s.DialogueCount == 0 {
				out = append(out, fmt.Sprintf("Scene %d %q has no dialogue.", s.Number, s.Title))
			}
		}
	}
	if all || focus == "visuals" {
		for _, s := range snap.Scenes {
			if s.CameraAngle == "" || s.ColorGrading == "" {
				out = append(out, fmt.Sprintf("Scene %d %q has no camera angle or color grading set.", s.Number, s.Title))
			}
		}
		for i := 1; i < len(snap.Scenes); i++ {
			prev, cur := snap.Scenes[i-1], snap.Scenes[i]
			if prev.CameraAngle != "" && prev.CameraAngle == cur.CameraAngle {
				out = append(out, fmt.Sprintf("Scenes %d and %d use the same %s angle.", prev.Number, cur.Number, cur.CameraAngle))
			}
		}
	}
	if all || focus == "sound" {
		for _, s := range snap.Scenes {
			if s.SoundEffectCount == 0 {
				out = append(out, fmt.Sprintf("Scene %d %q has no sound effects.", s.Number, s.Title))
			}
		}
	}
	if all || focus == "story" {
		for _, s := range snap.Scenes {
			if s.Description == "" {
				out = append(out, fmt.Sprintf("Scene %d %q has no description.", s.Number, s.Title))
			}
		}
		if len(snap.Characters) == 0 {
			out = append(out, "No characters are defined.")
		}
	}
	return out
}
