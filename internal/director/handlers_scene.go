package director

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"filmcraft/internal/store"
)

func (d *Dispatcher) modifyScene(ctx context.Context, inv Invocation, a ModifyScene) (ActionResult, error) {
	scene, _, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}

	patch := store.ScenePatch{
		Title:              nonBlank(a.Title),
		Description:        a.Description,
		TimeOfDay:          a.TimeOfDay,
		Weather:            a.Weather,
		Lighting:           a.Lighting,
		CameraAngle:        a.CameraAngle,
		Mood:               a.Mood,
		Duration:           a.Duration,
		TransitionType:     a.TransitionType,
		TransitionDuration: a.TransitionDuration,
		ColorGrading:       a.ColorGrading,
		ProductionNotes:    a.ProductionNotes,
		Status:             a.Status,
	}
	if patch.Empty() {
		return failed(fmt.Sprintf("No changes specified for scene %q", scene.Title)), nil
	}

	changes := make(map[string]any)
	noteChange(changes, "title", patch.Title)
	noteChange(changes, "description", patch.Description)
	noteChange(changes, "timeOfDay", patch.TimeOfDay)
	noteChange(changes, "weather", patch.Weather)
	noteChange(changes, "lighting", patch.Lighting)
	noteChange(changes, "cameraAngle", patch.CameraAngle)
	noteChange(changes, "mood", patch.Mood)
	noteChange(changes, "duration", patch.Duration)
	noteChange(changes, "transitionType", patch.TransitionType)
	noteChange(changes, "transitionDuration", patch.TransitionDuration)
	noteChange(changes, "colorGrading", patch.ColorGrading)
	noteChange(changes, "productionNotes", patch.ProductionNotes)
	noteChange(changes, "status", patch.Status)

	updated, err := d.store.UpdateScene(ctx, scene.ID, patch)
	if err != nil {
		return ActionResult{}, fmt.Errorf("updating scene %q: %w", scene.Title, err)
	}

	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return succeeded(
		fmt.Sprintf("Updated scene %q: %s", updated.Title, strings.Join(fields, ", ")),
		map[string]any{"sceneId": updated.ID, "changes": changes},
	), nil
}

func noteChange[T any](changes map[string]any, key string, v *T) {
	if v != nil {
		changes[key] = *v
	}
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func (d *Dispatcher) cutScene(ctx context.Context, inv Invocation, a CutScene) (ActionResult, error) {
	scene, _, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}
	if err := d.store.DeleteScene(ctx, scene.ID); err != nil {
		return ActionResult{}, fmt.Errorf("deleting scene %q: %w", scene.Title, err)
	}
	return succeeded(
		fmt.Sprintf("Cut scene %q", scene.Title),
		map[string]any{"sceneId": scene.ID, "title": scene.Title},
	), nil
}

// insertionIndex maps an afterScene reference onto the OrderIndex of a new
// scene. Existing scenes keep their indexes.
func insertionIndex(scenes []store.Scene, afterScene string) (int, bool) {
	ref := strings.TrimSpace(afterScene)
	switch strings.ToLower(ref) {
	case "start", "beginning":
		return 0, true
	case "", "end":
		return nextOrderIndex(scenes), true
	}
	after, ok := FindScene(scenes, ref)
	if !ok {
		return 0, false
	}
	return after.OrderIndex + 1, true
}

func nextOrderIndex(scenes []store.Scene) int {
	next := 0
	for _, s := range scenes {
		next = max(next, s.OrderIndex+1)
	}
	return next
}

func (d *Dispatcher) addScene(ctx context.Context, inv Invocation, a AddScene) (ActionResult, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return failed("A new scene needs a title"), nil
	}
	scenes, err := d.scenes(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, err
	}
	index, ok := insertionIndex(scenes, a.AfterScene)
	if !ok {
		return failed(sceneNotFound(a.AfterScene)), nil
	}

	duration := store.DefaultSceneDuration
	if a.Duration != nil {
		duration = *a.Duration
	}
	scene, err := d.store.CreateScene(ctx, store.SceneInput{
		ProjectID:      inv.ProjectID,
		OrderIndex:     index,
		Title:          title,
		Description:    a.Description,
		TimeOfDay:      a.TimeOfDay,
		Weather:        orDefault(a.Weather, store.DefaultSceneWeather),
		Lighting:       orDefault(a.Lighting, store.DefaultSceneLighting),
		CameraAngle:    a.CameraAngle,
		Mood:           a.Mood,
		Duration:       duration,
		TransitionType: orDefault(a.TransitionType, store.DefaultSceneTransition),
		Status:         store.DefaultSceneStatus,
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("creating scene %q: %w", title, err)
	}
	return succeeded(
		fmt.Sprintf("Added scene %q at position %d", scene.Title, scene.OrderIndex+1),
		map[string]any{"sceneId": scene.ID, "title": scene.Title, "orderIndex": scene.OrderIndex},
	), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (d *Dispatcher) reorderScenes(ctx context.Context, inv Invocation, a ReorderScenes) (ActionResult, error) {
	scene, scenes, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}

	ids := make([]int64, 0, len(scenes))
	for _, s := range scenes {
		if s.ID != scene.ID {
			ids = append(ids, s.ID)
		}
	}
	position := min(max(a.NewPosition-1, 0), len(scenes)-1)
	ids = slices.Insert(ids, position, scene.ID)

	err = d.store.WithinTx(ctx, func(tx store.ProjectStore) error {
		return tx.ReorderScenes(ctx, inv.ProjectID, ids)
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("reordering scenes: %w", err)
	}
	return succeeded(
		fmt.Sprintf("Moved scene %q to position %d", scene.Title, position+1),
		map[string]any{"sceneId": scene.ID, "newPosition": position + 1, "order": ids},
	), nil
}

func (d *Dispatcher) addDialogue(ctx context.Context, inv Invocation, a AddDialogue) (ActionResult, error) {
	scene, _, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}
	if strings.TrimSpace(a.Line) == "" {
		return failed("Dialogue line is empty"), nil
	}

	existing, err := d.store.GetSceneDialogues(ctx, scene.ID)
	if err != nil {
		return ActionResult{}, fmt.Errorf("loading dialogue for %q: %w", scene.Title, err)
	}
	line, err := d.store.CreateDialogue(ctx, store.DialogueInput{
		SceneID:       scene.ID,
		OrderIndex:    len(existing),
		CharacterName: strings.TrimSpace(a.CharacterName),
		Line:          a.Line,
		Emotion:       a.Emotion,
		Direction:     a.Direction,
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("creating dialogue for %q: %w", scene.Title, err)
	}
	return succeeded(
		fmt.Sprintf("Added dialogue for %s in scene %q", line.CharacterName, scene.Title),
		map[string]any{"sceneId": scene.ID, "dialogueId": line.ID, "orderIndex": line.OrderIndex},
	), nil
}
