package director

import (
	"context"
	"fmt"
	"math"
	"strings"

	"filmcraft/internal/store"
)

const defaultFilmMinutes = 3.0

func (d *Dispatcher) createSceneFromVision(ctx context.Context, inv Invocation, a CreateSceneFromVision) (ActionResult, error) {
	if d.expander == nil {
		return ActionResult{}, errNoExpander
	}
	if strings.TrimSpace(a.Vision) == "" {
		return failed("Describe the scene you want to create"), nil
	}
	project, err := d.store.GetProjectByID(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, fmt.Errorf("loading project: %w", err)
	}
	scenes, err := d.scenes(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, err
	}
	index, ok := insertionIndex(scenes, a.AfterScene)
	if !ok {
		return failed(sceneNotFound(a.AfterScene)), nil
	}

	bp, err := d.expander.ExpandScene(ctx, a.Vision, project, scenes)
	if err != nil {
		return ActionResult{}, err
	}

	var created persistedScene
	err = d.store.WithinTx(ctx, func(tx store.ProjectStore) error {
		var err error
		created, err = persistBlueprint(ctx, tx, inv.ProjectID, index, *bp)
		return err
	})
	if err != nil {
		return ActionResult{}, err
	}

	scene := created.Scene
	return succeeded(
		fmt.Sprintf("Created scene %q at position %d with %d dialogue lines and %d sound effects",
			scene.Title, scene.OrderIndex+1, created.Dialogues, created.SoundEffects),
		map[string]any{
			"sceneId":          scene.ID,
			"title":            scene.Title,
			"orderIndex":       scene.OrderIndex,
			"dialogueCount":    created.Dialogues,
			"soundEffectCount": created.SoundEffects,
		},
	), nil
}

func (d *Dispatcher) generateFullFilm(ctx context.Context, inv Invocation, a GenerateFullFilm) (ActionResult, error) {
	if d.expander == nil {
		return ActionResult{}, errNoExpander
	}
	if strings.TrimSpace(a.Concept) == "" {
		return failed("Give me a concept for the film"), nil
	}
	minutes := defaultFilmMinutes
	if a.DurationMinutes != nil && *a.DurationMinutes > 0 {
		minutes = *a.DurationMinutes
	}
	targetSeconds := int(math.Round(minutes * 60))
	images := a.ImageReferences
	if len(images) == 0 {
		images = inv.ImageURLs
	}

	film, err := d.expander.ExpandFilm(ctx, a.Concept, targetSeconds, images)
	if err != nil {
		return ActionResult{}, err
	}

	project, err := d.store.GetProjectByID(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, fmt.Errorf("loading project: %w", err)
	}
	scenes, err := d.scenes(ctx, inv.ProjectID)
	if err != nil {
		return ActionResult{}, err
	}
	start := nextOrderIndex(scenes)

	var sceneIDs []int64
	total := 0
	err = d.store.WithinTx(ctx, func(tx store.ProjectStore) error {
		for i, bp := range film.Scenes {
			created, err := persistBlueprint(ctx, tx, inv.ProjectID, start+i, bp)
			if err != nil {
				return err
			}
			sceneIDs = append(sceneIDs, created.Scene.ID)
			total += created.Scene.Duration
		}
		if project.Description == "" && film.Logline != "" {
			logline := film.Logline
			if _, err := tx.UpdateProject(ctx, inv.ProjectID, store.ProjectPatch{Description: &logline}); err != nil {
				return fmt.Errorf("updating project: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return ActionResult{}, err
	}

	return succeeded(
		fmt.Sprintf("Generated %q: %d scenes, %ds of a %ds target", film.Title, len(sceneIDs), total, targetSeconds),
		map[string]any{
			"title":          film.Title,
			"logline":        film.Logline,
			"sceneIds":       sceneIDs,
			"sceneCount":     len(sceneIDs),
			"totalDuration":  total,
			"targetDuration": targetSeconds,
		},
	), nil
}
