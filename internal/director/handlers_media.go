package director

import (
	"context"
	"fmt"
	"strings"

	"filmcraft/internal/store"
)

func (d *Dispatcher) addSoundEffect(ctx context.Context, inv Invocation, a AddSoundEffect) (ActionResult, error) {
	scene, _, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}

	volume := store.DefaultSoundVolume
	if a.Volume != nil {
		volume = *a.Volume
	}
	startTime := store.DefaultSoundStartTime
	if a.StartTime != nil {
		startTime = *a.StartTime
	}
	sceneID := scene.ID
	sfx, err := d.store.CreateSoundEffect(ctx, store.SoundEffectInput{
		ProjectID: inv.ProjectID,
		SceneID:   &sceneID,
		Name:      strings.TrimSpace(a.SoundName),
		Category:  a.Category,
		StartTime: startTime,
		Volume:    volume,
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("creating sound effect: %w", err)
	}
	return succeeded(
		fmt.Sprintf("Added %s sound %q to scene %q", sfx.Category, sfx.Name, scene.Title),
		map[string]any{
			"sceneId":       scene.ID,
			"soundEffectId": sfx.ID,
			"name":          sfx.Name,
			"category":      sfx.Category,
			"volume":        sfx.Volume,
			"startTime":     sfx.StartTime,
		},
	), nil
}

func (d *Dispatcher) addVisualEffect(ctx context.Context, inv Invocation, a AddVisualEffect) (ActionResult, error) {
	scene, _, ok, err := d.resolveScene(ctx, inv.ProjectID, a.SceneName)
	if err != nil {
		return ActionResult{}, err
	}
	if !ok {
		return failed(sceneNotFound(a.SceneName)), nil
	}

	in := store.VisualEffectInput{
		ProjectID: inv.ProjectID,
		Name:      strings.TrimSpace(a.EffectName),
		Category:  a.Category,
		Intensity: store.DefaultVisualIntensity,
		Duration:  store.DefaultVisualDuration,
		StartTime: store.DefaultVisualStartTime,
		ColorTint: strings.TrimSpace(a.ColorTint),
	}
	sceneID := scene.ID
	in.SceneID = &sceneID
	if a.Intensity != nil {
		in.Intensity = *a.Intensity
	}
	if a.Duration != nil {
		in.Duration = *a.Duration
	}
	if a.StartTime != nil {
		in.StartTime = *a.StartTime
	}

	vfx, err := d.store.CreateVisualEffect(ctx, in)
	if err != nil {
		return ActionResult{}, fmt.Errorf("creating visual effect: %w", err)
	}
	return succeeded(
		fmt.Sprintf("Added %s effect %q to scene %q", vfx.Category, vfx.Name, scene.Title),
		map[string]any{
			"sceneId":        scene.ID,
			"visualEffectId": vfx.ID,
			"name":           vfx.Name,
			"category":       vfx.Category,
			"intensity":      vfx.Intensity,
			"duration":       vfx.Duration,
			"startTime":      vfx.StartTime,
		},
	), nil
}
