package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

func scenesCmd(app *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Inspect a project's scenes",
	}
	cmd.AddCommand(scenesListCmd(app))
	return cmd
}

func scenesListCmd(app *commandContext) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes in timeline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				if _, err := director.Authorize(ctx, st, scope.projectID, scope.userID()); err != nil {
					return err
				}
				scenes, err := st.GetProjectScenes(ctx, scope.projectID)
				if err != nil {
					return err
				}
				if len(scenes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No scenes yet.")
					return nil
				}
				for _, scene := range scenes {
					fmt.Fprintln(cmd.OutOrStdout(), formatScene(scene))
				}
				return nil
			})
		},
	}
	scope.register(cmd)
	return cmd
}

func formatScene(scene store.Scene) string {
	line := fmt.Sprintf("%d. %s (%ds)", scene.OrderIndex+1, scene.Title, scene.Duration)
	if scene.Status != "" {
		line += " [" + scene.Status + "]"
	}
	if scene.TimeOfDay != "" || scene.Mood != "" {
		line += fmt.Sprintf(" %s/%s", scene.TimeOfDay, scene.Mood)
	}
	return line
}
