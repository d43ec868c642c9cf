package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

// scopeFlags selects the project a command acts on and who is acting.
type scopeFlags struct {
	projectID int64
	user      string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&f.projectID, "project", "p", 0, "Project ID")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "User ID (defaults to $"+userEnv+")")
	_ = cmd.MarkFlagRequired("project")
}

func (f *scopeFlags) userID() string {
	return currentUser(f.user)
}

func projectCmd(app *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and inspect film projects",
	}
	cmd.AddCommand(projectCreateCmd(app))
	cmd.AddCommand(projectShowCmd(app))
	return cmd
}

func projectCreateCmd(app *commandContext) *cobra.Command {
	var in store.ProjectInput
	var user string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.Title) == "" {
				return fmt.Errorf("--title is required")
			}
			in.UserID = currentUser(user)
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				project, err := st.CreateProject(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %d %q for %s\n", project.ID, project.Title, project.UserID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&in.Genre, "genre", "", "Genre")
	cmd.Flags().StringVarP(&user, "user", "u", "", "User ID (defaults to $"+userEnv+")")
	return cmd
}

func projectShowCmd(app *commandContext) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the project summary the director works from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				result, err := summarize(ctx, app, st, scope)
				if err != nil {
					return err
				}
				payload, err := json.MarshalIndent(result.ActionData, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding summary: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			})
		},
	}
	scope.register(cmd)
	return cmd
}

// summarize runs the read-only summary tool without a model behind it.
func summarize(ctx context.Context, app *commandContext, st store.Store, scope scopeFlags) (director.ActionResult, error) {
	if _, err := director.Authorize(ctx, st, scope.projectID, scope.userID()); err != nil {
		return director.ActionResult{}, err
	}
	dispatcher := director.NewDispatcher(st, nil, director.WithDispatchLogger(app.logger))
	result := dispatcher.Execute(ctx, director.Invocation{
		ID:        uuid.NewString(),
		ProjectID: scope.projectID,
		UserID:    scope.userID(),
	}, director.GetProjectSummary{})
	if !result.Success {
		return director.ActionResult{}, errors.New(result.Message)
	}
	return result, nil
}
