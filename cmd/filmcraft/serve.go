package main

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filmcraft/internal/mcp"
	"filmcraft/internal/store"
)

func serveCmd(app *commandContext) *cobra.Command {
	var scope scopeFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one project's director tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				d, err := app.newDirector(ctx, st)
				if err != nil {
					return err
				}
				project, err := d.Authorize(ctx, scope.projectID, scope.userID())
				if err != nil {
					return err
				}

				server := mcp.NewServer(
					mcp.Scope{ProjectID: project.ID, UserID: project.UserID},
					d.Registry(), d.Dispatcher(), d, version, app.logger.Named("mcp"),
				)
				app.logger.Info("serving project over stdio",
					zap.Int64("project", project.ID),
					zap.String("title", project.Title),
				)
				return server.Run(ctx, &sdk.StdioTransport{})
			})
		},
	}
	scope.register(cmd)
	return cmd
}
