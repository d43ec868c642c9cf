package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"filmcraft/internal/config"
	"filmcraft/internal/store"
	"filmcraft/internal/store/postgres"
	"filmcraft/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		client, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "sqlite":
		client, err := sqlite.New(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func dbCmd(app *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				if err := st.EnsureSchema(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return nil
			})
		},
	})
	return cmd
}
