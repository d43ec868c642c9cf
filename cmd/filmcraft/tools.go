package main

import (
	"github.com/spf13/cobra"

	"filmcraft/internal/director"
)

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the director's tool definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := director.NewRegistry()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), registry.Tools())
		},
	}
}
