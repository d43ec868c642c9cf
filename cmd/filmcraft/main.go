package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	app := newCommandContext()

	root := &cobra.Command{
		Use:           "filmcraft",
		Short:         "Conversational editing for film projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.sync()
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", defaultConfigPath, "Project configuration file")
	root.PersistentFlags().StringVar(&app.envPath, "env", ".env", "Environment file with API keys")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(initCmd())
	root.AddCommand(dbCmd(app))
	root.AddCommand(projectCmd(app))
	root.AddCommand(scenesCmd(app))
	root.AddCommand(chatCmd(app))
	root.AddCommand(historyCmd(app))
	root.AddCommand(voiceEditCmd(app))
	root.AddCommand(toolsCmd())
	root.AddCommand(serveCmd(app))
	root.AddCommand(versionCmd())
	return root
}
