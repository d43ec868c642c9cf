package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"filmcraft/internal/director"
)

func voiceEditCmd(app *commandContext) *cobra.Command {
	var text string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "voice-edit <command>",
		Short: "Apply a spoken edit command to text",
		Long:  "Applies a spoken, possibly chained, edit command to --text, or to stdin when --text is -.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if text == "-" {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				text = strings.TrimRight(string(raw), "\n")
			}
			cfg, err := app.ensureConfig()
			if err != nil {
				return err
			}
			invoker, err := openInvoker(ctx, cfg.LLM, app.logger)
			if err != nil {
				return err
			}
			res, err := director.VoiceEdit(ctx, invoker, cfg.LLM.Model, director.VoiceEditRequest{
				CurrentText: text,
				EditCommand: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.EditedText)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Text to edit, or - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
