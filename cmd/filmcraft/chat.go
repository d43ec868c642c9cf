package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

func chatCmd(app *commandContext) *cobra.Command {
	var scope scopeFlags
	var images []string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a production command to the director's assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				d, err := app.newDirector(ctx, st)
				if err != nil {
					return err
				}
				reply, err := d.Chat(ctx, director.ChatRequest{
					ProjectID: scope.projectID,
					UserID:    scope.userID(),
					Message:   message,
					ImageURLs: images,
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), reply)
				}
				printReply(cmd.OutOrStdout(), reply)
				return nil
			})
		},
	}
	scope.register(cmd)
	cmd.Flags().StringArrayVar(&images, "image", nil, "Reference image URL (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the reply as JSON")
	return cmd
}

func printReply(w io.Writer, reply *director.Reply) {
	fmt.Fprintln(w, reply.Response)
	if len(reply.Actions) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, action := range reply.Actions {
		mark := "✓"
		if !action.Success {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, action.Type, action.Message)
	}
}

func historyCmd(app *commandContext) *cobra.Command {
	var scope scopeFlags
	var limit int
	var clearChat bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the director chat transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withStore(ctx, func(st store.Store) error {
				if _, err := director.Authorize(ctx, st, scope.projectID, scope.userID()); err != nil {
					return err
				}
				if clearChat {
					n, err := st.ClearProjectChat(ctx, scope.projectID, scope.userID())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d messages.\n", n)
					return nil
				}
				msgs, err := st.GetProjectChatHistory(ctx, scope.projectID, scope.userID(), limit)
				if err != nil {
					return err
				}
				if len(msgs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No messages yet.")
					return nil
				}
				for _, msg := range msgs {
					fmt.Fprintln(cmd.OutOrStdout(), formatMessage(msg))
				}
				return nil
			})
		},
	}
	scope.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", director.DefaultHistoryWindow, "Number of recent messages")
	cmd.Flags().BoolVar(&clearChat, "clear", false, "Delete the transcript instead of printing it")
	return cmd
}

func formatMessage(msg store.ChatMessage) string {
	line := fmt.Sprintf("[%s] %s: %s", msg.CreatedAt.Local().Format("2006-01-02 15:04"), msg.Role, msg.Content)
	if msg.ActionStatus != "" && msg.ActionStatus != store.ActionStatusNone {
		line += fmt.Sprintf(" (%s %s)", msg.ActionType, msg.ActionStatus)
	}
	return line
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
