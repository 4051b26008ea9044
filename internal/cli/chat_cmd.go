package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// chatWidth is the wrap width for rendered replies.
const chatWidth = 80

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to the support assistant",
		Long: `Send one message to the support assistant and print its reply.

With no arguments the message is read from a prompt on a terminal, or from
stdin otherwise. Signed-out users get the public assistant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				var err error
				if text, err = readChatMessage(cmd, app); err != nil {
					return err
				}
			}
			if text == "" {
				return fmt.Errorf("nothing to send")
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Thinking...")
			reply, err := app.Chat.Send(cmd.Context(), text)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderMarkdown(reply.Response, chatWidth, !app.interactive()))
			return nil
		},
	}
}

func readChatMessage(cmd *cobra.Command, app *App) (string, error) {
	if app.interactive() {
		var text string
		form := newForm(huh.NewGroup(
			huh.NewText().
				Title("What's on your mind?").
				CharLimit(2000).
				Value(&text),
		))
		if err := runForm(cmd.Context(), form); err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading message: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
