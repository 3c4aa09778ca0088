package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragu/kaiwa/internal/chat"
	"github.com/ragu/kaiwa/internal/models"
	"github.com/ragu/kaiwa/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with your conversation partner.

Each message is sent on its own; the partner does not carry context
from earlier messages. Type 'exit', 'quit', or press Ctrl+C to end
the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	client, err := newAPIClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	language := getLanguage()
	transcript := chat.NewTranscript(models.GreetingFor(language))
	controller := chat.NewController(transcript, client)

	return tui.RunChat(controller, client.Model())
}
