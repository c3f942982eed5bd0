package cli

import (
	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/adapters/driving/tui"
	"github.com/icta-labs/lore-cli/internal/core/services"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question/answer session",
	Long: `Starts an interactive chat over the indexed corpus.

Commands inside the chat:
  /show  - show the sources of the last answer
  /exit  - leave the chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	generator, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer generator.Close()

	repo, err := openRepository()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ports := &tui.Ports{
		Answer:  newAnswerService(cfg, embedder, generator, repo),
		History: services.NewHistoryRecorder(store),
	}
	return tui.Run(cmd.Context(), ports)
}
