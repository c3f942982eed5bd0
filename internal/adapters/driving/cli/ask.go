package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driven"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/core/services"
	"github.com/icta-labs/lore-cli/internal/logger"
)

var (
	askTopK      int
	askMaxTokens int
	askJSON      bool
	askNoRecord  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the index",
	Long: `Retrieves the most similar passages for the question and answers
either grounded in them or, when retrieval quality is too low, with a
context-free fallback.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "how many passages to retrieve")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "maximum answer length in tokens")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full answer as JSON")
	askCmd.Flags().BoolVar(&askNoRecord, "no-history", false, "do not record this exchange")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the JSON shape of one answered question.
type askOutput struct {
	Question string                   `json:"question"`
	Answer   string                   `json:"answer"`
	Routing  domain.RoutingDecision   `json:"routing"`
	Topic    string                   `json:"topic,omitempty"`
	Sources  []domain.RetrievedSource `json:"sources"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

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

	answerSvc := newAnswerService(cfg, embedder, generator, repo)
	answer, err := answerSvc.Ask(cmd.Context(), question, driving.AskOptions{
		TopK:      askTopK,
		MaxTokens: askMaxTokens,
	})
	if err != nil {
		return err
	}

	if !askNoRecord {
		if err := recordExchange(cmd, cfg, question, answer); err != nil {
			// History is best effort; the answer still stands.
			logger.Warn("Recording session failed: %v", err)
		}
	}

	if askJSON {
		return printAskJSON(cmd, question, answer)
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("[%s | mean=%.2f min=%.2f | %d passages]\n",
		answer.Routing.Route, answer.Routing.MeanScore, answer.Routing.MinScore, answer.Routing.ResultCount)
	for i, r := range answer.Results {
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, r.Chunk.SourceID, r.Chunk.Sequence, r.Score)
	}
	return nil
}

func recordExchange(cmd *cobra.Command, cfg driven.ConfigStore, question string, answer domain.Answer) error {
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return services.NewHistoryRecorder(store).Record(cmd.Context(), question, answer)
}

func printAskJSON(cmd *cobra.Command, question string, answer domain.Answer) error {
	out := askOutput{
		Question: question,
		Answer:   answer.Text,
		Routing:  answer.Routing,
		Topic:    answer.Topic,
		Sources:  make([]domain.RetrievedSource, len(answer.Results)),
	}
	for i, r := range answer.Results {
		out.Sources[i] = domain.RetrievedSource{
			SourceID: r.Chunk.SourceID,
			Sequence: r.Chunk.Sequence,
			Score:    r.Score,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
