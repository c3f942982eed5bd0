package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icta-labs/lore-cli/internal/core/services"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent question/answer sessions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of sessions to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output sessions as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := openConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := services.NewHistoryRecorder(store).Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No sessions recorded yet.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  [%s]", rec.Timestamp.Local().Format("2006-01-02 15:04"), rec.Routing.Route)
		if rec.Topic != "" {
			cmd.Printf("  (%s)", rec.Topic)
		}
		cmd.Println()
		cmd.Printf("  Q: %s\n", rec.Question)
		cmd.Printf("  A: %s\n", rec.Answer)
		cmd.Println()
	}
	return nil
}
