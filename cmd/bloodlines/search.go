package bloodlines

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nonoumasy/bloodlines"
	"github.com/nonoumasy/bloodlines/pkg/config"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for person entities",
	Long: `Search the knowledge base for person entities matching a free-text
query. Hits that are not humans (ships, paintings, places sharing the
name) are filtered out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := buildLogger(cfg)
	svc := bloodlines.New(nil, cfg, log)
	defer svc.Close()

	query := strings.Join(args, " ")
	hits, err := svc.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Printf("No persons found for %q\n", query)
		return nil
	}

	for _, hit := range hits {
		if hit.Description != "" {
			fmt.Printf("%-12s %s - %s\n", hit.ID, hit.Label, hit.Description)
		} else {
			fmt.Printf("%-12s %s\n", hit.ID, hit.Label)
		}
	}
	return nil
}
