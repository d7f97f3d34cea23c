package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/progress"
)

var (
	knowledgeDir      string
	knowledgePatterns []string
	knowledgeSkipSeed bool
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the regulatory guidance knowledge base",
}

var knowledgeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge base and persist it to the data directory",
	Long: `Embeds the built-in Amendment 13 guidance articles, plus any markdown
files under --dir, and persists the result so the server and MCP
commands can load it without re-embedding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		embedder, err := createEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		store, err := knowledge.NewStore(embedder)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if !knowledgeSkipSeed {
			fmt.Printf("Embedding %d built-in guidance articles...\n", knowledge.BuiltinCount())
			if err := store.Seed(ctx); err != nil {
				return fmt.Errorf("seeding built-in articles: %w", err)
			}
		}

		if knowledgeDir != "" {
			rep := progress.NewReporter("Indexing guidance")
			n, err := store.IndexDir(ctx, knowledgeDir, knowledgePatterns, rep)
			if err != nil {
				return fmt.Errorf("indexing %s: %w", knowledgeDir, err)
			}
			fmt.Printf("Indexed %d files from %s\n", n, knowledgeDir)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return err
		}
		if err := store.Persist(cfg.DataDir); err != nil {
			return fmt.Errorf("persisting knowledge base: %w", err)
		}
		fmt.Printf("Knowledge base saved (%d articles) to %s\n", store.Count(), cfg.DataDir)
		return nil
	},
}

func init() {
	knowledgeIndexCmd.Flags().StringVarP(&knowledgeDir, "dir", "d", "", "directory of markdown guidance to index")
	knowledgeIndexCmd.Flags().StringSliceVar(&knowledgePatterns, "pattern", nil, "glob patterns to select files (default **/*.md)")
	knowledgeIndexCmd.Flags().BoolVar(&knowledgeSkipSeed, "skip-builtin", false, "do not embed the built-in articles")
	knowledgeCmd.AddCommand(knowledgeIndexCmd)
	rootCmd.AddCommand(knowledgeCmd)
}
