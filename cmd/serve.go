package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/mcp"
	"github.com/mydpo/mydpo/internal/profile"
	"github.com/mydpo/mydpo/internal/requests"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve compliance tools over MCP on stdio",
	Long: `Exposes the compliance summary, action list, guidance search and
overdue rights requests as MCP tools on stdin/stdout, for use by
MCP-capable agents and editors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		custom, err := compliance.NewCustomEngine()
		if err != nil {
			return err
		}
		service := compliance.NewService(
			profile.NewStore(database),
			documents.NewStore(database),
			incidents.NewStore(database),
			compliance.NewRuleStore(database),
			custom,
		)

		// Knowledge search is optional; the tool is simply not registered
		// when no knowledge base has been built.
		kb, err := loadKnowledgeBase(cfg)
		if err != nil {
			kb = nil
		}

		mcp.Version = Version
		return mcp.NewServer(service, kb, requests.NewStore(database)).Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
