package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/export"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/profile"
)

var (
	exportOrg      string
	exportDir      string
	exportPatterns []string
	exportHTML     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an organization's compliance bundle to a directory",
	Long: `Writes the organization's documents, intake profile and current
compliance snapshot into a directory, suitable for handing to an
auditor or the Privacy Protection Authority.`,
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

		docs := documents.NewStore(database)
		profiles := profile.NewStore(database)

		custom, err := compliance.NewCustomEngine()
		if err != nil {
			return err
		}
		service := compliance.NewService(
			profiles,
			docs,
			incidents.NewStore(database),
			compliance.NewRuleStore(database),
			custom,
		)

		exp := export.NewExporter(docs, profiles, service)
		result, err := exp.Export(context.Background(), exportOrg, exportDir, export.Options{
			Patterns: exportPatterns,
			HTML:     exportHTML,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d files to %s\n", len(result.Files), result.Dir)
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOrg, "org", "", "organization id")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "export", "output directory")
	exportCmd.Flags().StringSliceVar(&exportPatterns, "pattern", nil, "glob patterns to select files (default all)")
	exportCmd.Flags().BoolVar(&exportHTML, "html", false, "also render documents to HTML")
	exportCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(exportCmd)
}
