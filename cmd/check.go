package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/profile"
)

var (
	checkOrg         string
	checkProfilePath string
	checkJSON        bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Derive the compliance action plan for an organization",
	Long: `Runs the derivation engine and prints the resulting action plan,
security level and readiness score.

With --org the profile, documents and incidents are read from the
database. With --profile a standalone profile JSON file is evaluated
instead, without touching the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var summary compliance.Summary

		switch {
		case checkProfilePath != "":
			raw, err := os.ReadFile(checkProfilePath)
			if err != nil {
				return fmt.Errorf("reading profile: %w", err)
			}
			var p profile.Profile
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("parsing profile: %w", err)
			}
			summary = compliance.Derive(&p, nil, nil)

		case checkOrg != "":
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
			s, err := service.Summarize(context.Background(), checkOrg)
			if err != nil {
				return err
			}
			summary = *s

		default:
			return fmt.Errorf("either --org or --profile is required")
		}

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		printSummary(summary)
		return nil
	},
}

func printSummary(s compliance.Summary) {
	fmt.Printf("Security level: %s (%s)\n", s.SecurityLevel, s.SecurityLevelHe)
	fmt.Printf("Readiness score: %d/100\n", s.Score)
	if s.NeedsReporting {
		fmt.Println("Database registration/reporting required:")
		for _, r := range s.ReportingReasons {
			fmt.Printf("  - %s\n", r)
		}
	}
	if s.NeedsCiso {
		fmt.Printf("CISO appointment required: %s\n", s.CisoReason)
	}
	fmt.Printf("\nActions (%d):\n", len(s.Actions))
	for _, a := range s.Actions {
		fmt.Printf("  [%-8s] %-6s %s\n", a.Status, a.Priority, a.Title)
	}
}

func init() {
	checkCmd.Flags().StringVar(&checkOrg, "org", "", "organization id to evaluate")
	checkCmd.Flags().StringVar(&checkProfilePath, "profile", "", "evaluate a profile JSON file instead of the database")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full summary as JSON")
	rootCmd.AddCommand(checkCmd)
}
