package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/docgen"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/orgs"
	"github.com/mydpo/mydpo/internal/profile"
)

var (
	generateOrg  string
	generateOut  string
	generateHTML bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <document-type>",
	Short: "Generate a compliance document draft",
	Long: `Generates a draft of the given document type from the organization's
profile. When an LLM provider is configured the template draft is
refined by the model; otherwise the plain template output is used.

Document types: ` + strings.Join(documents.TypeNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType := documents.Type(args[0])
		if !docType.Valid() {
			return fmt.Errorf("unknown document type %q", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		ctx := context.Background()
		org, err := orgs.NewStore(database).GetByID(ctx, generateOrg)
		if err != nil {
			return fmt.Errorf("loading organization: %w", err)
		}
		rec, err := profile.NewStore(database).Get(ctx, generateOrg)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}

		provider, err := createLLMProvider(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, generating from template only\n", err)
		}

		content, err := docgen.NewGenerator(provider).Generate(ctx, docType, *org, &rec.Answers)
		if err != nil {
			return err
		}
		if generateHTML {
			content, err = docgen.RenderHTML(content)
			if err != nil {
				return err
			}
		}

		if generateOut == "" || generateOut == "-" {
			fmt.Println(content)
			return nil
		}
		if err := os.WriteFile(generateOut, []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", generateOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOrg, "org", "", "organization id")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file (default stdout)")
	generateCmd.Flags().BoolVar(&generateHTML, "html", false, "render the draft to HTML")
	generateCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(generateCmd)
}
