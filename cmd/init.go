package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/config"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/orgs"
	"github.com/mydpo/mydpo/internal/profile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and onboard an organization interactively",
	Long: `Writes a mydpo.yml config file, then runs the onboarding questionnaire
to create an organization and its data-processing profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			if err := cfg.Save(cfgFile); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", cfgFile)
		} else {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
		}

		namePrompt := promptui.Prompt{Label: "Organization name"}
		name, err := namePrompt.Run()
		if err != nil {
			return fmt.Errorf("organization name: %w", err)
		}

		answers, err := profile.RunWizard()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		ctx := context.Background()
		org, err := orgs.NewStore(database).Create(ctx, orgs.Organization{Name: name, Industry: answers.Industry})
		if err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		if err := profile.NewStore(database).Save(ctx, org.ID, *answers); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}

		fmt.Printf("\nOrganization %q created (id: %s).\n", name, org.ID)
		fmt.Printf("Run `mydpo check --org %s` to see your compliance actions.\n", org.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
