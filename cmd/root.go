package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mydpo",
	Short: "Privacy compliance platform for the Israeli Protection of Privacy Law",
	Long: `MyDPO derives an organization's compliance obligations under the
Protection of Privacy Law (Amendment 13) from its data-processing
profile, tracks the resulting actions, generates the required legal
documents, and serves a DPO assistant grounded on the law.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "mydpo.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
