package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Luxury goods photo authentication service",
		Long: `Verifier drives the photo-based authenticity check for luxury goods.

Each product carries an ordered checklist of required photos. Verifier walks
a session through that checklist, then submits the completed photo set to a
vision LLM (or the mock provider) for an authenticity verdict.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
