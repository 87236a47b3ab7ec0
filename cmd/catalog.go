package cmd

import (
	"fmt"

	"github.com/jingjai/verifier/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCatalogCmd() *cobra.Command {
	var catalogPath string
	var backendURL string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products and their photo checklists",
		Long: `Prints the product catalog as YAML: every brand, every product, and the
ordered photo checklist an authentication of that product requires.`,
		Example: `  # Show the builtin catalog
  verifier catalog

  # Show a custom catalog file
  verifier catalog --catalog catalog.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := loadCatalog(catalogPath, backendURL)
			if err != nil {
				return err
			}

			out := struct {
				Brands   []models.Brand        `yaml:"brands"`
				Products []*models.CaptureSpec `yaml:"products"`
			}{
				Brands:   provider.Brands(),
				Products: provider.Products(),
			}

			data, err := yaml.Marshal(&out)
			if err != nil {
				return fmt.Errorf("failed to marshal catalog: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a YAML catalog file (default: builtin catalog)")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "Base URL of a remote catalog backend")

	return cmd
}
