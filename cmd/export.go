package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jingjai/verifier/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert saved verification results to Parquet or YAML",
		Long: `Reads a JSON-lines results file (as written by "verify --save") and
writes it out as a Parquet or YAML dataset.`,
		Example: `  # Export to Parquet
  verifier export --input verifications.jsonl --output verifications.parquet

  # Export to YAML
  verifier export --input verifications.jsonl --output verifications.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := export.ReadJSONL(inputPath)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				slog.Warn("No records found in results file", "path", inputPath)
			}

			switch format {
			case "parquet":
				return export.WriteParquet(outputPath, records)
			case "yaml":
				return export.WriteYAML(outputPath, records)
			default:
				return fmt.Errorf("unsupported format %q: use parquet or yaml", format)
			}
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "verifications.jsonl", "JSONL results file to read")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "verifications.parquet", "Output file path")
	cmd.Flags().StringVar(&format, "format", "parquet", "Output format: parquet or yaml")

	return cmd
}
