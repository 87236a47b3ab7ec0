package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jingjai/verifier/internal/analysis"
	"github.com/jingjai/verifier/internal/capture"
	"github.com/jingjai/verifier/internal/export"
	"github.com/jingjai/verifier/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVerifyCmd() *cobra.Command {
	var productID string
	var photosDir string
	var serviceType string
	var provider string
	var model string
	var savePath string
	var catalogPath string
	var backendURL string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run a full verification from a directory of photos",
		Long: `Runs the capture workflow end to end without the API: walks the
product's photo checklist, resolving each slot from a directory of image
files named <slot-id>.jpg (or .jpeg/.png/.gif), then submits the completed
set for authenticity analysis and prints the report.`,
		Example: `  # Verify an Attica bag using photos in ./photos
  verifier verify --product attica-bag --photos ./photos

  # Use a real provider and save the result for later export
  verifier verify --product attica-bag --photos ./photos --provider gemini --save verifications.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			productCatalog, err := loadCatalog(catalogPath, backendURL)
			if err != nil {
				return err
			}

			spec, err := productCatalog.Spec(productID)
			if err != nil {
				return fmt.Errorf("unknown product %q: %w", productID, err)
			}

			session, err := capture.NewSession(spec)
			if err != nil {
				return fmt.Errorf("cannot start this authentication: %w", err)
			}

			src := capture.DirSource{Dir: photosDir}
			var missing []string
			for _, slot := range spec.Slots {
				err := session.Capture(cmd.Context(), src, capture.SourceGallery, slot.ID)
				if err != nil {
					if errors.Is(err, capture.ErrCancelled) {
						missing = append(missing, slot.ID)
						continue
					}
					return fmt.Errorf("failed to capture slot %s: %w", slot.ID, err)
				}
				slog.Info("Captured photo", "slot", slot.ID, "filled", session.FilledCount(), "remaining", session.Remaining())
			}

			if !session.ReadyToSubmit() {
				return fmt.Errorf("missing photos for slots: %s (place <slot-id>.jpg files in %s)",
					strings.Join(missing, ", "), photosDir)
			}

			createdAt := time.Now()
			sink := analysis.NewService(provider, model)
			report, err := session.Submit(cmd.Context(), sink)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			data, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			cmd.Print(string(data))

			if savePath != "" {
				submittedAt := time.Now()
				records := export.FromSessions([]*storage.StoredSession{{
					ID:          uuid.New().String(),
					ServiceType: serviceType,
					CreatedAt:   createdAt,
					SubmittedAt: &submittedAt,
					Session:     session,
					Report:      report,
				}})
				for _, record := range records {
					if err := export.AppendJSONL(savePath, record); err != nil {
						return err
					}
				}
				slog.Info("Saved verification result", "path", savePath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&productID, "product", "", "Product id to authenticate (required)")
	cmd.Flags().StringVar(&photosDir, "photos", "", "Directory containing one image per slot (required)")
	cmd.Flags().StringVar(&serviceType, "service-type", "basic", "Service tier recorded with the result")
	cmd.Flags().StringVar(&provider, "provider", "", "Analysis provider: mock, ollama, openai, or gemini")
	cmd.Flags().StringVar(&model, "model", "", "Analysis model override")
	cmd.Flags().StringVar(&savePath, "save", "", "Append the result to a JSONL results file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a YAML catalog file (default: builtin catalog)")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "Base URL of a remote catalog backend")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("photos")

	return cmd
}
