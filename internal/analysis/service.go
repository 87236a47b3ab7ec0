// Package analysis is the downstream sink for completed photo sets: it
// forwards them to a vision LLM (or the mock provider) and parses the
// verdict into an AnalysisReport.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jingjai/verifier/internal/models"
)

// Service routes completed photo sets to the configured provider.
type Service struct {
	provider string
	model    string
	mock     *Mock
}

// NewService creates an analysis service. Empty provider/model fall back
// to VERIFIER_PROVIDER / per-provider model env vars, then to defaults.
func NewService(provider, model string) *Service {
	return &Service{provider: provider, model: model, mock: NewMock()}
}

func (s *Service) resolveProvider() string {
	if s.provider != "" {
		return s.provider
	}
	if p := os.Getenv("VERIFIER_PROVIDER"); p != "" {
		return p
	}
	return "mock"
}

func (s *Service) resolveModel(provider string) string {
	if s.model != "" {
		return s.model
	}
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	default:
		return ""
	}
}

// Analyze implements the capture workflow's submission sink. The photos
// map is slot id to local file path; the caller guarantees it is complete.
func (s *Service) Analyze(ctx context.Context, productID, itemName string, photos map[string]string) (*models.AnalysisReport, error) {
	provider := s.resolveProvider()
	if provider == "mock" {
		return s.mock.Analyze(ctx, productID, itemName, photos)
	}

	model := s.resolveModel(provider)

	var backend Provider
	switch provider {
	case "openai":
		backend = NewOpenAI()
	case "ollama":
		backend = NewOllama()
	case "gemini":
		backend = NewGemini()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	// Stable slot order so the prompt's photo numbering is deterministic.
	slotIDs := make([]string, 0, len(photos))
	for slotID := range photos {
		slotIDs = append(slotIDs, slotID)
	}
	sort.Strings(slotIDs)

	images := make([][]byte, 0, len(photos))
	for _, slotID := range slotIDs {
		data, err := os.ReadFile(photos[slotID])
		if err != nil {
			return nil, fmt.Errorf("failed to read photo for slot %s: %w", slotID, err)
		}
		images = append(images, data)
	}

	config := Config{
		Model:       model,
		Temperature: 0.1,
		Prompt:      buildAuthenticityPrompt(itemName, slotIDs),
	}

	slog.Info("Submitting photos for analysis", "product", productID, "provider", provider, "model", model, "photos", len(images))

	response, err := backend.AnalyzeImages(ctx, config, images)
	if err != nil {
		return nil, fmt.Errorf("analysis provider failed: %w", err)
	}

	report := extractReportFromResponse(response)
	report.Provider = provider
	report.Model = model
	slog.Info("Analysis complete", "product", productID, "status", report.Status, "score", report.Score)
	return report, nil
}

// buildAuthenticityPrompt generates the authentication prompt for a photo set
func buildAuthenticityPrompt(itemName string, slotIDs []string) string {
	return fmt.Sprintf(`You are an expert luxury goods authenticator with over 20 years of experience verifying designer handbags and accessories. You are recognized internationally for your expertise in detecting counterfeits and have trained countless authenticators.

Your task is to examine the attached photographs of a "%s" and assess whether the item is authentic.

The photographs are provided in this order, one per required checkpoint: %s.

INSTRUCTIONS:
1. Examine each photograph carefully for indicators of authenticity:
   - Material quality, texture, and grain
   - Hardware finish, weight appearance, and engravings
   - Stitching uniformity, spacing, and thread quality
   - Logos, labels, serial numbers, and date codes (font, placement, format)
   - Overall construction and proportions

2. Score each checkpoint from 0 to 100 and mark it "Pass" or "Fail".

3. Give an overall verdict: "Authentic", "Counterfeit", or "Inconclusive",
   with an overall score from 0 to 100 and a short summary.

OUTPUT FORMAT:
Respond with ONLY a JSON object in the following format:

{
  "status": "Authentic",
  "score": 98.7,
  "summary": "Brief overall assessment",
  "checks": [
    {"name": "materialAnalysis", "score": 99.2, "status": "Pass", "notes": "..."},
    {"name": "hardwareCheck", "score": 97.5, "status": "Pass", "notes": "..."},
    {"name": "stitchingQuality", "score": 98.9, "status": "Pass", "notes": "..."},
    {"name": "serialVerification", "score": 99.5, "status": "Pass", "notes": "..."}
  ]
}

Do not invent details you cannot see in the photographs. If image quality prevents assessment of a checkpoint, mark it "Fail" with a note and lean toward "Inconclusive" overall.`,
		itemName,
		strings.Join(slotIDs, ", "),
	)
}

// extractReportFromResponse parses the JSON response into a report.
// Falls back to an Inconclusive report wrapping the raw output if the
// LLM did not return proper JSON.
func extractReportFromResponse(response string) *models.AnalysisReport {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(response), &report); err != nil {
		slog.Warn("Failed to parse JSON response, using raw output", "error", err)
		return &models.AnalysisReport{
			Status:  "Inconclusive",
			Summary: response,
		}
	}

	if report.Status == "" {
		slog.Warn("JSON parsed but status field is empty, marking inconclusive")
		report.Status = "Inconclusive"
		if report.Summary == "" {
			report.Summary = response
		}
	}

	return &report
}
