package analysis

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a provider for Google Gemini
type Gemini struct{}

// NewGemini returns a new Gemini provider
func NewGemini() *Gemini {
	return &Gemini{}
}

// AnalyzeImages sends the prompt and images to Gemini
func (g *Gemini) AnalyzeImages(ctx context.Context, config Config, images [][]byte) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))

	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(config.Prompt))
	for _, img := range images {
		parts = append(parts, genai.ImageData("jpeg", img))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}
