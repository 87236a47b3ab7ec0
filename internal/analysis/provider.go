package analysis

import "context"

// Config represents the configuration for a vision LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a vision-capable LLM provider.
// Images are raw encoded image bytes (jpeg/png); each provider transports
// them the way its API expects.
type Provider interface {
	AnalyzeImages(ctx context.Context, config Config, images [][]byte) (string, error)
}
