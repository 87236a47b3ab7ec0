package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Ollama is a provider for Ollama
type Ollama struct{}

// NewOllama returns a new Ollama provider
func NewOllama() *Ollama {
	return &Ollama{}
}

// AnalyzeImages sends the prompt and images to Ollama's generate API
func (o *Ollama) AnalyzeImages(ctx context.Context, config Config, images [][]byte) (string, error) {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = os.Getenv("OLLAMA_HOST")
	}
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	url := ollamaURL + "/api/generate"

	encoded := make([]string, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(img))
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  config.Model,
		"prompt": config.Prompt,
		"images": encoded,
		"stream": false,
		"format": "json",
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
