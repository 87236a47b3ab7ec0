package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExtractReportFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantStatus string
		wantScore  float64
		wantChecks int
	}{
		{
			name: "clean json",
			response: `{"status": "Authentic", "score": 98.7, "summary": "Strong indicators of authenticity.",
				"checks": [{"name": "hardwareCheck", "score": 97.5, "status": "Pass"}]}`,
			wantStatus: "Authentic",
			wantScore:  98.7,
			wantChecks: 1,
		},
		{
			name: "markdown fenced json",
			response: "```json\n" +
				`{"status": "Counterfeit", "score": 12.0, "summary": "Serial format does not match."}` +
				"\n```",
			wantStatus: "Counterfeit",
			wantScore:  12.0,
		},
		{
			name:       "plain text fallback",
			response:   "The item appears genuine but I cannot produce JSON.",
			wantStatus: "Inconclusive",
		},
		{
			name:       "json missing status",
			response:   `{"score": 50.0}`,
			wantStatus: "Inconclusive",
			wantScore:  50.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := extractReportFromResponse(tt.response)
			if report.Status != tt.wantStatus {
				t.Errorf("status: got %q, want %q", report.Status, tt.wantStatus)
			}
			if report.Score != tt.wantScore {
				t.Errorf("score: got %v, want %v", report.Score, tt.wantScore)
			}
			if len(report.Checks) != tt.wantChecks {
				t.Errorf("checks: got %d, want %d", len(report.Checks), tt.wantChecks)
			}
		})
	}
}

func TestExtractReportFallbackKeepsRawOutput(t *testing.T) {
	raw := "not json at all"
	report := extractReportFromResponse(raw)
	if report.Summary != raw {
		t.Errorf("fallback should keep raw output as summary, got %q", report.Summary)
	}
}

func TestBuildAuthenticityPrompt(t *testing.T) {
	prompt := buildAuthenticityPrompt("Chanel Classic Flap", []string{"cc-turnlock", "front", "quilting"})
	if !strings.Contains(prompt, "Chanel Classic Flap") {
		t.Error("prompt should name the item")
	}
	if !strings.Contains(prompt, "cc-turnlock, front, quilting") {
		t.Error("prompt should list checkpoints in order")
	}
}

func TestResolveProviderDefaultsToMock(t *testing.T) {
	t.Setenv("VERIFIER_PROVIDER", "")
	service := NewService("", "")
	if got := service.resolveProvider(); got != "mock" {
		t.Errorf("expected mock default, got %q", got)
	}

	t.Setenv("VERIFIER_PROVIDER", "ollama")
	if got := service.resolveProvider(); got != "ollama" {
		t.Errorf("expected env override, got %q", got)
	}

	explicit := NewService("gemini", "")
	if got := explicit.resolveProvider(); got != "gemini" {
		t.Errorf("explicit provider should win over env, got %q", got)
	}
}

func TestResolveModelDefaults(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("GEMINI_MODEL", "")

	service := NewService("", "")
	tests := map[string]string{
		"openai": "gpt-4o",
		"ollama": "mistral-small3.2:24b",
		"gemini": "gemini-1.5-flash",
	}
	for provider, want := range tests {
		if got := service.resolveModel(provider); got != want {
			t.Errorf("resolveModel(%s): got %q, want %q", provider, got, want)
		}
	}
}

func TestUnsupportedProvider(t *testing.T) {
	service := NewService("watson", "")
	if _, err := service.Analyze(context.Background(), "attica-bag", "Attica Bag", map[string]string{"front": "x.jpg"}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestMockAnalyze(t *testing.T) {
	mock := &Mock{Delay: 0}
	report, err := mock.Analyze(context.Background(), "attica-bag", "Attica Bag", map[string]string{"front": "x.jpg"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Status != "Authentic" || report.Score != 98.7 {
		t.Errorf("unexpected canned report: %s %v", report.Status, report.Score)
	}
	if len(report.Checks) != 4 {
		t.Errorf("expected 4 checks, got %d", len(report.Checks))
	}
}

func TestMockAnalyzeHonorsContext(t *testing.T) {
	mock := &Mock{Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := mock.Analyze(ctx, "attica-bag", "Attica Bag", nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
