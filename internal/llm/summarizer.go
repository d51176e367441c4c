// Package llm provides an optional LLM-generated summary of a verification
// run. The summary is informational only and never affects verdicts.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/citeguard/citeguard/internal/model"
)

// Summarizer wraps an OpenAI-compatible chat endpoint.
type Summarizer struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewSummarizer creates a summarizer from configuration. Returns nil when no
// provider is configured; a nil Summarizer is safe to skip.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Summarize generates a short markdown summary of the run report.
func (s *Summarizer) Summarize(ctx context.Context, report *model.RunReport) (*model.LLMSummary, error) {
	modelName := s.cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := s.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	timeout := time.Duration(s.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize citation verification reports. Describe keyword support only; never assert that a citation is true or false.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(report),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		Model:     modelName,
		SummaryMD: strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

func buildPrompt(report *model.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Summarize this citation verification run in under 200 words of Markdown.

Rules:
1. Only describe keyword support levels; do not speculate about correctness.
2. Mention citations whose sources had no retrievable text.
3. Use the confidence numbers as given.

Run totals: %d pairs, %d verified, %d not verified, average confidence %.0f.

Per-pair outcomes:
`, report.TotalPairs, report.Verified, report.NotVerified, report.AverageConfidence)

	for _, res := range report.Results {
		if res.Verification.Found {
			fmt.Fprintf(&b, "- [%d] %s: confidence %d, keywords %d/%d\n",
				res.CitationNumber, res.SourceTitle,
				res.Verification.Confidence,
				res.Verification.TotalKeywordsFound,
				res.Verification.TotalKeywordsSearched)
		} else {
			fmt.Fprintf(&b, "- [%d] %s: not verified (%s)\n",
				res.CitationNumber, res.SourceTitle, res.Verification.Reason)
		}
	}
	return b.String()
}
