// Package insight annotates leads with AI-generated investment
// assessments via an OpenAI-compatible chat completions endpoint.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"leadgen-engine/internal/domain"
)

// ErrAIService wraps any upstream completion failure so the HTTP
// layer can map it to one error code.
var ErrAIService = errors.New("insight: ai service error")

// Insight is the structured assessment the model is asked to return.
type Insight struct {
	Summary         string `json:"summary"`
	GrowthPotential string `json:"growth_potential"`
	MarketPosition  string `json:"market_position"`
	ValueCreation   string `json:"value_creation"`
	RiskFactors     string `json:"risk_factors"`
	NextSteps       string `json:"next_steps"`
}

// Result is the per-lead outcome of a batch run. Err is set when that
// lead's completion failed; the rest of the batch proceeds regardless.
type Result struct {
	LeadID  int64
	Insight Insight
	Err     error
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey      string
	BaseURL     string // optional OpenAI-compatible endpoint (GitHub Models etc.)
	Model       string
	Temperature float64
	MaxTokens   int
}

type Generator struct {
	cfg    Config
	client chatClient
}

func New(cfg Config) *Generator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 800
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &Generator{cfg: cfg, client: openai.NewClientWithConfig(cc)}
}

// Generate produces one lead's assessment.
func (g *Generator) Generate(ctx context.Context, l domain.Lead) (Insight, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: float32(g.cfg.Temperature),
		MaxTokens:   g.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(l)},
		},
	})
	if err != nil {
		return Insight{}, fmt.Errorf("%w: %v", ErrAIService, err)
	}
	if len(resp.Choices) == 0 {
		return Insight{}, fmt.Errorf("%w: empty response", ErrAIService)
	}

	ins, err := parseInsight(resp.Choices[0].Message.Content)
	if err != nil {
		return Insight{}, fmt.Errorf("%w: %v", ErrAIService, err)
	}
	return ins, nil
}

// GenerateBatch annotates each lead independently; a failed lead is
// reported in its Result and never aborts the batch.
func (g *Generator) GenerateBatch(ctx context.Context, leads []domain.Lead) []Result {
	out := make([]Result, 0, len(leads))
	for _, l := range leads {
		ins, err := g.Generate(ctx, l)
		out = append(out, Result{LeadID: l.ID, Insight: ins, Err: err})
	}
	return out
}

// parseInsight accepts clean JSON, fenced JSON, or JSON embedded in
// prose (models wrap output despite the system prompt).
func parseInsight(content string) (Insight, error) {
	var ins Insight

	text := stripFences(content)
	if err := json.Unmarshal([]byte(text), &ins); err == nil {
		return ins, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &ins); err == nil {
			return ins, nil
		}
	}
	return Insight{}, errors.New("response is not valid insight JSON")
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Text flattens an Insight to the single free-text column used by the
// lead table and exports.
func (i Insight) Text() string {
	sections := []struct{ label, body string }{
		{"Summary", i.Summary},
		{"Growth potential", i.GrowthPotential},
		{"Market position", i.MarketPosition},
		{"Value creation", i.ValueCreation},
		{"Risk factors", i.RiskFactors},
		{"Next steps", i.NextSteps},
	}
	var parts []string
	for _, s := range sections {
		if strings.TrimSpace(s.body) == "" {
			continue
		}
		parts = append(parts, s.label+": "+strings.TrimSpace(s.body))
	}
	return strings.Join(parts, "\n")
}
