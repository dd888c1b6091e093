package insight

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/domain"
)

type fakeChat struct {
	reqs    []openai.ChatCompletionRequest
	replies []string
	errs    []error
	calls   int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := f.calls
	f.calls++
	f.reqs = append(f.reqs, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}
	content := ""
	if i < len(f.replies) {
		content = f.replies[i]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

const validJSON = `{
	"summary": "Solid local plumbing business.",
	"growth_potential": "Licensing into nearby counties.",
	"market_position": "Top rated in its zip code.",
	"value_creation": "Consolidation platform candidate.",
	"risk_factors": "Owner dependence.",
	"next_steps": "Book an intro call."
}`

func newTestGenerator(chat chatClient) *Generator {
	return &Generator{
		cfg:    Config{Model: "gpt-4o", Temperature: 0.7, MaxTokens: 800},
		client: chat,
	}
}

func TestGenerate(t *testing.T) {
	f := &fakeChat{replies: []string{validJSON}}
	g := newTestGenerator(f)

	ins, err := g.Generate(context.Background(), domain.Lead{ID: 1, Name: "Acme Plumbing"})
	require.NoError(t, err)
	assert.Equal(t, "Solid local plumbing business.", ins.Summary)
	assert.Equal(t, "Book an intro call.", ins.NextSteps)

	require.Len(t, f.reqs, 1)
	req := f.reqs[0]
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 800, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "Acme Plumbing")
}

func TestGenerateUpstreamError(t *testing.T) {
	f := &fakeChat{errs: []error{errors.New("rate limited")}}
	g := newTestGenerator(f)

	_, err := g.Generate(context.Background(), domain.Lead{ID: 1})
	assert.ErrorIs(t, err, ErrAIService)
}

func TestGenerateBatchPartialFailure(t *testing.T) {
	f := &fakeChat{
		replies: []string{validJSON, "", validJSON},
		errs:    []error{nil, errors.New("boom"), nil},
	}
	g := newTestGenerator(f)

	results := g.GenerateBatch(context.Background(), []domain.Lead{{ID: 1}, {ID: 2}, {ID: 3}})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrAIService)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, int64(2), results[1].LeadID)
	assert.Equal(t, "Solid local plumbing business.", results[2].Insight.Summary)
}

func TestParseInsight(t *testing.T) {
	t.Run("clean json", func(t *testing.T) {
		ins, err := parseInsight(validJSON)
		require.NoError(t, err)
		assert.Equal(t, "Owner dependence.", ins.RiskFactors)
	})

	t.Run("fenced json", func(t *testing.T) {
		ins, err := parseInsight("```json\n" + validJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Solid local plumbing business.", ins.Summary)
	})

	t.Run("json embedded in prose", func(t *testing.T) {
		ins, err := parseInsight("Here is the assessment you asked for:\n" + validJSON + "\nLet me know if you need more.")
		require.NoError(t, err)
		assert.Equal(t, "Top rated in its zip code.", ins.MarketPosition)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, err := parseInsight("I cannot help with that.")
		assert.Error(t, err)
	})
}

func TestInsightText(t *testing.T) {
	ins := Insight{
		Summary:   "A fine business.",
		NextSteps: "Call them.",
	}
	got := ins.Text()
	assert.Equal(t, "Summary: A fine business.\nNext steps: Call them.", got)

	assert.Empty(t, Insight{}.Text())
}
