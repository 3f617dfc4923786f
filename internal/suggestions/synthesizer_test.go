package suggestions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }

func (s *stubClient) Close() error { return nil }

const validResponse = "```json\n" + `{
  "general": ["g1", "g2", "g3", "g4", "g5", "g6"],
  "specific": ["s1", "s2", "s3"],
  "actionVerbs": ["Led ", "Built", "Scaled", "Shipped", "Owned", "Drove", "Cut", "Grew", "Won", "Ran", "Made", "Set"],
  "powerPhrases": ["p1", "p2", "p3", "p4", "p5", "p6"],
  "contentQualityScore": 82
}` + "\n```"

func TestFallback(t *testing.T) {
	fb := Fallback()

	assert.Equal(t, 75.0, fb.ContentQualityScore)
	assert.Len(t, fb.ActionVerbs, 5)
	assert.Equal(t, []string{"Focus on quantifiable achievements", "Use more action verbs"}, fb.General)
	assert.Equal(t, []string{"Add more relevant keywords from the job description"}, fb.Specific)
	assert.Equal(t, []string{"Increased efficiency by", "Led team of", "Reduced costs by"}, fb.PowerPhrases)

	fb.General[0] = "mutated"
	assert.Equal(t, "Focus on quantifiable achievements", Fallback().General[0])
}

func TestSynthesizer_Generate(t *testing.T) {
	ctx := context.Background()
	req := Request{ResumeText: "resume", JobDescription: "job"}

	t.Run("provider error yields fallback", func(t *testing.T) {
		client := &stubClient{err: errors.New("503")}
		bundle, source := NewSynthesizer(NewLLMProvider(client, nil), nil).Generate(ctx, req)
		assert.Equal(t, types.SourceFallback, source)
		assert.Equal(t, Fallback(), bundle)
	})

	t.Run("malformed JSON yields fallback", func(t *testing.T) {
		client := &stubClient{response: "I think your resume is great"}
		bundle, source := NewSynthesizer(NewLLMProvider(client, nil), nil).Generate(ctx, req)
		assert.Equal(t, types.SourceFallback, source)
		assert.Equal(t, 75.0, bundle.ContentQualityScore)
		assert.Len(t, bundle.ActionVerbs, 5)
	})

	t.Run("schema violation yields fallback", func(t *testing.T) {
		client := &stubClient{response: `{"general": ["only this"]}`}
		bundle, source := NewSynthesizer(NewLLMProvider(client, nil), nil).Generate(ctx, req)
		assert.Equal(t, types.SourceFallback, source)
		assert.Equal(t, Fallback(), bundle)
	})

	t.Run("valid response is capped", func(t *testing.T) {
		client := &stubClient{response: validResponse}
		bundle, source := NewSynthesizer(NewLLMProvider(client, nil), nil).Generate(ctx, req)
		require.Equal(t, types.SourceProvider, source)
		assert.Len(t, bundle.General, MaxGeneral)
		assert.Len(t, bundle.Specific, 3)
		assert.Len(t, bundle.ActionVerbs, MaxActionVerbs)
		assert.Equal(t, "Led", bundle.ActionVerbs[0])
		assert.Len(t, bundle.PowerPhrases, MaxPowerPhrases)
		assert.Equal(t, 82.0, bundle.ContentQualityScore)
	})

	t.Run("nil provider yields fallback", func(t *testing.T) {
		bundle, source := NewSynthesizer(nil, nil).Generate(ctx, req)
		assert.Equal(t, types.SourceFallback, source)
		assert.Equal(t, Fallback(), bundle)
	})

	t.Run("fallback provider is deterministic", func(t *testing.T) {
		first, source := NewSynthesizer(FallbackProvider{}, nil).Generate(ctx, req)
		second, _ := NewSynthesizer(FallbackProvider{}, nil).Generate(ctx, req)
		assert.Equal(t, types.SourceFallback, source)
		assert.Equal(t, first, second)
		assert.Equal(t, Fallback(), first)
	})
}

func TestBuildPrompt(t *testing.T) {
	var keywords []string
	for i := 0; i < 20; i++ {
		keywords = append(keywords, "kw"+string(rune('a'+i)))
	}

	prompt, err := BuildPrompt(Request{
		ResumeText:     strings.Repeat("r", 3000),
		JobDescription: "Backend engineer",
		ResumeKeywords: keywords,
		JobKeywords:    []string{"go", "sql"},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, strings.Repeat("r", 2000))
	assert.NotContains(t, prompt, strings.Repeat("r", 2001))
	assert.Contains(t, prompt, "JOB DESCRIPTION:\nBackend engineer")
	assert.Contains(t, prompt, "RESUME KEYWORDS: kwa, kwb")
	assert.Contains(t, prompt, "kwo")
	assert.NotContains(t, prompt, "kwp")
	assert.Contains(t, prompt, "JOB KEYWORDS: go, sql")
}

func TestCapBundle_ClampsScore(t *testing.T) {
	assert.Equal(t, 100.0, capBundle(types.SuggestionBundle{ContentQualityScore: 130}).ContentQualityScore)
	assert.Equal(t, 0.0, capBundle(types.SuggestionBundle{ContentQualityScore: -5}).ContentQualityScore)
	assert.NotNil(t, capBundle(types.SuggestionBundle{}).General)
}
