package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/logging"
	"github.com/jonathan/ats-checker/internal/prompts"
	"github.com/jonathan/ats-checker/internal/schemas"
	"github.com/jonathan/ats-checker/internal/types"
	"go.uber.org/zap"
)

const (
	// promptTextLimit bounds the résumé and job description in the prompt.
	promptTextLimit = 2000
	// promptKeywordLimit bounds each keyword list in the prompt.
	promptKeywordLimit = 15
)

// LLMProvider asks a generative provider for a suggestion bundle.
type LLMProvider struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMProvider creates a provider backed by client.
func NewLLMProvider(client llm.Client, logger *zap.Logger) *LLMProvider {
	return &LLMProvider{
		client: client,
		logger: logging.OrNop(logger),
	}
}

// Suggest requests a bundle and validates it against the suggestion schema.
func (p *LLMProvider) Suggest(ctx context.Context, req Request) (types.SuggestionBundle, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return types.SuggestionBundle{}, err
	}

	response, err := p.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return types.SuggestionBundle{}, fmt.Errorf("suggestion request failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(response)
	if err := schemas.Validate(schemas.Suggestions, cleaned); err != nil {
		p.logger.Debug("suggestion response rejected",
			zap.String("response", logging.Truncate(cleaned, logging.DefaultExcerptLength)),
		)
		return types.SuggestionBundle{}, fmt.Errorf("suggestion response out of contract: %w", err)
	}

	var bundle types.SuggestionBundle
	if err := json.Unmarshal([]byte(cleaned), &bundle); err != nil {
		return types.SuggestionBundle{}, fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	bundle.ActionVerbs = slice.Map(bundle.ActionVerbs, func(_ int, v string) string {
		return strings.TrimSpace(v)
	})
	return bundle, nil
}

// BuildPrompt renders the suggestion prompt for req.
func BuildPrompt(req Request) (string, error) {
	template, err := prompts.Get("suggestions.json", "generate-suggestions")
	if err != nil {
		return "", err
	}

	return prompts.Format(template, map[string]string{
		"Resume":         llm.Truncate(req.ResumeText, promptTextLimit),
		"JobDescription": llm.Truncate(req.JobDescription, promptTextLimit),
		"ResumeKeywords": joinTop(req.ResumeKeywords, promptKeywordLimit),
		"JobKeywords":    joinTop(req.JobKeywords, promptKeywordLimit),
	}), nil
}

func joinTop(keywords []string, n int) string {
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return strings.Join(keywords, ", ")
}
