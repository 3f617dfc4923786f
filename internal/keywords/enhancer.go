package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/prompts"
)

// enhancerTextLimit bounds the text sent to the provider.
const enhancerTextLimit = 1500

// ErrNoEnhancer is returned by NoEnhancer.
var ErrNoEnhancer = errors.New("keyword enhancer not configured")

// LLMEnhancer asks a generative provider for the most relevant professional keywords.
type LLMEnhancer struct {
	client llm.Client
}

// NewLLMEnhancer creates an enhancer backed by client.
func NewLLMEnhancer(client llm.Client) *LLMEnhancer {
	return &LLMEnhancer{client: client}
}

// Enhance returns the provider's keyword list. A response that is not a JSON
// array of strings is an error.
func (e *LLMEnhancer) Enhance(ctx context.Context, text string, keywords []string) ([]string, error) {
	template, err := prompts.Get("keywords.json", "enhance-keywords")
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(template, map[string]string{
		"Text":     llm.Truncate(text, enhancerTextLimit),
		"Keywords": strings.Join(keywords, ", "),
	})

	response, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("keyword enhancement request failed: %w", err)
	}

	var enhanced []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &enhanced); err != nil {
		return nil, fmt.Errorf("keyword enhancement response is not a JSON array of strings: %w", err)
	}
	return enhanced, nil
}

// NoEnhancer is the deterministic stand-in used when no provider is configured.
type NoEnhancer struct{}

// Enhance always fails with ErrNoEnhancer.
func (NoEnhancer) Enhance(context.Context, string, []string) ([]string, error) {
	return nil, ErrNoEnhancer
}
