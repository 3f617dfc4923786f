package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over generative providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// Embedder turns text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ProviderClients bundles the generative client and embedder of one provider.
type ProviderClients struct {
	Client   Client
	Embedder Embedder
}

// NewProviderClients creates the client and embedder for config. ProviderNone
// yields the stand-in implementations that always fail. Live providers
// require apiKey.
func NewProviderClients(ctx context.Context, config *Config, apiKey string) (*ProviderClients, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderNone:
		return &ProviderClients{Client: NoClient{}, Embedder: NoEmbedder{}}, nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return &ProviderClients{Client: client, Embedder: client}, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(config, apiKey)
		if err != nil {
			return nil, err
		}
		return &ProviderClients{Client: client, Embedder: client}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}

// NoClient is the stand-in generative client used when no provider is configured.
type NoClient struct{}

// GenerateContent always fails with ErrNoProvider.
func (NoClient) GenerateContent(context.Context, string, ModelTier) (string, error) {
	return "", ErrNoProvider
}

// GenerateJSON always fails with ErrNoProvider.
func (NoClient) GenerateJSON(context.Context, string, ModelTier) (string, error) {
	return "", ErrNoProvider
}

// GetModel returns an empty name.
func (NoClient) GetModel(ModelTier) string { return "" }

// Close is a no-op.
func (NoClient) Close() error { return nil }

// NoEmbedder is the stand-in embedder used when no provider is configured.
type NoEmbedder struct{}

// Embed always fails with ErrNoProvider.
func (NoEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, ErrNoProvider
}
