package llm

import (
	"fmt"
	"os"
)

// Options selects and configures a provider. APIKey and BaseURL fall back
// to the conventional environment variables when empty.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	// RPM limits requests per minute. Zero means unlimited.
	RPM int
}

// New creates a provider from options. Supported providers:
// "openai", "anthropic", "ollama".
func New(opts Options) (Provider, error) {
	var p Provider

	switch opts.Provider {
	case "openai":
		key := opts.APIKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("openai provider requires an API key (set OPENAI_API_KEY)")
		}
		p = NewOpenAIProvider(key, opts.Model)

	case "anthropic":
		key := opts.APIKey
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key (set ANTHROPIC_API_KEY)")
		}
		p = NewAnthropicProvider(key, opts.Model)

	case "ollama":
		host := opts.BaseURL
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		p = NewOllamaProvider(host, opts.Model)

	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", opts.Provider)
	}

	if opts.RPM > 0 {
		p = NewRateLimitedProvider(p, opts.RPM)
	}
	return p, nil
}
