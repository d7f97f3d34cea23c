package cmd

import (
	"fmt"
	"os"

	"github.com/mydpo/mydpo/internal/config"
	"github.com/mydpo/mydpo/internal/embeddings"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/llm"
)

// loadConfig loads and validates the config with a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `mydpo init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createLLMProvider builds the assistant backend from config. Returns nil
// without error when no provider is configured, so LLM features degrade
// instead of blocking the rest of the platform.
func createLLMProvider(cfg *config.Config) (llm.Provider, error) {
	if cfg.LLM.Provider == "" {
		return nil, nil
	}
	return llm.New(llm.Options{
		Provider: string(cfg.LLM.Provider),
		Model:    cfg.LLM.Model,
		RPM:      cfg.LLM.RPM,
	})
}

// createEmbedder builds the embedding backend from config.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.LLM.EmbeddingProvider
	if provider == "" {
		provider = cfg.LLM.Provider
	}
	// Anthropic has no embeddings API; OpenAI serves that concern.
	if provider == config.ProviderAnthropic {
		provider = config.ProviderOpenAI
	}
	return embeddings.New(string(provider), cfg.LLM.EmbeddingModel, "")
}

// loadKnowledgeBase opens the persisted knowledge store, seeding the
// bundled corpus when nothing has been indexed yet.
func loadKnowledgeBase(cfg *config.Config) (*knowledge.Store, error) {
	embedder, err := createEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	kb, err := knowledge.NewStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating knowledge store: %w", err)
	}
	if err := kb.Load(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no persisted knowledge base in %s: %v\n", cfg.DataDir, err)
		fmt.Fprintln(os.Stderr, "Run `mydpo knowledge index` to build it. Guidance search starts empty.")
	}
	return kb, nil
}
