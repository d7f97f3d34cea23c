package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level mydpo configuration, corresponding to mydpo.yml.
type Config struct {
	DBPath  string       `yaml:"db_path" koanf:"db_path"`
	DataDir string       `yaml:"data_dir" koanf:"data_dir"`
	Server  ServerConfig `yaml:"server" koanf:"server"`
	LLM     LLMConfig    `yaml:"llm" koanf:"llm"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LLMConfig selects the assistant and embedding backends. API keys come
// from the environment, never from the config file.
type LLMConfig struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	RPM               int          `yaml:"rpm" koanf:"rpm"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath:  "mydpo.db",
		DataDir: ".mydpo",
		Server: ServerConfig{
			Port: 8787,
		},
		LLM: LLMConfig{
			Provider:          ProviderOpenAI,
			Model:             "gpt-4o",
			EmbeddingProvider: ProviderOpenAI,
			EmbeddingModel:    "text-embedding-3-small",
			RPM:               60,
		},
	}
}
