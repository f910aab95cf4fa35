// internal/common/config/config.go
package config

// Config is the main application configuration struct. It is loaded once
// at startup and treated as read-only for the lifetime of the process.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Providers     ProvidersConfig     `mapstructure:"providers"`
	Generation    GenerationConfig    `mapstructure:"generation"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

type ProvidersConfig struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
}

// GenerationConfig selects the content strategy and the sampling
// parameters sent to model providers.
type GenerationConfig struct {
	MockMode          bool    `mapstructure:"mock_mode"`
	UseGemini         bool    `mapstructure:"use_gemini"`
	Temperature       float64 `mapstructure:"temperature"`
	MaxTokens         int     `mapstructure:"max_tokens"`
	DetailedMaxTokens int     `mapstructure:"detailed_max_tokens"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// GeminiConfigured reports whether Gemini credentials are present.
func (c *Config) GeminiConfigured() bool {
	return c.Providers.Gemini.APIKey != ""
}

// OpenAIConfigured reports whether OpenAI credentials are present.
func (c *Config) OpenAIConfigured() bool {
	return c.Providers.OpenAI.APIKey != ""
}

// PrimaryProvider names the provider the model strategy tries first.
func (c *Config) PrimaryProvider() string {
	if c.Generation.MockMode {
		return "mock"
	}
	if c.Generation.UseGemini {
		return "gemini"
	}
	return "openai"
}
