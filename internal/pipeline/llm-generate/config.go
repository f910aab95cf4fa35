// internal/pipeline/llm-generate/config.go
package llmgenerate

type Config struct {
	Temperature       float64
	MaxTokens         int
	DetailedMaxTokens int
}

func LoadConfig() *Config {
	return &Config{
		Temperature:       0.7,
		MaxTokens:         1500,
		DetailedMaxTokens: 3000,
	}
}
