// internal/pipeline/render-template/config.go
package rendertemplate

// No per-stage tuning; struct kept for consistency across stages.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
