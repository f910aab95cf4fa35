// internal/pipeline/derive-context/config.go
package derivecontext

// No per-stage tuning; struct kept for consistency across stages.
type Config struct{}

func LoadConfig() *Config {
	return &Config{}
}
