// internal/pipeline/normalize-request/config.go
package normalizerequest

// Defaults applied to optional request fields.
type Config struct {
	DefaultAudience string
	DefaultStage    string
	DefaultStyle    string
}

func LoadConfig() *Config {
	return &Config{
		DefaultAudience: "general investors",
		DefaultStage:    "seed",
		DefaultStyle:    "balanced",
	}
}
