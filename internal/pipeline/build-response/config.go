// internal/pipeline/build-response/config.go
package buildresponse

type Config struct {
	ValidateEnvelope bool
}

func LoadConfig() *Config {
	return &Config{
		ValidateEnvelope: true,
	}
}
