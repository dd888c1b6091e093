package config

import (
	"fmt"
	"os"
	"strings"

	"leadgen-engine/internal/secrets"
)

// Credentials are the startup-required secrets. They come from the
// environment first, then the OS keyring; if a required one is found
// in neither place, startup fails.
type Credentials struct {
	MapsAPIKey   string
	OpenAIAPIKey string
	SecretKey    string

	// Optional overrides for hosted OpenAI-compatible endpoints
	// (the GitHub Models deployment sets both).
	OpenAIBaseURL string
	OpenAIModel   string
}

const (
	EnvMapsAPIKey   = "GOOGLE_MAPS_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvSecretKey    = "APP_SECRET_KEY"
	// Legacy alias carried over from the original deployment.
	EnvSecretKeyLegacy = "FLASK_SECRET_KEY"

	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvOpenAIModel   = "OPENAI_MODEL"
)

// LoadCredentials reads the required secrets, falling back to the
// keyring for the two API keys. getenv is injectable for tests;
// pass nil to use os.Getenv.
func LoadCredentials(getenv func(string) string) (Credentials, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var c Credentials
	var missing []string

	c.MapsAPIKey = strings.TrimSpace(getenv(EnvMapsAPIKey))
	if c.MapsAPIKey == "" {
		if v, err := secrets.Get(secrets.AccountMapsKey); err == nil {
			c.MapsAPIKey = v
		}
	}
	if c.MapsAPIKey == "" {
		missing = append(missing, EnvMapsAPIKey)
	}

	c.OpenAIAPIKey = strings.TrimSpace(getenv(EnvOpenAIAPIKey))
	if c.OpenAIAPIKey == "" {
		if v, err := secrets.Get(secrets.AccountOpenAIKey); err == nil {
			c.OpenAIAPIKey = v
		}
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, EnvOpenAIAPIKey)
	}

	c.SecretKey = strings.TrimSpace(getenv(EnvSecretKey))
	if c.SecretKey == "" {
		c.SecretKey = strings.TrimSpace(getenv(EnvSecretKeyLegacy))
	}
	if c.SecretKey == "" {
		missing = append(missing, EnvSecretKey)
	}

	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing required credentials: %s", strings.Join(missing, ", "))
	}

	c.OpenAIBaseURL = strings.TrimSpace(getenv(EnvOpenAIBaseURL))
	c.OpenAIModel = strings.TrimSpace(getenv(EnvOpenAIModel))
	return c, nil
}
