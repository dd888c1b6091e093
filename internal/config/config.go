package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port            int    `yaml:"port" json:"port"`
		SessionTTLHours int    `yaml:"session_ttl_hours" json:"session_ttl_hours"`
	} `yaml:"app" json:"app"`

	Search struct {
		MaxResults   int    `yaml:"max_results" json:"max_results"`
		LanguageCode string `yaml:"language_code" json:"language_code"`
		Referer      string `yaml:"referer" json:"referer"`
	} `yaml:"search" json:"search"`

	Enrich struct {
		Enabled        bool    `yaml:"enabled" json:"enabled"`
		Workers        int     `yaml:"workers" json:"workers"`
		AboutPages     int     `yaml:"about_pages" json:"about_pages"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		HostReqPerSec  float64 `yaml:"host_req_per_sec" json:"host_req_per_sec"`
		HostBurst      int     `yaml:"host_burst" json:"host_burst"`
	} `yaml:"enrich" json:"enrich"`

	Insight struct {
		Model       string  `yaml:"model" json:"model"`
		Temperature float64 `yaml:"temperature" json:"temperature"`
		MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	} `yaml:"insight" json:"insight"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default is the built-in configuration, used to seed the user config
// when no config file exists yet in the data dir.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38491
	cfg.App.SessionTTLHours = 24

	cfg.Search.MaxResults = 20
	cfg.Search.LanguageCode = "en"
	cfg.Search.Referer = "http://localhost:38491"

	cfg.Enrich.Enabled = true
	cfg.Enrich.Workers = 4
	cfg.Enrich.AboutPages = 2
	cfg.Enrich.TimeoutSeconds = 10
	cfg.Enrich.HostReqPerSec = 1.0
	cfg.Enrich.HostBurst = 2

	cfg.Insight.Model = "gpt-4o"
	cfg.Insight.Temperature = 0.7
	cfg.Insight.MaxTokens = 800
	return cfg
}
