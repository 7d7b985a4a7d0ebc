package config

import "time"

// AIConfig holds text-generation provider settings.
type AIConfig struct {
	// Provider selects the generative backend: "mock" or "gemini".
	Provider string `mapstructure:"provider" yaml:"provider"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Model    string `mapstructure:"model" yaml:"model"`
}

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	CORSOrigins       []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	AI                AIConfig      `mapstructure:"ai" yaml:"ai"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "collabcode.db",
		CORSOrigins:       []string{"http://localhost:5173"},
		AI: AIConfig{
			Provider: "mock",
			Model:    "gemini-2.0-flash",
		},
	}
}
