package common

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/event-circulars/constants"
)

// Config holds all application configuration. It is built once at startup
// and handed to components by value; nothing reads the environment later.
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP-boundary configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxInputBytes   int64         `yaml:"max_input_bytes"`
	MaxInputChars   int           `yaml:"max_input_chars"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	OutputDir       string        `yaml:"output_dir"` // empty: os.TempDir()
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"` // model calls per second, 0 disables
	RateBurst   int           `yaml:"rate_burst"`
}

// RenderConfig holds document-rendering configuration
type RenderConfig struct {
	HeaderImagePath string `yaml:"header_image"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | text
}

// defaultModels is consulted once the provider is known.
var defaultModels = map[string]string{
	constants.ProviderGemini: "gemini-flash-latest",
	constants.ProviderOpenAI: "gpt-4o-mini",
}

// Defaults returns a Config populated with built-in default values.
// The model is left empty; LoadConfig picks it per provider.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "127.0.0.1:8000",
			MaxInputBytes:   64 << 10,
			MaxInputChars:   20000,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    constants.ProviderGemini,
			Temperature: 0.0,
			Timeout:     60 * time.Second,
			RateBurst:   1,
		},
		Render: RenderConfig{
			HeaderImagePath: constants.DefaultHeaderImagePath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads an optional YAML file on top of the defaults and then
// applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, NewAppError(CodeConfig, "read config file", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, NewAppError(CodeConfig, fmt.Sprintf("parse config file %s", path), err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)
	c.Server.MaxInputBytes = getEnvAsInt64("MAX_INPUT_BYTES", c.Server.MaxInputBytes)
	c.Server.MaxInputChars = getEnvAsInt("MAX_INPUT_CHARS", c.Server.MaxInputChars)
	c.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.OutputDir = getEnv("OUTPUT_DIR", c.Server.OutputDir)

	c.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLM.Provider))
	c.LLM.Model = getEnv("MODEL_NAME", c.LLM.Model)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Temperature = getEnvAsFloat32("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("LLM_TIMEOUT", c.LLM.Timeout)
	c.LLM.RateLimit = getEnvAsFloat64("LLM_RATE_LIMIT", c.LLM.RateLimit)
	c.LLM.RateBurst = getEnvAsInt("LLM_RATE_BURST", c.LLM.RateBurst)

	// Provider-specific key first, generic override last.
	switch c.LLM.Provider {
	case constants.ProviderGemini:
		c.LLM.APIKey = getEnv("GEMINI_API_KEY", c.LLM.APIKey)
	case constants.ProviderOpenAI:
		c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
	}
	c.LLM.APIKey = getEnv("LLM_API_KEY", c.LLM.APIKey)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}

	c.Render.HeaderImagePath = getEnv("HEADER_IMAGE_PATH", c.Render.HeaderImagePath)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateLLM checks the settings needed to reach the model provider.
func (c *Config) ValidateLLM() error {
	v := NewValidator()
	v.Field("llm.provider", c.LLM.Provider, Required, OneOf(constants.Providers...))
	v.Field("llm.model", c.LLM.Model, Required)
	v.Field("llm.api_key", c.LLM.APIKey, Required)
	v.Field("llm.temperature", c.LLM.Temperature, NonNegative)
	v.Field("llm.rate_limit", c.LLM.RateLimit, NonNegative)
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, "invalid llm configuration", err)
	}
	return nil
}

// Validate validates the loaded configuration for serving.
func (c *Config) Validate() error {
	if err := c.ValidateLLM(); err != nil {
		return err
	}
	v := NewValidator()
	v.Field("server.addr", c.Server.Addr, Required)
	v.Field("server.max_input_bytes", c.Server.MaxInputBytes, Positive)
	v.Field("server.max_input_chars", c.Server.MaxInputChars, Positive)
	v.Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	v.Field("log.format", c.Log.Format, OneOf("json", "text"))
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, "invalid configuration", err)
	}
	return nil
}
