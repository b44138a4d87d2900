package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joseph-ayodele/event-circulars/constants"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != constants.ProviderGemini {
		t.Errorf("expected gemini provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-flash-latest" {
		t.Errorf("expected default model, got %q", cfg.LLM.Model)
	}
	if cfg.Render.HeaderImagePath != constants.DefaultHeaderImagePath {
		t.Errorf("expected default header path, got %q", cfg.Render.HeaderImagePath)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circulars.yaml")
	body := `
server:
  addr: "0.0.0.0:9000"
  shutdown_timeout: 3s
llm:
  provider: openai
  model: gpt-4o-mini
  timeout: 20s
render:
  header_image: /srv/header.png
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4.1-mini")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout: got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.LLM.Timeout != 20*time.Second {
		t.Errorf("llm timeout: got %v", cfg.LLM.Timeout)
	}
	if cfg.LLM.Model != "gpt-4.1-mini" {
		t.Errorf("env should override file model, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected OPENAI_API_KEY to be picked for openai provider, got %q", cfg.LLM.APIKey)
	}
	if cfg.Render.HeaderImagePath != "/srv/header.png" {
		t.Errorf("header image: got %q", cfg.Render.HeaderImagePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadConfigModelDefaultFollowsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{provider: "openai", want: "gpt-4o-mini"},
		{provider: "OpenAI", want: "gpt-4o-mini"},
		{provider: "gemini", want: "gemini-flash-latest"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", tt.provider)
			t.Setenv("MODEL_NAME", "")
			cfg, err := LoadConfig("")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.LLM.Model != tt.want {
				t.Errorf("model: got %q, want %q", cfg.LLM.Model, tt.want)
			}
		})
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("llm: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRequiresAPIKeyAndKnownProvider(t *testing.T) {
	cfg := Defaults()
	cfg.LLM.Provider = "mystery"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != CodeConfig {
		t.Errorf("expected CONFIG_ERROR AppError, got %v", err)
	}
}
