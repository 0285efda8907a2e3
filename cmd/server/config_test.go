package main

import (
	"strings"
	"testing"
)

func TestDecodeConfig(t *testing.T) {
	cfg := defaultConfig()

	raw := `
port: "9090"
geminiModel: gemini-1.5-pro
systemPrompt: custom prompt
`
	if err := decodeConfig(strings.NewReader(raw), &cfg); err != nil {
		t.Fatalf("decodeConfig() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SystemPrompt != "custom prompt" {
		t.Errorf("SystemPrompt = %q", cfg.SystemPrompt)
	}
	// Unset fields keep their defaults.
	if cfg.GeminiEndpoint != "" {
		t.Errorf("GeminiEndpoint = %q, want empty (use the built-in endpoint)", cfg.GeminiEndpoint)
	}
}

func TestDecodeConfigPartial(t *testing.T) {
	cfg := defaultConfig()

	if err := decodeConfig(strings.NewReader(`port: "3000"`), &cfg); err != nil {
		t.Fatalf("decodeConfig() error = %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q, want default", cfg.GeminiModel)
	}
	if cfg.SystemPrompt == "" {
		t.Error("SystemPrompt should keep its default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(t.TempDir() + "/config.yaml")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default", cfg.Port)
	}
}
