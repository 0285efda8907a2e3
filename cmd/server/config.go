package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type config struct {
	Port           string `yaml:"port"`
	GeminiEndpoint string `yaml:"geminiEndpoint"`
	GeminiModel    string `yaml:"geminiModel"`
	SystemPrompt   string `yaml:"systemPrompt"`
}

const defaultSystemPrompt = `You are EcoSort, a friendly assistant that helps people figure out ` +
	`how to categorize and dispose of their waste. Be encouraging, non-judgmental, and educational: ` +
	`explain which bin an item belongs in, whether it can be recycled, composted, or needs special ` +
	`handling, and offer practical tips for reducing waste. Keep answers short and concrete. ` +
	`Disposal rules vary from place to place and you cannot know local regulations, so remind ` +
	`people to double-check with their local waste authority when it matters.`

func defaultConfig() config {
	return config{
		Port:         "8080",
		GeminiModel:  "gemini-1.5-flash",
		SystemPrompt: defaultSystemPrompt,
	}
}

// loadConfig reads the yaml config file at path, falling back to built-in defaults for any field
// left unset. A missing file is not an error; the defaults alone are enough to run.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return config{}, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	if err := decodeConfig(f, &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *config) error {
	var raw config
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("error decoding config file: %w", err)
	}

	if raw.Port != "" {
		cfg.Port = raw.Port
	}
	if raw.GeminiEndpoint != "" {
		cfg.GeminiEndpoint = raw.GeminiEndpoint
	}
	if raw.GeminiModel != "" {
		cfg.GeminiModel = raw.GeminiModel
	}
	if raw.SystemPrompt != "" {
		cfg.SystemPrompt = raw.SystemPrompt
	}
	return nil
}
