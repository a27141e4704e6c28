package main

import (
	"strings"
	"testing"

	"github.com/menta2k/gemini-analyzer/internal/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, "ollama", "plug.jpg", "how hot?", "llava:13b", "debug")

	if cfg.Backend != config.BackendOllama {
		t.Errorf("Expected backend ollama, got %s", cfg.Backend)
	}
	if cfg.Image.Path != "plug.jpg" {
		t.Errorf("Expected image plug.jpg, got %s", cfg.Image.Path)
	}
	if cfg.Question != "how hot?" {
		t.Errorf("Expected question override, got %s", cfg.Question)
	}
	if cfg.Ollama.VisionModel != "llava:13b" {
		t.Errorf("Expected ollama vision model override, got %s", cfg.Ollama.VisionModel)
	}
	if cfg.Gemini.VisionModel != "gemini-pro-vision" {
		t.Errorf("Gemini model should be untouched, got %s", cfg.Gemini.VisionModel)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestApplyFlagsEmptyKeepsConfig(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, "", "", "", "", "")
	if cfg.Backend != config.BackendGemini {
		t.Errorf("Expected gemini backend, got %s", cfg.Backend)
	}
}

func TestReadTriggers(t *testing.T) {
	count := 0
	readTriggers(strings.NewReader("\n\nagain\n"), func() { count++ })
	if count != 3 {
		t.Errorf("Expected 3 triggers, got %d", count)
	}
}
