package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "5001" {
		t.Errorf("expected default Port '5001', got '%s'", cfg.Port)
	}
	if cfg.ASRModel != "saarika:v2" {
		t.Errorf("expected default ASRModel 'saarika:v2', got '%s'", cfg.ASRModel)
	}
	if cfg.ASRLanguage != "unknown" {
		t.Errorf("expected default ASRLanguage 'unknown', got '%s'", cfg.ASRLanguage)
	}
	if cfg.LLMModel != "openai/gpt-4o-mini" {
		t.Errorf("expected default LLMModel 'openai/gpt-4o-mini', got '%s'", cfg.LLMModel)
	}
	if cfg.TTSProvider != "cartesia" {
		t.Errorf("expected default TTSProvider 'cartesia', got '%s'", cfg.TTSProvider)
	}
	if cfg.SarvamBaseURL != "https://api.sarvam.ai" {
		t.Errorf("unexpected SarvamBaseURL '%s'", cfg.SarvamBaseURL)
	}
	if cfg.ASRTimeoutSeconds != 20 {
		t.Errorf("expected default ASRTimeoutSeconds 20, got %d", cfg.ASRTimeoutSeconds)
	}
}

func TestLoad_MissingKeysIsNotFatal(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HasCredentials() {
		t.Error("expected HasCredentials() false with no keys set")
	}
}

func TestLoad_BadTTSProvider(t *testing.T) {
	os.Clearenv()
	os.Setenv("TTS_PROVIDER", "espeak")
	defer os.Unsetenv("TTS_PROVIDER")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown TTS_PROVIDER")
	}
}

func TestHasCredentials(t *testing.T) {
	cfg := &Config{
		SarvamAPIKey:     "s",
		OpenRouterAPIKey: "o",
		TTSProvider:      "cartesia",
	}
	if cfg.HasCredentials() {
		t.Error("cartesia provider without cartesia key should not count as configured")
	}

	cfg.CartesiaAPIKey = "c"
	if !cfg.HasCredentials() {
		t.Error("expected credentials to be complete")
	}

	cfg = &Config{
		SarvamAPIKey:     "s",
		OpenRouterAPIKey: "o",
		TTSProvider:      "sarvam",
	}
	if !cfg.HasCredentials() {
		t.Error("sarvam provider should not require a cartesia key")
	}
}
