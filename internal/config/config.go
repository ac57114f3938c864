package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the voice assistant backend.
// Provider API keys are intentionally not required at load time: the server
// boots without them and answers requests with an explicit 500 instead, so a
// misconfigured deployment fails loudly per request rather than silently at
// start.
type Config struct {
	// Server
	Port    string `envconfig:"PORT" default:"5001"`
	AppName string `envconfig:"APP_NAME" default:"Magic Bricks"`

	// Sarvam (ASR + translate + TTS)
	SarvamAPIKey       string `envconfig:"SARVAM_API_KEY"`
	SarvamBaseURL      string `envconfig:"SARVAM_BASE_URL" default:"https://api.sarvam.ai"`
	ASRModel           string `envconfig:"ASR_MODEL" default:"saarika:v2"`
	ASRLanguage        string `envconfig:"ASR_LANGUAGE" default:"unknown"` // "unknown" asks the provider to auto-detect
	ASRTimeoutSeconds  int    `envconfig:"ASR_TIMEOUT_SECONDS" default:"20"`
	TranslateTimeout   int    `envconfig:"TRANSLATE_TIMEOUT_SECONDS" default:"20"`
	TranslateGender    string `envconfig:"TRANSLATE_SPEAKER_GENDER" default:""` // Male, Female or empty
	TranslateMode      string `envconfig:"TRANSLATE_MODE" default:""`           // formal, code-mixed or empty
	TranslateNumerals  string `envconfig:"TRANSLATE_NUMERALS_FORMAT" default:""`

	// Languages. With pivot enabled, speech in any language is translated to
	// PivotLanguage before the LLM and replies are translated back to
	// TargetLanguage before synthesis.
	PivotEnabled   bool   `envconfig:"PIVOT_ENABLED" default:"false"`
	PivotLanguage  string `envconfig:"PIVOT_LANGUAGE" default:"en-IN"`
	TargetLanguage string `envconfig:"TARGET_LANGUAGE" default:"kn-IN"`

	// OpenRouter (LLM)
	OpenRouterAPIKey  string `envconfig:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
	LLMModel          string `envconfig:"LLM_MODEL" default:"openai/gpt-4o-mini"`
	LLMTimeoutSeconds int    `envconfig:"LLM_TIMEOUT_SECONDS" default:"120"`

	// TTS provider selection: "sarvam" or "cartesia". Per deployment, not per
	// request.
	TTSProvider       string `envconfig:"TTS_PROVIDER" default:"cartesia"`
	TTSTimeoutSeconds int    `envconfig:"TTS_TIMEOUT_SECONDS" default:"30"`

	SarvamTTSModel      string `envconfig:"SARVAM_TTS_MODEL" default:"bulbul:v2"`
	SarvamTTSSpeaker    string `envconfig:"SARVAM_TTS_SPEAKER" default:"karun"`
	SarvamTTSSampleRate int    `envconfig:"SARVAM_TTS_SAMPLE_RATE" default:"24000"`

	CartesiaAPIKey   string `envconfig:"CARTESIA_API_KEY"`
	CartesiaBaseURL  string `envconfig:"CARTESIA_BASE_URL" default:"https://api.cartesia.ai"`
	CartesiaModelID  string `envconfig:"CARTESIA_MODEL_ID" default:"sonic-2"`
	CartesiaVoiceID  string `envconfig:"CARTESIA_VOICE_ID" default:"1259b7e3-cb8a-43df-9446-30971a46b8b0"`
	CartesiaLanguage string `envconfig:"CARTESIA_LANGUAGE" default:"en"`

	// Knowledge base injected into the system prompt on every request
	KnowledgeBasePath string `envconfig:"KNOWLEDGE_BASE_PATH" default:"real_estate_cleaned_generalized.json"`

	// Sessions
	SessionTTLMinutes   int `envconfig:"SESSION_TTL_MINUTES" default:"30"`
	SessionSweepMinutes int `envconfig:"SESSION_SWEEP_MINUTES" default:"5"`

	// Observability
	TimingsEnabled bool `envconfig:"TIMINGS_ENABLED" default:"true"`
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from the environment, first loading a .env file if
// one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.TTSProvider {
	case "sarvam", "cartesia":
	default:
		return nil, fmt.Errorf("unknown TTS_PROVIDER %q (want sarvam or cartesia)", cfg.TTSProvider)
	}

	return &cfg, nil
}

// HasCredentials reports whether the keys needed for a pipeline run are
// present. The Cartesia key only matters when Cartesia is the selected TTS
// provider; Sarvam covers ASR, translate and its own TTS.
func (c *Config) HasCredentials() bool {
	if c.SarvamAPIKey == "" || c.OpenRouterAPIKey == "" {
		return false
	}
	if c.TTSProvider == "cartesia" && c.CartesiaAPIKey == "" {
		return false
	}
	return true
}
