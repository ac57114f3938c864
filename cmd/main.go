package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/knickknack27/mb3/internal/ai"
	"github.com/knickknack27/mb3/internal/config"
	"github.com/knickknack27/mb3/internal/delivery"
	"github.com/knickknack27/mb3/internal/metrics"
	"github.com/knickknack27/mb3/internal/pipeline"
	"github.com/knickknack27/mb3/internal/session"
	"github.com/knickknack27/mb3/internal/speech"
	"github.com/knickknack27/mb3/internal/translate"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// CONFIG / LOGGER INIT
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// CLIENTS (ASR / TRANSLATE / LLM / TTS)
	// =========================================================================

	sarvamClient := speech.NewSarvamClient(
		cfg.SarvamAPIKey,
		cfg.SarvamBaseURL,
		speech.WithSarvamASR(cfg.ASRModel, cfg.ASRLanguage),
		speech.WithSarvamTTS(cfg.SarvamTTSModel, cfg.SarvamTTSSpeaker, cfg.SarvamTTSSampleRate),
	)

	var synthesizer speech.Synthesizer
	ttsLanguage := cfg.TargetLanguage
	if cfg.TTSProvider == "cartesia" {
		synthesizer = speech.NewCartesiaClient(
			cfg.CartesiaAPIKey,
			cfg.CartesiaBaseURL,
			cfg.CartesiaModelID,
			cfg.CartesiaVoiceID,
		)
		ttsLanguage = cfg.CartesiaLanguage
	} else {
		synthesizer = sarvamClient
	}

	translator := translate.NewSarvamClient(
		cfg.SarvamAPIKey,
		cfg.SarvamBaseURL,
		translate.Style{
			SpeakerGender:  cfg.TranslateGender,
			Mode:           cfg.TranslateMode,
			NumeralsFormat: cfg.TranslateNumerals,
		},
		zl,
	)

	openRouterClient := ai.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.LLMModel)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	sessions := session.NewStore()

	speechService := speech.NewService(sarvamClient, synthesizer)

	replyService := ai.NewService(
		openRouterClient,
		cfg.AppName,
		cfg.KnowledgeBasePath,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
	)

	pipelineService := pipeline.NewService(
		speechService,
		speechService,
		translator,
		replyService,
		sessions,
		pipeline.Options{
			PivotEnabled:     cfg.PivotEnabled,
			PivotLanguage:    cfg.PivotLanguage,
			ReplyLanguage:    cfg.TargetLanguage,
			TTSLanguage:      ttsLanguage,
			ASRTimeout:       time.Duration(cfg.ASRTimeoutSeconds) * time.Second,
			TranslateTimeout: time.Duration(cfg.TranslateTimeout) * time.Second,
			TTSTimeout:       time.Duration(cfg.TTSTimeoutSeconds) * time.Second,
		},
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-ID"},
	}))

	handler := delivery.NewHandler(
		pipelineService,
		sessions,
		cfg.AppName,
		cfg.TimingsEnabled,
		cfg.HasCredentials,
		zl,
	)
	delivery.RegisterRoutes(r, handler)

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.SessionSweepMinutes) * time.Minute)
		defer ticker.Stop()

		ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
		for range ticker.C {
			if n := sessions.Sweep(ttl); n > 0 {
				log.Printf("[session-sweep] evicted %d idle sessions", n)
			}
			metrics.SetActiveSessions(sessions.Count())
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice-backend",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
