package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/knickknack27/mb3/internal/ai"
	"github.com/knickknack27/mb3/internal/pipeline"
	"github.com/knickknack27/mb3/internal/session"
	"github.com/knickknack27/mb3/internal/speech"
)

const maxUploadBytes = 32 << 20

type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

type Handler struct {
	runner         Runner
	sessions       *session.Store
	appName        string
	timingsEnabled bool
	hasCredentials func() bool
	log            *logger.ZapLogger
}

func NewHandler(
	runner Runner,
	sessions *session.Store,
	appName string,
	timingsEnabled bool,
	hasCredentials func() bool,
	log *logger.ZapLogger,
) *Handler {
	return &Handler{
		runner:         runner,
		sessions:       sessions,
		appName:        appName,
		timingsEnabled: timingsEnabled,
		hasCredentials: hasCredentials,
		log:            log,
	}
}

type chatResponse struct {
	UserTranscript       string             `json:"userTranscript"`
	TranslatedTranscript string             `json:"translatedTranscript,omitempty"`
	AssistantReply       string             `json:"assistantReply"`
	AssistantReplySpoken string             `json:"assistantReplySpoken"`
	AudioBase64          string             `json:"audioBase64"`
	SessionID            string             `json:"sessionId"`
	Timings              map[string]float64 `json:"timings,omitempty"`
	TotalTime            float64            `json:"totalTime,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TranscribeAndChat runs one caller utterance through the whole pipeline.
// Validation failures answer before any provider is called.
func (h *Handler) TranscribeAndChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No audio file uploaded."})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No audio file uploaded."})
		return
	}
	defer file.Close()

	if !h.hasCredentials() {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "API keys not configured on the server."})
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "failed to read upload", Service: "delivery", Error: err})
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No audio file uploaded."})
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = r.FormValue("session_id")
	}
	sessionID = h.sessions.Resolve(sessionID)

	res, err := h.runner.Run(r.Context(), pipeline.Request{
		SessionID: sessionID,
		Filename:  header.Filename,
		MIMEType:  header.Header.Get("Content-Type"),
		Audio:     audio,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := chatResponse{
		UserTranscript:       res.UserTranscript,
		TranslatedTranscript: res.TranslatedTranscript,
		AssistantReply:       res.AssistantReply,
		AssistantReplySpoken: res.AssistantReplySpoken,
		AudioBase64:          res.AudioBase64,
		SessionID:            res.SessionID,
	}
	if h.timingsEnabled {
		out.Timings = res.Timings
		out.TotalTime = res.TotalMs
	}
	writeJSON(w, http.StatusOK, out)
}

// writeError maps the tagged pipeline failure onto a response code. Provider
// payloads are echoed in details for diagnosability; anything unexpected gets
// a generic 500 with the context only in the server log.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		transcription *speech.TranscriptionError
		generation    *ai.GenerationError
		synthesis     *speech.SynthesisError
	)

	switch {
	case errors.As(err, &transcription):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to transcribe audio. No transcript returned.",
			Details: transcription.Details,
		})
	case errors.As(err, &generation):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "LLM did not return content.",
			Details: generation.Details,
		})
	case errors.As(err, &synthesis):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to synthesize audio.",
			Details: synthesis.Details,
		})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{
			Error: "Upstream provider timed out.",
		})
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "unhandled pipeline error", Service: "delivery", Error: err})
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "An internal server error occurred.",
		})
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Voice Assistant Backend (" + h.appName + ") is running.",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
