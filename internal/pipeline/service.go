package pipeline

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/knickknack27/mb3/internal/metrics"
	"github.com/knickknack27/mb3/internal/session"
	"github.com/knickknack27/mb3/internal/speech"
	"github.com/knickknack27/mb3/internal/translate"
)

// Request is one caller utterance entering the pipeline.
type Request struct {
	SessionID string
	Filename  string
	MIMEType  string
	Audio     []byte
}

// Result is what a fully successful run hands back to the HTTP layer.
// Timings maps stage name to elapsed milliseconds.
type Result struct {
	SessionID            string
	UserTranscript       string
	TranslatedTranscript string // set only when the pivot step ran
	AssistantReply       string
	AssistantReplySpoken string
	AudioBase64          string
	Timings              map[string]float64
	TotalMs              float64
}

// Options fixes the language plumbing and per-call timeouts for a deployment.
type Options struct {
	PivotEnabled  bool
	PivotLanguage string // language the LLM converses in
	ReplyLanguage string // spoken language of the synthesized reply
	TTSLanguage   string // code handed to the TTS provider, provider-specific

	ASRTimeout       time.Duration
	TranslateTimeout time.Duration
	TTSTimeout       time.Duration
}

// Service runs the fixed stage sequence: transcribe, optionally pivot
// translate, generate, translate the reply, synthesize. The first failure
// aborts the run; history is only touched after the last stage succeeds.
type Service struct {
	stt       speech.Transcriber
	tts       speech.Synthesizer
	trans     translate.Translator
	generator ReplyGenerator
	sessions  *session.Store
	opts      Options
	log       *logger.ZapLogger
}

func NewService(
	stt speech.Transcriber,
	tts speech.Synthesizer,
	trans translate.Translator,
	generator ReplyGenerator,
	sessions *session.Store,
	opts Options,
	log *logger.ZapLogger,
) *Service {
	return &Service{
		stt:       stt,
		tts:       tts,
		trans:     trans,
		generator: generator,
		sessions:  sessions,
		opts:      opts,
		log:       log,
	}
}

func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res := &Result{
		SessionID: req.SessionID,
		Timings:   make(map[string]float64),
	}

	err := s.run(ctx, req, res)

	res.TotalMs = float64(time.Since(start)) / float64(time.Millisecond)
	metrics.RecordPipeline(time.Since(start), err == nil)

	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "pipeline aborted",
			Service: "pipeline",
			Error:   err,
		})
		return nil, err
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, req Request, res *Result) error {
	// 1. Transcription
	var asr speech.TranscribeResult
	err := s.timed(StageTranscribe, res, func() error {
		asrCtx, cancel := context.WithTimeout(ctx, s.opts.ASRTimeout)
		defer cancel()
		var err error
		asr, err = s.stt.Transcribe(asrCtx, speech.TranscribeRequest{
			Filename: req.Filename,
			MIMEType: req.MIMEType,
			Audio:    req.Audio,
		})
		return err
	})
	if err != nil {
		return err
	}
	res.UserTranscript = asr.Text

	// 2. Pivot translation. The pivoted text is the canonical user turn, so
	// stored history stays in one language whatever the caller spoke.
	canonicalUser := asr.Text
	if s.opts.PivotEnabled {
		err = s.timed(StagePivotTranslate, res, func() error {
			trCtx, cancel := context.WithTimeout(ctx, s.opts.TranslateTimeout)
			defer cancel()
			out, err := s.trans.Translate(trCtx, asr.Text, asr.Language, s.opts.PivotLanguage)
			if err != nil {
				return err
			}
			res.TranslatedTranscript = out
			canonicalUser = out
			return nil
		})
		if err != nil {
			return err
		}
	}

	// 3. Reply generation against the caller's history
	history := s.sessions.History(req.SessionID)
	err = s.timed(StageGenerate, res, func() error {
		reply, err := s.generator.Generate(ctx, history, canonicalUser)
		if err != nil {
			return err
		}
		res.AssistantReply = reply
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Reply translation to the spoken language
	err = s.timed(StageReplyTranslate, res, func() error {
		trCtx, cancel := context.WithTimeout(ctx, s.opts.TranslateTimeout)
		defer cancel()
		out, err := s.trans.Translate(trCtx, res.AssistantReply, s.opts.PivotLanguage, s.opts.ReplyLanguage)
		if err != nil {
			return err
		}
		res.AssistantReplySpoken = out
		return nil
	})
	if err != nil {
		return err
	}

	// 5. Synthesis
	err = s.timed(StageSynthesize, res, func() error {
		ttsCtx, cancel := context.WithTimeout(ctx, s.opts.TTSTimeout)
		defer cancel()
		audio, err := s.tts.Synthesize(ttsCtx, res.AssistantReplySpoken, s.opts.TTSLanguage)
		if err != nil {
			return err
		}
		res.AudioBase64 = audio
		return nil
	})
	if err != nil {
		return err
	}

	// Only a complete run reaches here; failed runs above never touch the
	// store.
	s.sessions.AppendExchange(req.SessionID, canonicalUser, res.AssistantReply)
	return nil
}

func (s *Service) timed(stage string, res *Result, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	res.Timings[stage] = float64(elapsed) / float64(time.Millisecond)
	metrics.RecordStage(stage, elapsed)

	if err != nil {
		metrics.RecordStageError(stage)
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}
