package speech

import "context"

// Service bundles the STT client and whichever TTS client the deployment
// selected.
type Service struct {
	stt Transcriber
	tts Synthesizer
}

func NewService(stt Transcriber, tts Synthesizer) *Service {
	return &Service{
		stt: stt,
		tts: tts,
	}
}

func (s *Service) Transcribe(ctx context.Context, req TranscribeRequest) (TranscribeResult, error) {
	return s.stt.Transcribe(ctx, req)
}

func (s *Service) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	return s.tts.Synthesize(ctx, text, languageCode)
}
