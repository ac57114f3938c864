package speech

import "context"

// TranscribeRequest carries one uploaded audio clip.
type TranscribeRequest struct {
	Filename string
	MIMEType string
	Audio    []byte
}

// TranscribeResult is the recognized text plus the language the provider
// detected (or the declared hint, when auto-detection is off).
type TranscribeResult struct {
	Text     string
	Language string
}

type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (TranscribeResult, error)
}

// Synthesizer turns text into base64-encoded audio. The implementation is
// selected once at wiring time, not per request.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) (string, error)
}

// TranscriptionError means the ASR provider answered but returned no usable
// transcript: non-2xx status or a missing transcript field. Details carries
// the provider response body.
type TranscriptionError struct {
	Details string
}

func (e *TranscriptionError) Error() string {
	return "failed to transcribe audio: " + e.Details
}

// SynthesisError means the TTS provider returned no usable audio. An empty
// audio array and a non-2xx status both land here, with different Details.
type SynthesisError struct {
	Provider string
	Details  string
}

func (e *SynthesisError) Error() string {
	return e.Provider + " synthesis failed: " + e.Details
}
