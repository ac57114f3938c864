package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// SarvamClient talks to the Sarvam speech APIs: speech-to-text and
// text-to-speech share the same key and base URL.
type SarvamClient struct {
	apiKey  string
	baseURL string
	client  *http.Client

	asrModel    string
	asrLanguage string

	ttsModel      string
	ttsSpeaker    string
	ttsSampleRate int
}

type SarvamOption func(*SarvamClient)

func WithSarvamASR(model, languageCode string) SarvamOption {
	return func(c *SarvamClient) {
		c.asrModel = model
		c.asrLanguage = languageCode
	}
}

func WithSarvamTTS(model, speaker string, sampleRate int) SarvamOption {
	return func(c *SarvamClient) {
		c.ttsModel = model
		c.ttsSpeaker = speaker
		c.ttsSampleRate = sampleRate
	}
}

func NewSarvamClient(apiKey, baseURL string, opts ...SarvamOption) *SarvamClient {
	c := &SarvamClient{
		apiKey:        apiKey,
		baseURL:       baseURL,
		client:        &http.Client{},
		asrModel:      "saarika:v2",
		asrLanguage:   "unknown",
		ttsModel:      "bulbul:v2",
		ttsSpeaker:    "karun",
		ttsSampleRate: 24000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe uploads the clip as multipart form data. A language hint of
// "unknown" asks the provider to auto-detect; the detected code comes back in
// the response.
func (c *SarvamClient) Transcribe(ctx context.Context, req TranscribeRequest) (TranscribeResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "recording.wav"
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return TranscribeResult{}, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return TranscribeResult{}, fmt.Errorf("build multipart: %w", err)
	}
	_ = w.WriteField("model", c.asrModel)
	_ = w.WriteField("language_code", c.asrLanguage)
	if err := w.Close(); err != nil {
		return TranscribeResult{}, fmt.Errorf("build multipart: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/speech-to-text", &buf)
	if err != nil {
		return TranscribeResult{}, err
	}
	httpReq.Header.Set("api-subscription-key", c.apiKey)
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return TranscribeResult{}, fmt.Errorf("sarvam asr request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return TranscribeResult{}, &TranscriptionError{Details: string(body)}
	}

	var parsed struct {
		Transcript   string `json:"transcript"`
		Text         string `json:"text"`
		LanguageCode string `json:"language_code"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return TranscribeResult{}, fmt.Errorf("decode sarvam asr: %w", err)
	}

	text := parsed.Transcript
	if text == "" {
		text = parsed.Text
	}
	if text == "" {
		return TranscribeResult{}, &TranscriptionError{Details: string(body)}
	}

	lang := parsed.LanguageCode
	if lang == "" {
		lang = c.asrLanguage
	}
	return TranscribeResult{Text: text, Language: lang}, nil
}

// Synthesize returns the first element of the provider's "audios" array,
// which is already base64. An empty or missing array is a SynthesisError even
// though the HTTP status was 200.
func (c *SarvamClient) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"text":                 text,
		"target_language_code": languageCode,
		"model":                c.ttsModel,
		"speaker":              c.ttsSpeaker,
		"enable_preprocessing": true,
		"speech_sample_rate":   c.ttsSampleRate,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-speech", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("api-subscription-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sarvam tts request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &SynthesisError{Provider: "sarvam", Details: string(body)}
	}

	var parsed struct {
		Audios []string `json:"audios"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode sarvam tts: %w", err)
	}
	if len(parsed.Audios) == 0 {
		return "", &SynthesisError{Provider: "sarvam", Details: "no audio returned in 'audios' field"}
	}
	return parsed.Audios[0], nil
}
