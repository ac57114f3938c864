package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
)

// Style carries the optional rendering flags the provider accepts. Zero
// values are omitted from the request.
type Style struct {
	SpeakerGender  string // Male, Female
	Mode           string // formal, code-mixed
	NumeralsFormat string // international, native
}

// SarvamClient calls the Sarvam translate endpoint. It keeps no state between
// calls: every request goes to the provider, repeated phrases included.
type SarvamClient struct {
	apiKey  string
	baseURL string
	style   Style
	client  *http.Client
	log     *logger.ZapLogger
}

func NewSarvamClient(apiKey, baseURL string, style Style, log *logger.ZapLogger) *SarvamClient {
	return &SarvamClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		style:   style,
		client:  &http.Client{},
		log:     log,
	}
}

type translateRequest struct {
	Input              string `json:"input"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
	SpeakerGender      string `json:"speaker_gender,omitempty"`
	Mode               string `json:"mode,omitempty"`
	NumeralsFormat     string `json:"numerals_format,omitempty"`
}

func (c *SarvamClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Input:              text,
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
		SpeakerGender:      c.style.SpeakerGender,
		Mode:               c.style.Mode,
		NumeralsFormat:     c.style.NumeralsFormat,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("api-subscription-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sarvam translate request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sarvam translate error: %s", body)
	}

	var parsed struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode sarvam translate: %w", err)
	}

	// Missing output is a degradation, not a failure: keep the original text
	// and let the pipeline continue.
	if parsed.Output == "" {
		c.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "translate response had no output field, keeping original text",
			Service: "translate",
		})
		return text, nil
	}
	return parsed.Output, nil
}
