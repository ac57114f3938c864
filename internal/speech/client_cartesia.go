package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const cartesiaVersion = "2024-06-10"

// CartesiaClient synthesizes speech via the Cartesia bytes endpoint, which
// returns raw WAV audio rather than a JSON envelope.
type CartesiaClient struct {
	apiKey  string
	baseURL string
	modelID string
	voiceID string
	client  *http.Client
}

func NewCartesiaClient(apiKey, baseURL, modelID, voiceID string) *CartesiaClient {
	return &CartesiaClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		modelID: modelID,
		voiceID: voiceID,
		client:  &http.Client{},
	}
}

func (c *CartesiaClient) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"model_id":   c.modelID,
		"transcript": text,
		"voice": map[string]any{
			"mode": "id",
			"id":   c.voiceID,
		},
		"output_format": map[string]any{
			"container":   "wav",
			"encoding":    "pcm_f32le",
			"sample_rate": 44100,
		},
		"language": languageCode,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tts/bytes", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Cartesia-Version", cartesiaVersion)
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cartesia tts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read cartesia tts: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &SynthesisError{Provider: "cartesia", Details: string(body)}
	}
	if len(body) == 0 {
		return "", &SynthesisError{Provider: "cartesia", Details: "empty audio response"}
	}

	return base64.StdEncoding.EncodeToString(body), nil
}
