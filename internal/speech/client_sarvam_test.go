package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSarvamTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speech-to-text" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("api-subscription-key") != "key" {
			t.Errorf("missing api-subscription-key header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("bad multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "saarika:v2" {
			t.Errorf("model field = %q", got)
		}
		if got := r.FormValue("language_code"); got != "unknown" {
			t.Errorf("language_code field = %q", got)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer f.Close()
		if header.Filename != "clip.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "RIFFaudio" {
			t.Errorf("audio bytes = %q", data)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"transcript":    "Gurgaon mein budget two BHK chahiye",
			"language_code": "hi-IN",
		})
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	res, err := c.Transcribe(context.Background(), TranscribeRequest{
		Filename: "clip.wav",
		MIMEType: "audio/wav",
		Audio:    []byte("RIFFaudio"),
	})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if res.Text != "Gurgaon mein budget two BHK chahiye" {
		t.Errorf("transcript = %q", res.Text)
	}
	if res.Language != "hi-IN" {
		t.Errorf("language = %q", res.Language)
	}
}

func TestSarvamTranscribe_TextFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "namaste"})
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	res, err := c.Transcribe(context.Background(), TranscribeRequest{Audio: []byte("x")})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if res.Text != "namaste" {
		t.Errorf("transcript = %q", res.Text)
	}
}

func TestSarvamTranscribe_NoTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	_, err := c.Transcribe(context.Background(), TranscribeRequest{Audio: []byte("x")})

	var te *TranscriptionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
}

func TestSarvamTranscribe_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	_, err := c.Transcribe(context.Background(), TranscribeRequest{Audio: []byte("x")})

	var te *TranscriptionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
	if te.Details == "" {
		t.Error("expected provider body in Details")
	}
}

func TestSarvamSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["target_language_code"] != "kn-IN" {
			t.Errorf("target_language_code = %v", req["target_language_code"])
		}
		if req["model"] != "bulbul:v2" {
			t.Errorf("model = %v", req["model"])
		}
		_ = json.NewEncoder(w).Encode(map[string][]string{"audios": {"QUJD", "later"}})
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	audio, err := c.Synthesize(context.Background(), "hello", "kn-IN")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if audio != "QUJD" {
		t.Errorf("expected first audios element, got %q", audio)
	}
}

// An empty audios array on a 200 is a synthesis failure in its own right,
// not an HTTP-level one.
func TestSarvamSynthesize_EmptyAudios(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]string{"audios": {}})
	}))
	defer srv.Close()

	c := NewSarvamClient("key", srv.URL)
	_, err := c.Synthesize(context.Background(), "hello", "kn-IN")

	var se *SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
	if se.Details != "no audio returned in 'audios' field" {
		t.Errorf("unexpected details %q", se.Details)
	}
}
