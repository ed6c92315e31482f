package synth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewElevenLabs_RequiresAPIKey(t *testing.T) {
	_, err := NewElevenLabs(ElevenLabsConfig{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewElevenLabs without key: err = %v, want ErrMissingAPIKey", err)
	}
}

func TestElevenLabs_Synthesize(t *testing.T) {
	var gotPath, gotKey, gotFormat string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotFormat = r.URL.Query().Get("output_format")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	eng, err := NewElevenLabs(ElevenLabsConfig{APIKey: "secret", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewElevenLabs failed: %v", err)
	}

	audio, err := eng.Synthesize(context.Background(), "Test passed!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q, want %q", audio, "mp3-bytes")
	}

	if want := "/v1/text-to-speech/" + DefaultVoiceID; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if gotKey != "secret" {
		t.Errorf("xi-api-key header = %q, want %q", gotKey, "secret")
	}
	if gotFormat != DefaultOutputFormat {
		t.Errorf("output_format = %q, want %q", gotFormat, DefaultOutputFormat)
	}
	if gotBody["text"] != "Test passed!" {
		t.Errorf("request text = %q, want %q", gotBody["text"], "Test passed!")
	}
	if gotBody["model_id"] != DefaultModelID {
		t.Errorf("request model_id = %q, want %q", gotBody["model_id"], DefaultModelID)
	}
}

func TestElevenLabs_SynthesizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	eng, err := NewElevenLabs(ElevenLabsConfig{APIKey: "bad", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewElevenLabs failed: %v", err)
	}

	_, err = eng.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("Synthesize succeeded, want error on HTTP 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not mention status code", err)
	}
}

func TestElevenLabs_SynthesizeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	eng, err := NewElevenLabs(ElevenLabsConfig{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewElevenLabs failed: %v", err)
	}

	if _, err := eng.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("Synthesize succeeded on empty body, want error")
	}
}

func TestMockEngine_RecordsCalls(t *testing.T) {
	m := NewMockEngine()

	if _, err := m.Synthesize(context.Background(), "one"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if _, err := m.Synthesize(context.Background(), "two"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if m.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", m.CallCount())
	}
	if m.Calls[0] != "one" || m.Calls[1] != "two" {
		t.Errorf("Calls = %v, want [one two]", m.Calls)
	}
}
