package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrMissingAPIKey indicates the ElevenLabs credential was not configured.
// This is a startup-time configuration error, not a provider fault.
var ErrMissingAPIKey = errors.New("ELEVENLABS_API_KEY is not set")

const defaultBaseURL = "https://api.elevenlabs.io"

// Fixed synthesis parameters. Every clip in the cache was generated with these,
// so changing them silently would make cached and fresh audio inconsistent.
const (
	// DefaultVoiceID is the ElevenLabs "Rachel" voice.
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

	// DefaultModelID is the low-latency turbo model.
	DefaultModelID = "eleven_turbo_v2_5"

	// DefaultOutputFormat is 44.1kHz 128kbps MP3.
	DefaultOutputFormat = "mp3_44100_128"
)

// ElevenLabsConfig holds configuration for the ElevenLabs engine.
type ElevenLabsConfig struct {
	// APIKey is required; its absence is a fatal configuration error.
	APIKey string

	// Voice, Model and OutputFormat default to the fixed parameters above.
	Voice        string
	Model        string
	OutputFormat string

	// BaseURL overrides the API endpoint (tests point this at a local server).
	BaseURL string

	// Timeout for the HTTP call. Zero means no timeout: the call runs to
	// completion or fails, matching the synchronous pipeline contract.
	Timeout time.Duration

	// RequestsPerMinute caps outbound synthesis calls (defaults to 60).
	RequestsPerMinute int
}

// ElevenLabs synthesizes speech via the ElevenLabs text-to-speech HTTP API.
type ElevenLabs struct {
	apiKey       string
	voice        string
	model        string
	outputFormat string
	baseURL      string

	client  *http.Client
	limiter *rate.Limiter
}

// NewElevenLabs creates an ElevenLabs engine. A missing API key is reported
// here, before any synthesis is attempted.
func NewElevenLabs(config ElevenLabsConfig) (*ElevenLabs, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.Voice == "" {
		config.Voice = DefaultVoiceID
	}
	if config.Model == "" {
		config.Model = DefaultModelID
	}
	if config.OutputFormat == "" {
		config.OutputFormat = DefaultOutputFormat
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 60
	}

	return &ElevenLabs{
		apiKey:       config.APIKey,
		voice:        config.Voice,
		model:        config.Model,
		outputFormat: config.OutputFormat,
		baseURL:      config.BaseURL,
		client:       &http.Client{Timeout: config.Timeout},
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
	}, nil
}

// Name implements Engine.
func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Synthesize implements Engine. It performs a single POST to the
// text-to-speech endpoint and returns the MP3 body. No retries.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		e.baseURL, url.PathEscape(e.voice), url.QueryEscape(e.outputFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevenlabs returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("elevenlabs returned empty audio")
	}
	return audio, nil
}

// Validate implements Engine.
func (e *ElevenLabs) Validate() error {
	if e.apiKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := url.ParseRequestURI(e.baseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	return nil
}

var _ Engine = (*ElevenLabs)(nil)
