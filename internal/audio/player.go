// Package audio plays MP3 clips through the system audio device.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player is a playback sink for MP3 audio. Play blocks until the clip has
// finished or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, mp3 []byte) error
	Close() error
}

// OtoPlayer plays audio through oto. MP3 input is decoded to raw PCM with an
// ffmpeg subprocess first, since oto consumes raw samples only.
type OtoPlayer struct {
	context *oto.Context

	sampleRate int
	channels   int
	tempDir    string
}

// OtoConfig configures the playback device.
type OtoConfig struct {
	SampleRate int    // defaults to 44100
	Channels   int    // defaults to 1 (mono TTS output)
	TempDir    string // scratch space for ffmpeg input, defaults to os.TempDir
}

// NewOtoPlayer initializes the audio device. Initialization is done once; oto
// contexts cannot be torn down and recreated within a process.
func NewOtoPlayer(config OtoConfig) (*OtoPlayer, error) {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.Channels == 0 {
		config.Channels = 1
	}
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH (required for MP3 decoding): %w", err)
	}

	op := &oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: config.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("initialize audio device: %w", err)
	}
	<-ready

	return &OtoPlayer{
		context:    ctx,
		sampleRate: config.SampleRate,
		channels:   config.Channels,
		tempDir:    config.TempDir,
	}, nil
}

// Play implements Player. It decodes the clip, streams it to the device, and
// blocks until playback drains.
func (p *OtoPlayer) Play(ctx context.Context, mp3 []byte) error {
	if len(mp3) == 0 {
		return errors.New("audio data is empty")
	}

	pcm, err := p.decodeMP3(ctx, mp3)
	if err != nil {
		return err
	}

	player := p.context.NewPlayer(bytes.NewReader(pcm))
	defer player.Close() //nolint:errcheck

	player.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// decodeMP3 converts MP3 bytes to s16le PCM at the device sample rate using
// ffmpeg. The input goes through a temp file; ffmpeg's MP3 demuxer needs a
// seekable source for reliable duration handling.
func (p *OtoPlayer) decodeMP3(ctx context.Context, mp3 []byte) ([]byte, error) {
	in, err := os.CreateTemp(p.tempDir, "clawkit-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create temp MP3 file: %w", err)
	}
	defer os.Remove(in.Name()) //nolint:errcheck

	_, werr := in.Write(mp3)
	cerr := in.Close()
	if werr != nil {
		return nil, fmt.Errorf("write temp MP3 file: %w", werr)
	}
	if cerr != nil {
		return nil, fmt.Errorf("close temp MP3 file: %w", cerr)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	args := []string{
		"-i", in.Name(),
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", p.sampleRate),
		"-ac", fmt.Sprintf("%d", p.channels),
		"-",
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("MP3 decode timeout: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffmpeg failed: %w, stderr: %s", err, stderr.String())
	}

	pcm := stdout.Bytes()
	if len(pcm) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no PCM output, stderr: %s", stderr.String())
	}
	return pcm, nil
}

// Close implements Player. The oto context itself has no teardown; Close
// exists to satisfy the interface and for symmetry with mock players.
func (p *OtoPlayer) Close() error { return nil }

var _ Player = (*OtoPlayer)(nil)
