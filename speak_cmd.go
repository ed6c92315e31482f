package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/audio"
	"github.com/clawkit/clawkit/internal/cache"
	"github.com/clawkit/clawkit/internal/speech"
	"github.com/clawkit/clawkit/internal/synth"
	"github.com/clawkit/clawkit/utils"
)

var speakCmd = &cobra.Command{
	Use:   "speak [PHRASE]",
	Short: "Speak a phrase, serving repeats from the audio cache",
	Long: paragraph(fmt.Sprintf(
		"\nSpeak a phrase out loud. Known completion phrases resolve to fixed cache filenames; anything else is slugified. Cached clips play without touching the API, and freshly synthesized clips are cached for next time.\n\nRequires %s for synthesis and ffmpeg for playback.",
		keyword("ELEVENLABS_API_KEY"),
	)),
	Example: paragraph("clawkit speak\nclawkit speak \"Test passed!\"\nclawkit speak \"Deploy finished\" --cache-dir ~/clips"),
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSpeak,
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text := speech.DefaultPhrase
	if len(args) == 1 {
		text = args[0]
	}

	pipe, player, err := buildPipeline()
	if err != nil {
		return err
	}
	defer player.Close() //nolint:errcheck

	return pipe.Speak(cmd.Context(), text)
}

// buildPipeline wires the cache store, synthesis engine and audio device into
// a speech pipeline from environment and config values.
func buildPipeline() (*speech.Pipeline, audio.Player, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing environment: %w", err)
	}

	engine, err := synth.NewElevenLabs(synth.ElevenLabsConfig{
		APIKey:            cfg.ElevenLabsAPIKey,
		Voice:             viper.GetString("speak.voice"),
		Model:             viper.GetString("speak.model"),
		OutputFormat:      viper.GetString("speak.output_format"),
		RequestsPerMinute: viper.GetInt("speak.requests_per_minute"),
	})
	if err != nil {
		return nil, nil, err
	}

	player, err := audio.NewOtoPlayer(audio.OtoConfig{})
	if err != nil {
		return nil, nil, err
	}

	store := cache.NewStore(utils.ExpandPath(viper.GetString("cache.dir")))
	return speech.New(store, engine, player, log.Default()), player, nil
}
