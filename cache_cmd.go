package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/audio"
	"github.com/clawkit/clawkit/internal/cache"
	"github.com/clawkit/clawkit/internal/speech"
	"github.com/clawkit/clawkit/internal/synth"
	"github.com/clawkit/clawkit/utils"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the audio cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached audio clips",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		store := cache.NewStore(utils.ExpandPath(viper.GetString("cache.dir")))
		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Cache is empty:", store.Dir())
			return nil
		}

		var total uint64
		for _, e := range entries {
			total += uint64(e.Size) //nolint:gosec
			fmt.Printf("%s  %8s  %s\n", e.Name, humanize.Bytes(uint64(e.Size)), subtle(humanize.Time(e.ModTime))) //nolint:gosec
		}
		fmt.Printf("\n%d clips, %s in %s\n", len(entries), humanize.Bytes(total), store.Dir())
		return nil
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Synthesize every standard phrase that is not cached yet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := env.ParseAs[envConfig]()
		if err != nil {
			return fmt.Errorf("error parsing environment: %w", err)
		}

		engine, err := synth.NewElevenLabs(synth.ElevenLabsConfig{
			APIKey:            cfg.ElevenLabsAPIKey,
			Voice:             viper.GetString("speak.voice"),
			Model:             viper.GetString("speak.model"),
			OutputFormat:      viper.GetString("speak.output_format"),
			RequestsPerMinute: viper.GetInt("speak.requests_per_minute"),
		})
		if err != nil {
			return err
		}

		store := cache.NewStore(utils.ExpandPath(viper.GetString("cache.dir")))
		pipe := speech.New(store, engine, audio.Discard, log.Default())

		n, err := pipe.Warm(cmd.Context())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("All standard phrases are already cached.")
			return nil
		}
		fmt.Printf("Synthesized %d clips into %s\n", n, store.Dir())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached audio clips",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		store := cache.NewStore(utils.ExpandPath(viper.GetString("cache.dir")))
		n, err := store.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d clips from %s\n", n, store.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd, cacheWarmCmd, cacheClearCmd)
}
