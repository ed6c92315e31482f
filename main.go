// Package main provides the entry point for the clawkit CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/synth"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	cacheDir   string
	projectDir string

	rootCmd = &cobra.Command{
		Use:   "clawkit",
		Short: "Provision Claude Code projects with hooks, agents, and cached speech",
		Long: paragraph(fmt.Sprintf(
			"\nClawkit scaffolds Claude Code projects from a template, manages their %s tool-server registry, and speaks completion phrases through a local audio cache so repeated phrases never hit the synthesis API twice.",
			keyword(".mcp.json"),
		)),
		SilenceErrors: false,
		SilenceUsage:  true,
	}
)

// envConfig is parsed from the process environment at command startup.
type envConfig struct {
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	EngineerName     string `env:"ENGINEER_NAME" envDefault:"YourName"`
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "audio cache directory")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "project directory holding .mcp.json")

	// Config bindings
	_ = viper.BindPFlag("cache.dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("project.dir", rootCmd.PersistentFlags().Lookup("project"))

	// The default cache path matches what the project template ships, so
	// clips generated here line up with the hooks that play them.
	viper.SetDefault("cache.dir", filepath.Join("output", "tts-cache"))
	viper.SetDefault("project.dir", ".")
	viper.SetDefault("template.dir", ".")

	// Synthesis defaults. Cached clips were generated with these; changing
	// the voice only affects phrases that are not cached yet.
	viper.SetDefault("speak.voice", synth.DefaultVoiceID)
	viper.SetDefault("speak.model", synth.DefaultModelID)
	viper.SetDefault("speak.output_format", synth.DefaultOutputFormat)
	viper.SetDefault("speak.requests_per_minute", 60)

	viper.SetDefault("mcp.install_deps", true)

	rootCmd.AddCommand(speakCmd, setupCmd, mcpCmd, cacheCmd, doctorCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "clawkit")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "clawkit")}, dirs...)
	}

	if c := os.Getenv("CLAWKIT_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("clawkit")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("clawkit")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "clawkit.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
