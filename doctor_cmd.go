package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/cache"
	"github.com/clawkit/clawkit/internal/mcp"
	"github.com/clawkit/clawkit/internal/phrase"
	"github.com/clawkit/clawkit/utils"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external dependencies and configuration",
	Long: paragraph(
		"\nVerify that everything clawkit shells out to is available: node and npx for npm-based MCP servers, uvx for Python-based ones, ffmpeg for audio playback, and the ElevenLabs API key for synthesis.",
	),
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ok := func(b bool) string {
		if b {
			return okStyle.Render("✓")
		}
		return errStyle.Render("✗")
	}

	nodeOK, nodeVersion := mcp.CheckNode(cmd.Context())
	fmt.Printf("%s node %s %s\n", ok(nodeOK), nodeVersion, subtle(fmt.Sprintf("(v%d+ required for npx MCP servers)", mcp.MinNodeMajor)))

	npxOK := mcp.CheckCommand("npx")
	fmt.Printf("%s npx %s\n", ok(npxOK), subtle("(launches npm-based MCP servers)"))

	uvxOK := mcp.CheckCommand("uvx")
	fmt.Printf("%s uvx %s\n", ok(uvxOK), subtle("(launches Python-based MCP servers)"))

	ffmpegOK := mcp.CheckCommand("ffmpeg")
	fmt.Printf("%s ffmpeg %s\n", ok(ffmpegOK), subtle("(decodes cached MP3 clips for playback)"))

	keySet := os.Getenv("ELEVENLABS_API_KEY") != ""
	fmt.Printf("%s ELEVENLABS_API_KEY %s\n", ok(keySet), subtle("(required to synthesize uncached phrases)"))

	store := cache.NewStore(utils.ExpandPath(viper.GetString("cache.dir")))
	entries, err := store.List()
	if err != nil {
		fmt.Printf("%s audio cache: %v\n", ok(false), err)
	} else {
		missing := 0
		cached := map[string]bool{}
		for _, e := range entries {
			cached[e.Name] = true
		}
		for _, name := range phrase.Filenames {
			if !cached[name] {
				missing++
			}
		}
		fmt.Printf("%s audio cache: %d clips in %s", ok(true), len(entries), store.Dir())
		if missing > 0 {
			fmt.Printf(" %s", warnStyle.Render(fmt.Sprintf("(%d standard phrases uncached, run `clawkit cache warm`)", missing)))
		}
		fmt.Println()
	}

	if !nodeOK || !npxOK || !uvxOK || !ffmpegOK || !keySet {
		fmt.Println("\nSome checks failed. Install hints:")
		if !nodeOK || !npxOK {
			fmt.Println(subtle("  node/npx: https://nodejs.org or `nvm install --lts`"))
		}
		if !uvxOK {
			fmt.Println(subtle("  uvx: `curl -LsSf https://astral.sh/uv/install.sh | sh`"))
		}
		if !ffmpegOK {
			fmt.Println(subtle("  ffmpeg: `apt install ffmpeg` or `brew install ffmpeg`"))
		}
		if !keySet {
			fmt.Println(subtle("  export ELEVENLABS_API_KEY=... (https://elevenlabs.io)"))
		}
	}
	return nil
}
