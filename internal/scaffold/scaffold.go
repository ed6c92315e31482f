// Package scaffold provisions a new project from the bundled template: the
// .claude directory of hooks and sub-agents, the pre-generated audio cache,
// the tool-server registry, environment files, and a starter README.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/clawkit/clawkit/internal/mcp"
)

// envSampleKeys is the key list written to .env.sample when the template does
// not ship its own .env. ENGINEER_NAME carries a placeholder value.
var envSampleKeys = []string{
	"ANTHROPIC_API_KEY",
	"DEEPSEEK_API_KEY",
	"ELEVENLABS_API_KEY",
	"ENGINEER_NAME",
	"FIRECRAWL_API_KEY",
	"GEMINI_API_KEY",
	"GROQ_API_KEY",
	"OLLAMA_HOST",
	"OPENAI_API_KEY",
}

// Options configures a provisioning run.
type Options struct {
	// TemplateDir is the template source root (holds .claude/ and
	// output/tts-cache/).
	TemplateDir string

	// TargetDir is the project directory to create or fill.
	TargetDir string

	// MCPServers are catalog IDs to record in the new project's registry.
	MCPServers []string

	// EngineerName replaces the placeholder in generated env files.
	EngineerName string

	// Force allows provisioning into a non-empty target directory.
	Force bool
}

// Provisioner copies the template into a target project.
type Provisioner struct {
	opts   Options
	logger *log.Logger
}

// NewProvisioner validates options and returns a provisioner.
func NewProvisioner(opts Options, logger *log.Logger) (*Provisioner, error) {
	if logger == nil {
		logger = log.Default()
	}
	if opts.TemplateDir == "" {
		return nil, errors.New("template directory is required")
	}
	if opts.TargetDir == "" {
		return nil, errors.New("target directory is required")
	}
	return &Provisioner{opts: opts, logger: logger}, nil
}

type step struct {
	name string
	run  func() error
}

// Run executes the provisioning steps in order. Individual step failures are
// logged and the remaining steps still run, so a broken optional piece (say,
// a missing audio cache) does not strand a half-created project; Run reports
// an error if any step failed.
func (p *Provisioner) Run() error {
	if err := p.checkTarget(); err != nil {
		return err
	}

	steps := []step{
		{"create project structure", p.createStructure},
		{"copy .claude directory", p.copyClaudeDir},
		{"copy audio cache", p.copyAudioCache},
		{"write tool-server registry", p.writeMCPConfig},
		{"write environment files", p.writeEnvFiles},
		{"write README", p.writeReadme},
	}

	failed := 0
	for _, s := range steps {
		p.logger.Info(s.name)
		if err := s.run(); err != nil {
			p.logger.Error("step failed", "step", s.name, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("provisioning finished with %d failed step(s)", failed)
	}
	return nil
}

// checkTarget refuses a non-empty target unless Force is set.
func (p *Provisioner) checkTarget() error {
	entries, err := os.ReadDir(p.opts.TargetDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect target directory: %w", err)
	}
	if len(entries) > 0 && !p.opts.Force {
		return fmt.Errorf("target directory %s is not empty (use --force to provision anyway)", p.opts.TargetDir)
	}
	return nil
}

func (p *Provisioner) createStructure() error {
	if err := os.MkdirAll(p.opts.TargetDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(p.opts.TargetDir, "logs"), 0o755)
}

func (p *Provisioner) copyClaudeDir() error {
	src := filepath.Join(p.opts.TemplateDir, ".claude")
	dst := filepath.Join(p.opts.TargetDir, ".claude")

	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("template has no .claude directory at %s", src)
	}

	// Replace rather than merge: a stale hook config mixed with a fresh one
	// is worse than either.
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("remove existing .claude: %w", err)
	}
	return CopyTree(src, dst)
}

// copyAudioCache ships the pre-generated clips for the standard phrase table.
// A template without a cache is fine; first playback will synthesize instead.
func (p *Provisioner) copyAudioCache() error {
	src := filepath.Join(p.opts.TemplateDir, "output", "tts-cache")
	dst := filepath.Join(p.opts.TargetDir, "output", "tts-cache")

	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("template has no audio cache, skipping")
		return nil
	}

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("remove existing cache: %w", err)
	}
	if err := CopyTree(src, dst); err != nil {
		return err
	}

	clips, err := filepath.Glob(filepath.Join(dst, "*.mp3"))
	if err == nil {
		p.logger.Info("copied audio cache", "clips", len(clips))
	}
	return nil
}

func (p *Provisioner) writeMCPConfig() error {
	if len(p.opts.MCPServers) == 0 {
		return nil
	}

	cfg := mcp.Config{Servers: map[string]mcp.ServerEntry{}}
	for _, id := range p.opts.MCPServers {
		spec, ok := mcp.Lookup(id)
		if !ok {
			p.logger.Warn("unknown MCP server, skipping", "id", id)
			continue
		}
		cfg.Servers[id] = spec.Entry()
	}
	if len(cfg.Servers) == 0 {
		return nil
	}
	return cfg.Save(p.opts.TargetDir)
}

// writeEnvFiles copies the template's .env when it has one, and always leaves
// a .env.sample behind as the key reference.
func (p *Provisioner) writeEnvFiles() error {
	srcEnv := filepath.Join(p.opts.TemplateDir, ".env")
	dstEnv := filepath.Join(p.opts.TargetDir, ".env")
	dstSample := filepath.Join(p.opts.TargetDir, ".env.sample")

	if data, err := os.ReadFile(srcEnv); err == nil {
		if err := os.WriteFile(dstEnv, data, 0o600); err != nil {
			return fmt.Errorf("copy .env: %w", err)
		}
		if err := os.WriteFile(dstSample, data, 0o644); err != nil {
			p.logger.Warn("could not write .env.sample", "err", err)
		}
		return nil
	}

	return os.WriteFile(dstSample, []byte(p.envSample()), 0o644)
}

func (p *Provisioner) envSample() string {
	name := p.opts.EngineerName
	if name == "" {
		name = "YourName"
	}

	var b strings.Builder
	for _, key := range envSampleKeys {
		b.WriteString(key)
		b.WriteByte('=')
		if key == "ENGINEER_NAME" {
			b.WriteString(name)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Provisioner) writeReadme() error {
	name := filepath.Base(p.opts.TargetDir)
	readme := fmt.Sprintf(`# %s

Claude Code project with configured hooks, sub-agents, and cached speech
feedback, provisioned by clawkit.

## Setup

1. Copy the environment template and fill in your API keys (at least
   ELEVENLABS_API_KEY for speech features):

       cp .env.sample .env

2. Configure hook paths inside Claude Code:

       /setup-hooks

3. Try it out:

       clawkit speak "Work complete!"

## Layout

    .claude/            hooks, sub-agents, slash commands, settings.json
    output/tts-cache/   pre-generated audio for common phrases
    logs/               hook activity logs
    .mcp.json           tool-server registry (manage with: clawkit mcp)

Common phrases ("Work complete!", "Task finished!", "All done!", ...) ship
pre-generated, so repeated completions cost no synthesis calls. Anything else
is synthesized once and cached under output/tts-cache/.
`, name)

	return os.WriteFile(filepath.Join(p.opts.TargetDir, "README.md"), []byte(readme), 0o644)
}
