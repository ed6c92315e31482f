package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/clawkit/clawkit/internal/mcp"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

// writeTemplate lays out a minimal template directory.
func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		".claude/settings.json":              `{"hooks":{}}`,
		".claude/hooks/stop.sh":              "#!/bin/sh\n",
		".claude/agents/hello-world.md":      "# hello-world\n",
		"output/tts-cache/work-complete.mp3": "mp3",
		"output/tts-cache/all-done.mp3":      "mp3",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestProvisioner_Run(t *testing.T) {
	template := writeTemplate(t)
	target := filepath.Join(t.TempDir(), "my-project")

	p, err := NewProvisioner(Options{
		TemplateDir:  template,
		TargetDir:    target,
		MCPServers:   []string{"context7", "serena"},
		EngineerName: "Dana",
	}, quietLogger())
	if err != nil {
		t.Fatalf("NewProvisioner failed: %v", err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, rel := range []string{
		"logs",
		".claude/settings.json",
		".claude/hooks/stop.sh",
		"output/tts-cache/work-complete.mp3",
		"README.md",
		".env.sample",
		".mcp.json",
	} {
		if _, err := os.Stat(filepath.Join(target, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s after provisioning: %v", rel, err)
		}
	}

	cfg, err := mcp.Load(target)
	if err != nil {
		t.Fatalf("load provisioned registry: %v", err)
	}
	if len(cfg.Servers) != 2 {
		t.Errorf("registry has %d servers, want 2", len(cfg.Servers))
	}

	sample, err := os.ReadFile(filepath.Join(target, ".env.sample"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sample), "ENGINEER_NAME=Dana") {
		t.Errorf(".env.sample missing engineer name:\n%s", sample)
	}
	if !strings.Contains(string(sample), "ELEVENLABS_API_KEY=") {
		t.Errorf(".env.sample missing ELEVENLABS_API_KEY:\n%s", sample)
	}

	readme, err := os.ReadFile(filepath.Join(target, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "# my-project") {
		t.Errorf("README missing project heading:\n%s", readme)
	}
}

func TestProvisioner_RefusesNonEmptyTarget(t *testing.T) {
	template := writeTemplate(t)
	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(target, "existing.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewProvisioner(Options{TemplateDir: template, TargetDir: target}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(); err == nil {
		t.Fatal("Run succeeded into a non-empty target without --force")
	}

	p, err = NewProvisioner(Options{TemplateDir: template, TargetDir: target, Force: true}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("Run with Force failed: %v", err)
	}
}

func TestProvisioner_MissingAudioCacheIsTolerated(t *testing.T) {
	template := writeTemplate(t)
	if err := os.RemoveAll(filepath.Join(template, "output")); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(t.TempDir(), "proj")

	p, err := NewProvisioner(Options{TemplateDir: template, TargetDir: target}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("Run failed without template cache: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, ".claude", "settings.json")); err != nil {
		t.Errorf(".claude not provisioned: %v", err)
	}
}

func TestProvisioner_CopiesTemplateEnv(t *testing.T) {
	template := writeTemplate(t)
	if err := os.WriteFile(filepath.Join(template, ".env"), []byte("ELEVENLABS_API_KEY=abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(t.TempDir(), "proj")

	p, err := NewProvisioner(Options{TemplateDir: template, TargetDir: target}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	env, err := os.ReadFile(filepath.Join(target, ".env"))
	if err != nil {
		t.Fatalf("provisioned .env missing: %v", err)
	}
	if string(env) != "ELEVENLABS_API_KEY=abc\n" {
		t.Errorf(".env content = %q", env)
	}
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "nested", "deep"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "deep", "f.txt"), []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "copy")
	if err := CopyTree(src, dst); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	copied := filepath.Join(dst, "nested", "deep", "f.txt")
	data, err := os.ReadFile(copied)
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("copied content = %q", data)
	}

	info, err := os.Stat(copied)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("copied perm = %v, want 0600", info.Mode().Perm())
	}
}

func TestCopyTree_SourceMustBeDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyTree(src, t.TempDir()); err == nil {
		t.Fatal("CopyTree accepted a plain file as source")
	}
}
