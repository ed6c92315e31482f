package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the registry file consumers read, relative to the project root.
const FileName = ".mcp.json"

// ServerEntry is one configured server as recorded in .mcp.json.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// LaunchLine renders the command plus arguments as a single display string.
func (e ServerEntry) LaunchLine() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
}

// Config mirrors the .mcp.json document.
type Config struct {
	Servers map[string]ServerEntry `json:"mcpServers"`
}

// Load reads the registry from projectDir. A missing file yields an empty,
// usable config so that "add to a fresh project" needs no special casing.
func Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, FileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{Servers: map[string]ServerEntry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if cfg.Servers == nil {
		cfg.Servers = map[string]ServerEntry{}
	}
	return &cfg, nil
}

// Save writes the registry to projectDir with two-space indentation, through a
// temp file and rename so concurrent readers never see a half-written file.
func (c *Config) Save(projectDir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", FileName, err)
	}
	data = append(data, '\n')

	path := filepath.Join(projectDir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", FileName, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize %s: %w", FileName, err)
	}
	return nil
}

// IDs returns the configured server IDs in sorted order.
func (c *Config) IDs() []string {
	ids := make([]string, 0, len(c.Servers))
	for id := range c.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
