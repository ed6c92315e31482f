package mcp

import (
	"sort"

	"github.com/charmbracelet/log"
)

// Manager applies catalog operations to a project's registry file.
type Manager struct {
	projectDir string
	logger     *log.Logger
}

// NewManager returns a manager for the registry in projectDir.
func NewManager(projectDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{projectDir: projectDir, logger: logger}
}

// Add configures the given servers, skipping unknown IDs and ones already
// present. It returns the IDs actually added and the environment variables the
// caller should remind the user to set.
func (m *Manager) Add(ids []string) (added []string, envVars []string, err error) {
	cfg, err := Load(m.projectDir)
	if err != nil {
		return nil, nil, err
	}

	seen := map[string]bool{}
	for _, id := range ids {
		spec, ok := Lookup(id)
		if !ok {
			m.logger.Warn("unknown MCP server", "id", id)
			continue
		}
		if _, exists := cfg.Servers[id]; exists {
			m.logger.Warn("already configured", "id", id)
			continue
		}

		cfg.Servers[id] = spec.Entry()
		added = append(added, id)
		for _, v := range spec.EnvVars {
			if !seen[v] {
				seen[v] = true
				envVars = append(envVars, v)
			}
		}
		m.logger.Info("configured", "server", spec.Name)
	}

	if len(added) == 0 {
		return nil, nil, nil
	}
	if err := cfg.Save(m.projectDir); err != nil {
		return nil, nil, err
	}
	sort.Strings(envVars)
	return added, envVars, nil
}

// Remove drops the given servers from the registry. Unknown or unconfigured
// IDs are warnings, not errors.
func (m *Manager) Remove(ids []string) (removed []string, err error) {
	cfg, err := Load(m.projectDir)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, ok := cfg.Servers[id]; !ok {
			m.logger.Warn("not configured", "id", id)
			continue
		}
		delete(cfg.Servers, id)
		removed = append(removed, id)
		m.logger.Info("removed", "id", id)
	}

	if len(removed) == 0 {
		return nil, nil
	}
	if err := cfg.Save(m.projectDir); err != nil {
		return nil, err
	}
	return removed, nil
}

// Update rewrites configured entries whose launch line has drifted from the
// current catalog definition. Entries for servers the catalog does not know
// are left untouched.
func (m *Manager) Update() (updated []string, err error) {
	cfg, err := Load(m.projectDir)
	if err != nil {
		return nil, err
	}

	for id, entry := range cfg.Servers {
		spec, ok := Lookup(id)
		if !ok {
			continue
		}
		fresh := spec.Entry()
		if entry.LaunchLine() == fresh.LaunchLine() {
			continue
		}
		cfg.Servers[id] = fresh
		updated = append(updated, id)
		m.logger.Info("updated", "server", spec.Name)
	}

	if len(updated) == 0 {
		return nil, nil
	}
	if err := cfg.Save(m.projectDir); err != nil {
		return nil, err
	}
	sort.Strings(updated)
	return updated, nil
}

// Configured returns the IDs currently present in the registry.
func (m *Manager) Configured() (map[string]ServerEntry, error) {
	cfg, err := Load(m.projectDir)
	if err != nil {
		return nil, err
	}
	return cfg.Servers, nil
}

// Apply reconciles the registry against a desired ID set: servers in want but
// not configured are added, configured catalog servers absent from want are
// removed. Entries the catalog does not know are never removed here.
func (m *Manager) Apply(want map[string]bool) (added, removed []string, err error) {
	cfg, err := Load(m.projectDir)
	if err != nil {
		return nil, nil, err
	}

	var toAdd, toRemove []string
	for id := range want {
		if _, ok := cfg.Servers[id]; !ok && want[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range cfg.Servers {
		if _, known := Lookup(id); known && !want[id] {
			toRemove = append(toRemove, id)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)

	if len(toRemove) > 0 {
		if removed, err = m.Remove(toRemove); err != nil {
			return nil, nil, err
		}
	}
	if len(toAdd) > 0 {
		if added, _, err = m.Add(toAdd); err != nil {
			return nil, nil, err
		}
	}
	return added, removed, nil
}
