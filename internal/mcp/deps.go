package mcp

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// MinNodeMajor is the minimum Node.js major version; context7 needs 18+.
const MinNodeMajor = 18

// lookPath and commandContext are indirection points for tests.
var (
	lookPath       = exec.LookPath
	commandContext = exec.CommandContext
)

// NeedsNode reports whether any of the servers launch through npx.
func NeedsNode(ids []string) bool {
	for _, id := range ids {
		if spec, ok := Lookup(id); ok && spec.Command == "npx" {
			return true
		}
	}
	return false
}

// NeedsUvx reports whether any of the servers launch through uvx.
func NeedsUvx(ids []string) bool {
	for _, id := range ids {
		if spec, ok := Lookup(id); ok && spec.Command == "uvx" {
			return true
		}
	}
	return false
}

// CheckCommand reports whether a command resolves on PATH.
func CheckCommand(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// CheckNode probes `node --version` and reports whether the installed version
// meets MinNodeMajor. The raw version string is returned for diagnostics;
// "not found" when node is absent or unparsable.
func CheckNode(ctx context.Context) (bool, string) {
	out, err := commandContext(ctx, "node", "--version").Output()
	if err != nil {
		return false, "not found"
	}
	version := strings.TrimSpace(string(out))

	major, err := ParseNodeMajor(version)
	if err != nil {
		return false, "not found"
	}
	return major >= MinNodeMajor, strings.TrimPrefix(version, "v")
}

// ParseNodeMajor extracts the major version from node's version output, which
// looks like "v18.17.0".
func ParseNodeMajor(version string) (int, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("unparsable node version %q: %w", version, err)
	}
	return major, nil
}

// EnsureDeps verifies and warms the external tooling for the given servers.
//
// Hard requirements (missing node/npx/uvx) fail with an error that names the
// install route. Per-server warm-up problems are logged and tolerated: npx
// packages download on demand anyway, and a uvx cache miss only costs startup
// time later. This mirrors the registry's contract that a partially failed
// install never blocks writing the configuration.
func EnsureDeps(ctx context.Context, ids []string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if len(ids) == 0 {
		return nil
	}

	if NeedsNode(ids) {
		ok, version := CheckNode(ctx)
		if !ok {
			if version == "not found" {
				return fmt.Errorf("node.js not found but required for the selected servers; install v%d+ from https://nodejs.org/", MinNodeMajor)
			}
			return fmt.Errorf("node.js v%s found, but v%d.0.0+ is required (try: nvm install %d)", version, MinNodeMajor, MinNodeMajor)
		}
		logger.Info("node.js meets requirements", "version", version)

		if !CheckCommand("npx") {
			return fmt.Errorf("npx not found in PATH (it normally ships with node.js)")
		}
	}

	if NeedsUvx(ids) && !CheckCommand("uvx") {
		return fmt.Errorf("uvx not found in PATH; install uv from https://docs.astral.sh/uv/")
	}

	for _, id := range ids {
		spec, ok := Lookup(id)
		if !ok {
			continue
		}
		switch spec.Command {
		case "npx":
			logger.Info("ready (npx downloads on demand)", "server", spec.Name)
		case "uvx":
			if err := warmUvxPackage(ctx, spec); err != nil {
				logger.Warn("may need manual setup", "server", spec.Name, "err", err)
			} else {
				logger.Info("installed", "server", spec.Name)
			}
		default:
			logger.Warn("unknown launch command", "server", spec.Name, "command", spec.Command)
		}
	}
	return nil
}

// warmUvxPackage pre-populates the uvx cache by invoking the package's --help.
func warmUvxPackage(ctx context.Context, spec ServerSpec) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var args []string
	if strings.HasPrefix(spec.PythonPackage, "git+") {
		args = []string{"--from", spec.PythonPackage, "--help"}
	} else {
		args = []string{spec.PythonPackage, "--help"}
	}

	if err := commandContext(ctx, "uvx", args...).Run(); err != nil {
		if ctx.Err() != nil {
			// Timeout is tolerable: the package still works on demand.
			return fmt.Errorf("warm-up timed out: %w", ctx.Err())
		}
		return fmt.Errorf("uvx warm-up failed: %w", err)
	}
	return nil
}
