package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/mcp"
	"github.com/clawkit/clawkit/internal/scaffold"
	"github.com/clawkit/clawkit/ui"
	"github.com/clawkit/clawkit/utils"
)

var (
	setupMCPs        []string
	setupInteractive bool
	setupForce       bool
	setupTemplate    string
	setupSkipDeps    bool
)

var setupCmd = &cobra.Command{
	Use:   "setup TARGET_DIR",
	Short: "Provision a new project from the template",
	Long: paragraph(fmt.Sprintf(
		"\nCopy the %s hook and agent configuration, the cached audio clips, and generated env files into a target project directory, and write its %s tool-server registry.",
		keyword(".claude"), keyword(".mcp.json"),
	)),
	Example: paragraph("clawkit setup ~/projects/new-app\nclawkit setup ~/projects/new-app --mcps github,context7\nclawkit setup ~/projects/new-app -i --force"),
	Args:    cobra.ExactArgs(1),
	RunE:    runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return fmt.Errorf("error parsing environment: %w", err)
	}

	// With no --mcps on a terminal, fall back to the interactive menu like
	// the dedicated `mcp select` command.
	servers := setupMCPs
	if setupInteractive || (len(servers) == 0 && !cmd.Flags().Changed("mcps") && isTerminalOutput()) {
		selection, canceled, err := chooseServers(nil)
		if err != nil {
			return err
		}
		if canceled {
			fmt.Println("Setup canceled.")
			return nil
		}
		servers = sortedIDs(selection)
	}

	for _, id := range servers {
		if _, ok := mcp.Lookup(id); !ok {
			return fmt.Errorf("unknown MCP server: %s", id)
		}
	}

	if len(servers) > 0 && !setupSkipDeps && viper.GetBool("mcp.install_deps") {
		if err := mcp.EnsureDeps(cmd.Context(), servers, log.Default()); err != nil {
			log.Warn("Dependency check failed; configuring servers anyway", "err", err)
		}
	}

	prov, err := scaffold.NewProvisioner(scaffold.Options{
		TemplateDir:  utils.ExpandPath(templateDir()),
		TargetDir:    utils.ExpandPath(args[0]),
		MCPServers:   servers,
		EngineerName: cfg.EngineerName,
		Force:        setupForce,
	}, log.Default())
	if err != nil {
		return err
	}
	if err := prov.Run(); err != nil {
		return err
	}

	fmt.Printf("Project provisioned at %s\n", utils.ExpandPath(args[0]))
	printEnvReminders(servers)
	return nil
}

func templateDir() string {
	if setupTemplate != "" {
		return setupTemplate
	}
	return viper.GetString("template.dir")
}

// chooseServers opens the checkbox menu on a terminal, or the line-based
// fallback when stdout is piped.
func chooseServers(current map[string]bool) (map[string]bool, bool, error) {
	if isTerminalOutput() {
		return ui.RunSelect(current)
	}
	selection, err := ui.SelectFallback(os.Stdin, os.Stdout, current)
	return selection, false, err
}

func sortedIDs(selection map[string]bool) []string {
	var ids []string
	for _, spec := range mcp.Catalog() {
		if selection[spec.ID] {
			ids = append(ids, spec.ID)
		}
	}
	return ids
}

func printEnvReminders(ids []string) {
	var vars []string
	seen := map[string]bool{}
	for _, id := range ids {
		spec, ok := mcp.Lookup(id)
		if !ok {
			continue
		}
		for _, v := range spec.EnvVars {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	if len(vars) == 0 {
		return
	}
	fmt.Println("\nSet these environment variables before starting Claude Code:")
	for _, v := range vars {
		fmt.Println("  " + keyword(v))
	}
}

func init() {
	setupCmd.Flags().StringSliceVar(&setupMCPs, "mcps", nil, "comma-separated MCP server IDs to configure")
	setupCmd.Flags().BoolVarP(&setupInteractive, "interactive", "i", false, "choose MCP servers interactively")
	setupCmd.Flags().BoolVarP(&setupForce, "force", "f", false, "provision into a non-empty directory")
	setupCmd.Flags().StringVar(&setupTemplate, "template", "", "template directory (default from config)")
	setupCmd.Flags().BoolVar(&setupSkipDeps, "skip-deps", false, "skip node/uvx dependency checks")
}
