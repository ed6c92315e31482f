package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clawkit/clawkit/internal/mcp"
	"github.com/clawkit/clawkit/utils"
)

var mcpSkipDeps bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage the project's .mcp.json tool-server registry",
	Long: paragraph(fmt.Sprintf(
		"\nManage the MCP servers recorded in the project's %s. Running %s with no subcommand opens the interactive selection menu.",
		keyword(".mcp.json"), keyword("clawkit mcp"),
	)),
	Args: cobra.NoArgs,
	RunE: runMCPSelect,
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured servers",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		mgr := mcpManager()
		configured, err := mgr.Configured()
		if err != nil {
			return err
		}
		if len(configured) == 0 {
			fmt.Println("No MCP servers configured.")
			return nil
		}

		for _, spec := range mcp.Catalog() {
			entry, ok := configured[spec.ID]
			if !ok {
				continue
			}
			fmt.Printf("%s %s %s\n", okStyle.Render("✓"), spec.Name, subtle("("+spec.ID+")"))
			fmt.Printf("  %s\n", subtle(truncate(entry.LaunchLine(), 60)))
		}
		for id, entry := range configured {
			if _, known := mcp.Lookup(id); known {
				continue
			}
			fmt.Printf("%s %s %s\n", warnStyle.Render("?"), id, subtle("(not in catalog)"))
			fmt.Printf("  %s\n", subtle(truncate(entry.LaunchLine(), 60)))
		}
		return nil
	},
}

var mcpAddCmd = &cobra.Command{
	Use:   "add SERVER...",
	Short: "Add servers to the registry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !mcpSkipDeps && viper.GetBool("mcp.install_deps") {
			if err := mcp.EnsureDeps(cmd.Context(), args, log.Default()); err != nil {
				log.Warn("Dependency check failed; configuring servers anyway", "err", err)
			}
		}

		added, envVars, err := mcpManager().Add(args)
		if err != nil {
			return err
		}
		for _, id := range added {
			fmt.Println(okStyle.Render("✓"), "added", id)
		}
		if len(added) == 0 {
			fmt.Println("Nothing to add.")
		}
		if len(envVars) > 0 {
			fmt.Println("\nSet these environment variables before starting Claude Code:")
			for _, v := range envVars {
				fmt.Println("  " + keyword(v))
			}
		}
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove SERVER...",
	Short: "Remove servers from the registry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		removed, err := mcpManager().Remove(args)
		if err != nil {
			return err
		}
		for _, id := range removed {
			fmt.Println(okStyle.Render("✓"), "removed", id)
		}
		if len(removed) == 0 {
			fmt.Println("Nothing to remove.")
		}
		return nil
	},
}

var mcpUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite configured servers to the current catalog launch lines",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		updated, err := mcpManager().Update()
		if err != nil {
			return err
		}
		if len(updated) == 0 {
			fmt.Println("All configured servers are up to date.")
			return nil
		}
		for _, id := range updated {
			fmt.Println(okStyle.Render("✓"), "updated", id)
		}
		return nil
	},
}

var mcpSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the configured servers interactively",
	Args:  cobra.NoArgs,
	RunE:  runMCPSelect,
}

func runMCPSelect(cmd *cobra.Command, _ []string) error {
	mgr := mcpManager()
	configured, err := mgr.Configured()
	if err != nil {
		return err
	}
	current := make(map[string]bool, len(configured))
	for id := range configured {
		current[id] = true
	}

	selection, canceled, err := chooseServers(current)
	if err != nil {
		return err
	}
	if canceled {
		fmt.Println("Selection canceled, registry unchanged.")
		return nil
	}

	added, removed, err := mgr.Apply(selection)
	if err != nil {
		return err
	}
	if len(added) == 0 && len(removed) == 0 {
		fmt.Println("Registry unchanged.")
		return nil
	}

	for _, id := range removed {
		fmt.Println(okStyle.Render("✓"), "removed", id)
	}
	for _, id := range added {
		fmt.Println(okStyle.Render("✓"), "added", id)
	}

	if len(added) > 0 && !mcpSkipDeps && viper.GetBool("mcp.install_deps") {
		if err := mcp.EnsureDeps(cmd.Context(), added, log.Default()); err != nil {
			log.Warn("Dependency check failed", "err", err)
		}
	}
	printEnvReminders(added)
	return nil
}

func mcpManager() *mcp.Manager {
	dir := viper.GetString("project.dir")
	if dir == "" {
		dir = "."
	}
	return mcp.NewManager(utils.ExpandPath(dir), log.Default())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	mcpCmd.PersistentFlags().BoolVar(&mcpSkipDeps, "skip-deps", false, "skip node/uvx dependency checks")
	mcpCmd.AddCommand(mcpListCmd, mcpAddCmd, mcpRemoveCmd, mcpUpdateCmd, mcpSelectCmd)
}
