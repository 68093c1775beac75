package cmd

import (
	"github.com/spf13/cobra"

	"inventory.GO/core/registry"
)

// Register queues a subcommand for attachment to the root command.
// Safe to call from init() in any package.
func Register(c *cobra.Command) {
	reg := registry.GlobalRegistry
	reg.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply attaches every registered subcommand and locks the registry key.
func Apply() {
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
