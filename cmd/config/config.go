// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage unibundle configuration",
	Long: "Manage unibundle configuration.\n\n" +
		"Configuration is read from config.yaml in $UNIBUNDLE_CONFIG_DIR, " +
		"~/.config/unibundle/ or the current directory, in that order. Every key " +
		"can be overridden with a UNIBUNDLE_ environment variable, for example " +
		"UNIBUNDLE_PARSER_COMMAND.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
}
