package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/config"
)

var (
	initForce bool
	initPath  string
)

// InitCmd writes a config file populated with defaults.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: "Write a default configuration file.\n\n" +
		"Creates config.yaml with every key set to its default value, ready to edit. " +
		"An existing file is left untouched unless --force is given.",
	Example: `  # Create ~/.config/unibundle/config.yaml
  unibundle config init

  # Write to a specific path, replacing any existing file
  unibundle config init --path ./config.yaml --force`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	InitCmd.Flags().StringVar(&initPath, "path", "", "Config file path (default: config directory)")
}

func validateInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, path, initForce); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}
