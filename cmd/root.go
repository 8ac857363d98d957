// Package cmd wires the unibundle command tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configcmd "github.com/leefowlercu/unibundle/cmd/config"
	"github.com/leefowlercu/unibundle/cmd/discover"
	"github.com/leefowlercu/unibundle/cmd/extract"
	"github.com/leefowlercu/unibundle/cmd/normalize"
	"github.com/leefowlercu/unibundle/cmd/textures"
	"github.com/leefowlercu/unibundle/cmd/version"
	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:   "unibundle",
	Short: "Extract assets from Unity asset bundles",
	Long: "unibundle walks directories of Unity asset bundles and exports their textures, " +
		"sprites, meshes, audio, text, fonts and MonoBehaviour data to individual files.\n\n" +
		"Bundles are decoded by an external dumper process configured under parser.command. " +
		"Bundles wrapped in the alternate 32-byte container header can be normalized first.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (overrides log_level)")

	rootCmd.AddCommand(extract.ExtractCmd)
	rootCmd.AddCommand(textures.TexturesCmd)
	rootCmd.AddCommand(normalize.NormalizeCmd)
	rootCmd.AddCommand(discover.DiscoverCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if err := config.Init(); err != nil {
		return err
	}

	if logLevelFlag != "" {
		if _, ok := logging.ParseLevel(logLevelFlag); !ok {
			return fmt.Errorf("invalid --log-level %q; must be one of debug, info, warn, error", logLevelFlag)
		}
		config.Set("log_level", logLevelFlag)
	}

	levelStr := config.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok && levelStr != "" {
		logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
	}

	if err := logManager.Upgrade(config.GetPath("log_file"), level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
		logManager.SetLevel(level)
	}

	return nil
}

// Execute runs the root command. An interrupt cancels the command's context
// so long runs stop between bundles and still print their summary.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintln(os.Stderr)
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
