// Package discover implements the discover command.
package discover

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/cmdutil"
	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/walker"
)

var discoverSizes bool

// DiscoverCmd lists the files extract would treat as bundles.
var DiscoverCmd = &cobra.Command{
	Use:   "discover <root>",
	Short: "List the bundle files found under a directory",
	Long: "List the bundle files found under a directory.\n\n" +
		"Applies the same discovery rules as extract: files with a configured bundle " +
		"extension, falling back to every file larger than discovery.min_size when " +
		"none match. Paths are printed in sorted order.",
	Example: `  # List candidates with their sizes
  unibundle discover ./Bundles --sizes`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateDiscover,
	RunE:    runDiscover,
}

func init() {
	DiscoverCmd.Flags().BoolVar(&discoverSizes, "sizes", false, "Print file sizes in bytes")
}

func validateDiscover(cmd *cobra.Command, args []string) error {
	if _, err := cmdutil.ExistingDir(args[0]); err != nil {
		return fmt.Errorf("invalid root; %w", err)
	}

	cmd.SilenceUsage = true
	return nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := config.Current()
	if err != nil {
		return err
	}
	root, _ := cmdutil.ExistingDir(args[0])

	w := walker.New(cmdutil.DiscoveryOptions(cfg.Discovery, slog.Default())...)
	files, err := w.Discover(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("failed to discover bundles; %w", err)
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		return fmt.Errorf("no bundle files found in %s", root)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range files {
		if discoverSizes {
			fmt.Fprintf(tw, "%d\t%s\n", f.Size, f.Path)
		} else {
			fmt.Fprintln(tw, f.Path)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats := w.Stats()
	note := ""
	if stats.UsedFallback {
		note = " (no known extensions matched; used size fallback)"
	}
	fmt.Fprintf(out, "\n%d bundle files%s\n", len(files), note)
	return nil
}
