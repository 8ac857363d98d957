// Package normalize implements the normalize command.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/cmdutil"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/normalize"
	"github.com/leefowlercu/unibundle/internal/styles"
)

// NormalizeCmd strips the alternate container header from a bundle or a tree of bundles.
var NormalizeCmd = &cobra.Command{
	Use:   "normalize <input> <output>",
	Short: "Strip the alternate container header from bundles",
	Long: "Strip the alternate container header from bundles.\n\n" +
		"Some bundles carry a 32-byte prefix (magic, version and SHA-1 digest) in front " +
		"of the standard container. normalize writes the bare container to output. " +
		"Files without the prefix are copied unchanged, so the command is safe to run " +
		"over mixed directories and over its own output.\n\n" +
		"When input is a directory, every candidate file under it is normalized into " +
		"output with its relative path preserved.",
	Example: `  # Normalize a single bundle
  unibundle normalize data.bundle data.fixed.bundle

  # Normalize a directory tree
  unibundle normalize ./Bundles ./Bundles-normalized`,
	Args:    cobra.ExactArgs(2),
	PreRunE: validateNormalize,
	RunE:    runNormalize,
}

func validateNormalize(cmd *cobra.Command, args []string) error {
	in, _, err := cmdutil.ExistingPath(args[0])
	if err != nil {
		return fmt.Errorf("invalid input; %w", err)
	}
	if strings.TrimSpace(args[1]) == "" {
		return fmt.Errorf("output must not be empty")
	}
	out, err := cmdutil.ResolvePath(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve output; %w", err)
	}
	if fsutil.SamePath(in, out) {
		return normalize.ErrSamePath
	}

	cmd.SilenceUsage = true
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	in, info, _ := cmdutil.ExistingPath(args[0])
	out, _ := cmdutil.ResolvePath(args[1])

	n := normalize.New(normalize.WithLogger(slog.Default()))

	if !info.IsDir() {
		stripped, err := n.Normalize(in, out)
		if err != nil {
			return fmt.Errorf("failed to normalize %s; %w", in, err)
		}
		if stripped {
			fmt.Fprintf(w, "%s %s -> %s\n", styles.SuccessText.Render("Stripped alternate header:"), in, out)
		} else {
			fmt.Fprintf(w, "%s %s -> %s\n", styles.MutedText.Render("Already standard, copied:"), in, out)
		}
		return nil
	}

	stats, err := n.NormalizeDir(cmd.Context(), in, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", styles.Title.Render("Normalization Summary"))
	fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Files:"), stats.Total)
	fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Stripped:"), stats.Stripped)
	fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Already standard:"), stats.AlreadyStandard)
	errLabel := styles.Label.Render("Errors:")
	if stats.Errors > 0 {
		errLabel = styles.WarningText.Render("Errors:")
	}
	fmt.Fprintf(w, "  %s %d\n", errLabel, stats.Errors)
	fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Output:"), out)

	return nil
}
