// Package extract implements the extract command.
package extract

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/cmdutil"
	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/extract"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// Flag variables for the extract command.
var (
	extractTypes            []string
	extractMinSize          int
	extractUnityVersion     string
	extractNormalize        bool
	extractProgressInterval int
)

// ExtractCmd exports selected asset types from every bundle under a directory.
var ExtractCmd = &cobra.Command{
	Use:   "extract <source_root> <output_root>",
	Short: "Extract assets from every bundle under a directory",
	Long: "Extract assets from every bundle under a directory.\n\n" +
		"Searches source_root recursively for bundle files, opens each through the " +
		"configured dumper and writes every object of the requested types to " +
		"output_root/<Type>/. Failures on individual objects or bundles are logged " +
		"and counted; the run continues. A summary table is printed at the end.\n\n" +
		"Supported types: " + strings.Join(unity.SupportedTypes, ", ") + ".",
	Example: `  # Extract every supported type
  unibundle extract ./Bundles ./out

  # Only textures of at least 64 pixels and meshes
  unibundle extract ./Bundles ./out --types Texture2D,Mesh --min-size 64

  # Strip alternate container headers before opening
  unibundle extract ./Bundles ./out --normalize`,
	Args:    cobra.ExactArgs(2),
	PreRunE: validateExtract,
	RunE:    runExtract,
}

func init() {
	addFlags(ExtractCmd)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&extractTypes, "types", nil,
		"Comma-separated type names to extract (default: all)")
	cmd.Flags().IntVar(&extractMinSize, "min-size", 0,
		"Skip textures whose width and height are both below this size")
	cmd.Flags().StringVar(&extractUnityVersion, "unity-version", "",
		"Unity version hint for bundles without type metadata")
	cmd.Flags().BoolVar(&extractNormalize, "normalize", false,
		"Strip alternate container headers before opening bundles")
	cmd.Flags().IntVar(&extractProgressInterval, "progress-interval", 0,
		"Bundles between progress lines")
}

func validateExtract(cmd *cobra.Command, args []string) error {
	if _, err := cmdutil.ExistingDir(args[0]); err != nil {
		return fmt.Errorf("invalid source root; %w", err)
	}
	if strings.TrimSpace(args[1]) == "" {
		return fmt.Errorf("output root must not be empty")
	}
	if cmd.Flags().Changed("min-size") && extractMinSize < 0 {
		return fmt.Errorf("--min-size must be non-negative")
	}
	if cmd.Flags().Changed("progress-interval") && extractProgressInterval < 1 {
		return fmt.Errorf("--progress-interval must be at least 1")
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Current()
	if err != nil {
		return err
	}

	source, _ := cmdutil.ExistingDir(args[0])
	output, err := cmdutil.ResolvePath(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve output root; %w", err)
	}

	x := cmdutil.Extraction{
		Request: extract.Request{
			SourceRoot:   source,
			OutputRoot:   output,
			Types:        cfg.Extract.Types,
			UnityVersion: cfg.Extract.UnityVersion,
			Normalize:    cfg.Extract.Normalize,
		},
		MinTextureSize:   cfg.Extract.MinSize,
		ProgressInterval: cfg.Extract.ProgressInterval,
	}

	flags := cmd.Flags()
	if flags.Changed("types") {
		x.Request.Types = extractTypes
	}
	if flags.Changed("unity-version") {
		x.Request.UnityVersion = extractUnityVersion
	}
	if flags.Changed("normalize") {
		x.Request.Normalize = extractNormalize
	}
	if flags.Changed("min-size") {
		x.MinTextureSize = extractMinSize
	}
	if flags.Changed("progress-interval") {
		x.ProgressInterval = extractProgressInterval
	}

	return cmdutil.RunExtraction(cmd.Context(), cmd.OutOrStdout(), cfg, x)
}
