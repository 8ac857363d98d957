// Package textures implements the textures command, a Texture2D-only
// extraction into a single flat directory.
package textures

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/cmdutil"
	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/extract"
	"github.com/leefowlercu/unibundle/internal/unity"
)

var (
	texturesMinSize      int
	texturesUnityVersion string
)

// TexturesCmd extracts only textures, writing every PNG into output_root.
var TexturesCmd = &cobra.Command{
	Use:   "textures <source_root> <output_root>",
	Short: "Extract only textures into a flat directory",
	Long: "Extract only textures into a flat directory.\n\n" +
		"A faster variant of extract for texture dumps: only Texture2D objects are " +
		"exported, all PNGs land directly in output_root and progress is reported " +
		"less often.",
	Example: `  # Dump every texture of at least 128 pixels
  unibundle textures ./Bundles ./textures --min-size 128`,
	Args:    cobra.ExactArgs(2),
	PreRunE: validateTextures,
	RunE:    runTextures,
}

func init() {
	addFlags(TexturesCmd)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&texturesMinSize, "min-size", 0,
		"Skip textures whose width and height are both below this size")
	cmd.Flags().StringVar(&texturesUnityVersion, "unity-version", "",
		"Unity version hint for bundles without type metadata")
}

func validateTextures(cmd *cobra.Command, args []string) error {
	if _, err := cmdutil.ExistingDir(args[0]); err != nil {
		return fmt.Errorf("invalid source root; %w", err)
	}
	if strings.TrimSpace(args[1]) == "" {
		return fmt.Errorf("output root must not be empty")
	}
	if texturesMinSize < 0 {
		return fmt.Errorf("--min-size must be non-negative")
	}

	cmd.SilenceUsage = true
	return nil
}

func runTextures(cmd *cobra.Command, args []string) error {
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
			Types:        []string{unity.TypeTexture2D},
			UnityVersion: cfg.Extract.UnityVersion,
			Flat:         true,
		},
		MinTextureSize:   cfg.Textures.MinSize,
		ProgressInterval: cfg.Textures.ProgressInterval,
	}
	if cmd.Flags().Changed("min-size") {
		x.MinTextureSize = texturesMinSize
	}
	if cmd.Flags().Changed("unity-version") {
		x.Request.UnityVersion = texturesUnityVersion
	}

	return cmdutil.RunExtraction(cmd.Context(), cmd.OutOrStdout(), cfg, x)
}
