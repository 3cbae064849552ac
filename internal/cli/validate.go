package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a manifest against the manifest schema",
	Long: `Validate the structure of a character manifest. Every missing or unexpected
element is reported, unlike normal loading which drops bad characters and
carries on. Defaults to the configured manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.Manifest
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no manifest given")
		}
		return runManifestCheck(cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runManifestCheck validates path and prints doctor-style lines to w. It
// returns an error when the manifest is not valid.
func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.ParseFile(path)
		if err != nil {
			fmt.Fprintf(w, "  [ OK ] Valid manifest\n")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid manifest: %d character(s)\n", len(m.Characters))
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}

	if m, err := manifest.ParseFile(path); err == nil && len(m.Errors) > 0 {
		fmt.Fprintf(w, "  [WARN] loading drops %d element(s):\n", len(m.Errors))
		for _, e := range m.Errors {
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
