package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/pipeline"
	"github.com/initcard/lettuce/internal/scene"
)

var (
	copyDest string
	copyJSON bool
)

var copyXGenCmd = &cobra.Command{
	Use:   "copy-xgen",
	Short: "Copy groom files of in-scene characters next to the scene",
	Long: `Copy the default collection's xgen file of every character referenced in
the scene into the scene's folder. Relative paths resolve against the project
directory. The first failed copy stops the run.`,
	RunE: runCopyXGen,
}

func init() {
	copyXGenCmd.Flags().StringVar(&copyDest, "dest", "", "Destination directory (default: the scene's folder)")
	copyXGenCmd.Flags().BoolVar(&copyJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(copyXGenCmd)
}

func runCopyXGen(cmd *cobra.Command, args []string) error {
	st, err := resolveScene(cmd.Context())
	if err != nil {
		return err
	}
	chars := scene.Unique(st.result.Characters)
	if len(chars) == 0 {
		return errNoCharacters
	}

	dest := copyDest
	if dest == "" {
		dest = pipeline.SceneFolder(st.snapshot.Scene)
	}
	if dest == "" {
		return fmt.Errorf("scene is unsaved; pass --dest")
	}

	res, err := pipeline.CopyXGenFiles(cmd.Context(), afero.NewOsFs(), chars, st.projectDir(), dest, progressPrinter(cmd))
	for _, f := range res.Copied {
		logger.Info("xgen copied", "character", f.Character, "src", f.Source, "dst", f.Dest)
	}
	if err != nil {
		return fmt.Errorf("copied %d of %d file(s): %w", len(res.Copied), len(chars), err)
	}

	out := cmd.OutOrStdout()
	if copyJSON {
		return printJSON(out, res)
	}
	for _, f := range res.Copied {
		fmt.Fprintf(out, "  [ OK ] %s: %s -> %s\n", f.Character, f.Source, f.Dest)
	}
	for _, name := range res.Skipped {
		fmt.Fprintf(out, "  [SKIP] %s: no xgen file\n", name)
	}
	return nil
}
