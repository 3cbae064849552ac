package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/manifest"
	"github.com/initcard/lettuce/internal/pipeline"
	"github.com/initcard/lettuce/internal/scene"
)

var (
	importOut    string
	importUnlock bool
	importOnly   []string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Record hair system imports for in-scene characters",
	Long: `For every character referenced in the scene, record the steps that remove a
previous <name>_hairSetSystem set, import the default collection's hair scene
and group the new nodes into a fresh set. The steps are written as a journal
for the host application to replay.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "Journal file ('-' for stdout, default: ~/.lettuce/journals)")
	importCmd.Flags().BoolVar(&importUnlock, "unlock", false, "Also unlock the nodes of each new set")
	importCmd.Flags().StringSliceVar(&importOnly, "only", nil, "Limit to these characters")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := resolveScene(cmd.Context())
	if err != nil {
		return err
	}
	chars := filterCharacters(scene.Unique(st.result.Characters), importOnly)
	if len(chars) == 0 {
		return errNoCharacters
	}

	j := pipeline.NewJournal(st.snapshot)
	pkgs, warnings, err := pipeline.ImportHair(cmd.Context(), j, chars, pipeline.ImportOptions{Progress: progressPrinter(cmd)})
	printWarnings(cmd, warnings)
	if err != nil {
		return err
	}

	if importUnlock {
		for _, p := range pkgs {
			if _, err := pipeline.UnlockNodes(j, p.Name); err != nil {
				return err
			}
		}
	}

	if importOut != "-" {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SET\tCHARACTER\tNODES")
		for _, p := range pkgs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", p.Name, p.Character, len(p.Nodes))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return writeJournal(cmd, j, importOut, "import")
}

// filterCharacters keeps the characters named in only. Empty keeps all.
func filterCharacters(chars []*manifest.Character, only []string) []*manifest.Character {
	if len(only) == 0 {
		return chars
	}
	var out []*manifest.Character
	for _, c := range chars {
		if slices.Contains(only, c.Name) {
			out = append(out, c)
		}
	}
	return out
}
