package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/scene"
)

var (
	resolveUnique bool
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "List the manifest characters referenced in the scene",
	Long: `Match every character's mesh files against the references loaded in the
scene snapshot. A character is listed once per matching reference unless
--unique is given.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveUnique, "unique", false, "List each character once")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

type resolveOutput struct {
	Scene      string        `json:"scene"`
	Characters []string      `json:"characters"`
	Matches    []scene.Match `json:"matches"`
	Skipped    []string      `json:"skipped,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	st, err := resolveScene(cmd.Context())
	if err != nil {
		return err
	}

	chars := st.result.Characters
	if resolveUnique {
		chars = scene.Unique(chars)
	}
	res := resolveOutput{Scene: st.snapshot.Scene, Matches: st.result.Matches}
	for _, c := range chars {
		res.Characters = append(res.Characters, c.Name)
	}
	for _, e := range st.result.Skipped {
		res.Skipped = append(res.Skipped, e.Error())
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		return printJSON(out, res)
	}

	if len(chars) == 0 {
		fmt.Fprintln(out, "No manifest characters referenced in scene.")
	} else if resolveUnique {
		for _, name := range res.Characters {
			fmt.Fprintln(out, name)
		}
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CHARACTER\tMESH\tREFERENCE\tFILE")
		for _, m := range st.result.Matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Character, m.MeshVersion, m.Reference, m.Path)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(out, "  [WARN] %s\n", s)
	}
	return nil
}
