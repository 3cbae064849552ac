package cli

import (
	"fmt"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/initcard/lettuce/internal/manifest"
	"github.com/initcard/lettuce/internal/scene"
	"github.com/initcard/lettuce/internal/tui"
)

var uiAll bool

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Pick collection versions for in-scene characters interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		var chars []*manifest.Character
		if uiAll {
			m, err := loadManifest()
			if err != nil {
				return err
			}
			chars = m.Characters
		} else {
			st, err := resolveScene(cmd.Context())
			if err != nil {
				return err
			}
			chars = scene.Unique(st.result.Characters)
		}
		if len(chars) == 0 {
			return errNoCharacters
		}

		selections, err := tui.Run(chars, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CHARACTER\tCOLLECTION\tMESH")
		for _, s := range selections {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Character, s.Collection, s.MeshObject)
		}
		return w.Flush()
	},
}

func init() {
	uiCmd.Flags().BoolVar(&uiAll, "all", false, "List every manifest character, not only those in the scene")
	rootCmd.AddCommand(uiCmd)
}
